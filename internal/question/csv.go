package question

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// ExportColumns is the fixed column order of exported files.
var ExportColumns = []string{
	"id", "subject", "difficulty", "question",
	"option_a", "option_b", "option_c", "option_d",
	"correct_answer", "explanation",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeCSV reads a header-driven CSV file into questions without ids.
// Columns are matched by header name; unknown columns are ignored and
// missing ones (or short rows) leave the field empty. Stray quotes are kept as
// text and LF, CRLF or a lone CR all end a line.
func DecodeCSV(r io.Reader) ([]Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: file is not valid UTF-8", ErrInvalidCSV)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	data = normalizeNewlines(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Question{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	// a repeated header name maps to its last column
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var out []Question
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		out = append(out, Question{
			Subject:       field("subject"),
			Difficulty:    field("difficulty"),
			Question:      field("question"),
			OptionA:       field("option_a"),
			OptionB:       field("option_b"),
			OptionC:       field("option_c"),
			OptionD:       field("option_d"),
			CorrectAnswer: field("correct_answer"),
			Explanation:   field("explanation"),
		})
	}
	if out == nil {
		out = []Question{}
	}
	return out, nil
}

// normalizeNewlines turns CRLF and lone CR line endings into LF.
func normalizeNewlines(data []byte) []byte {
	if !bytes.ContainsRune(data, '\r') {
		return data
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
}

// EncodeCSV writes questions with a header row in ExportColumns order.
func EncodeCSV(w io.Writer, qs []Question) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportColumns); err != nil {
		return err
	}
	for _, q := range qs {
		row := []string{
			strconv.Itoa(q.ID),
			q.Subject,
			q.Difficulty,
			q.Question,
			q.OptionA,
			q.OptionB,
			q.OptionC,
			q.OptionD,
			q.CorrectAnswer,
			q.Explanation,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
