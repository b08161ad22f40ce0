package question

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []Question
		wantErr  bool
	}{
		{
			name: "All columns",
			input: "subject,difficulty,question,option_a,option_b,option_c,option_d,correct_answer,explanation\n" +
				"Math,Easy,1+1?,1,2,3,4,B,basic\n",
			expected: []Question{{
				Subject: "Math", Difficulty: "Easy", Question: "1+1?",
				OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4",
				CorrectAnswer: "B", Explanation: "basic",
			}},
		},
		{
			name:  "Reordered and extra columns, id ignored",
			input: "id,question,notes,subject\n99,What?,skip me,History\n",
			expected: []Question{{
				Subject: "History", Question: "What?",
			}},
		},
		{
			name:     "Missing columns default to empty",
			input:    "question\nOnly the prompt\n",
			expected: []Question{{Question: "Only the prompt"}},
		},
		{
			name:     "Short row",
			input:    "subject,question,explanation\nArt,Who?\n",
			expected: []Question{{Subject: "Art", Question: "Who?"}},
		},
		{
			name:     "Quoted commas and newlines",
			input:    "question,explanation\n\"a, b\",\"line1\nline2\"\n",
			expected: []Question{{Question: "a, b", Explanation: "line1\nline2"}},
		},
		{
			name:     "BOM prefixed header",
			input:    "\xEF\xBB\xBFsubject,question\nGeo,Where?\n",
			expected: []Question{{Subject: "Geo", Question: "Where?"}},
		},
		{
			name:     "Header only",
			input:    "subject,question\n",
			expected: []Question{},
		},
		{
			name:     "Empty file",
			input:    "",
			expected: []Question{},
		},
		{
			name:     "Bare quote inside unquoted field",
			input:    "subject,question\nMath,Say \"hi\" now\n",
			expected: []Question{{Subject: "Math", Question: `Say "hi" now`}},
		},
		{
			name:  "Lone CR line endings",
			input: "subject,question\rMath,Q1\rArt,Q2\r",
			expected: []Question{
				{Subject: "Math", Question: "Q1"},
				{Subject: "Art", Question: "Q2"},
			},
		},
		{
			name:     "CRLF line endings",
			input:    "subject,question\r\nMath,Q1\r\n",
			expected: []Question{{Subject: "Math", Question: "Q1"}},
		},
		{
			name:     "Repeated header takes last column",
			input:    "subject,question,subject\nFirst,Q,Last\n",
			expected: []Question{{Subject: "Last", Question: "Q"}},
		},
		{
			name:    "Not UTF-8",
			input:   "subject\n\xff\xfe\n",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeCSV(strings.NewReader(tc.input))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCSV)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeCSV(&buf, []Question{
		{ID: 3, Subject: "Math", Question: "2, or 3?", CorrectAnswer: "A"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,subject,difficulty,question,option_a,option_b,option_c,option_d,correct_answer,explanation", lines[0])
	assert.Equal(t, `3,Math,,"2, or 3?",,,,,A,`, lines[1])
}

func TestCSVRoundTripKeepsContent(t *testing.T) {
	original := []Question{
		{ID: 1, Subject: "Quantitative Aptitude", Difficulty: "Easy", Question: "What is 15% of 200?", OptionA: "20", OptionB: "30", OptionC: "40", OptionD: "50", CorrectAnswer: "B", Explanation: "15% of 200 = (15/100) × 200 = 30"},
		{ID: 7, Subject: "Verbal", Difficulty: "Hard", Question: "Quote \"this\"", OptionA: "a,b", Explanation: "multi\nline"},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, original))

	decoded, err := DecodeCSV(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, len(original))
	for i := range original {
		want := original[i]
		want.ID = 0
		assert.Equal(t, want, decoded[i])
	}
}
