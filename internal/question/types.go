package question

import (
	"errors"

	"github.com/gokatarajesh/question-bank/internal/db/models"
)

// Question is the record served to clients and stored in the question file.
type Question = models.Question

var (
	// ErrNotFound reports an id that matches no stored question.
	ErrNotFound = errors.New("question not found")
	// ErrInvalidCSV wraps any failure to read an uploaded CSV file.
	ErrInvalidCSV = errors.New("invalid csv")
)

// Mutation labels for metrics.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpImport = "import"
)

// BulkDeleteRequest is the payload of the bulk delete endpoint.
type BulkDeleteRequest struct {
	IDs []int `json:"ids"`
}

// ExportFilename is the attachment name of a CSV export.
const ExportFilename = "questions.csv"
