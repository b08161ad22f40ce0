package repository

import (
	"path/filepath"
	"testing"

	"github.com/gokatarajesh/question-bank/internal/db/filestore"
	"github.com/gokatarajesh/question-bank/internal/db/models"
)

func newQuestionRepo(t *testing.T, qs ...models.Question) *QuestionRepository {
	t.Helper()
	doc := filestore.New[models.QuestionSet](filepath.Join(t.TempDir(), "questions.json"))
	if _, err := doc.Init(models.QuestionSet{Questions: qs}); err != nil {
		t.Fatalf("init question file: %v", err)
	}
	return NewQuestionRepository(doc)
}

func questionWithID(id int, subject string) models.Question {
	return models.Question{ID: id, Subject: subject, Question: "Q" + subject}
}
