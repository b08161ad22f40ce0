package question

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/question-bank/internal/db/filestore"
	"github.com/gokatarajesh/question-bank/internal/db/models"
	"github.com/gokatarajesh/question-bank/internal/db/repository"
)

func newFileService(t *testing.T, seed ...Question) *Service {
	t.Helper()
	doc := filestore.New[models.QuestionSet](filepath.Join(t.TempDir(), "questions.json"))
	_, err := doc.Init(models.QuestionSet{Questions: seed})
	require.NoError(t, err)
	return NewService(repository.NewQuestionRepository(doc), nil, zerolog.Nop())
}

// failingStore fails every call, for error propagation checks.
type failingStore struct {
	err   error
	calls int
}

func (s *failingStore) List(context.Context) ([]Question, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) Insert(context.Context, Question) (Question, error) {
	s.calls++
	return Question{}, s.err
}

func (s *failingStore) InsertMany(context.Context, []Question) ([]Question, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) Replace(context.Context, int, Question) (Question, bool, error) {
	s.calls++
	return Question{}, false, s.err
}

func (s *failingStore) Delete(context.Context, int) (bool, error) {
	s.calls++
	return false, s.err
}

func (s *failingStore) DeleteMany(context.Context, []int) (int, error) {
	s.calls++
	return 0, s.err
}

func TestService_CreateThenListRoundTrip(t *testing.T) {
	svc := newFileService(t, models.SampleQuestion())
	ctx := context.Background()

	created, err := svc.Create(ctx, Question{ID: 500, Subject: "Logic", Question: "Is A?"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)

	qs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, created, qs[1])
}

func TestService_CreateOnEmptyBankGetsIDOne(t *testing.T) {
	svc := newFileService(t)

	created, err := svc.Create(context.Background(), Question{Subject: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestService_UpdateReplacesWholeRecord(t *testing.T) {
	svc := newFileService(t, Question{ID: 1, Subject: "A", Question: "Q", CorrectAnswer: "C"})
	ctx := context.Background()

	updated, err := svc.Update(ctx, 1, Question{ID: 9, Subject: "B"})
	require.NoError(t, err)
	assert.Equal(t, Question{ID: 1, Subject: "B"}, updated)

	qs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", qs[0].Question)
	assert.Equal(t, "", qs[0].CorrectAnswer)
}

func TestService_UpdateAndDeleteMissing(t *testing.T) {
	svc := newFileService(t, Question{ID: 1})
	ctx := context.Background()

	_, err := svc.Update(ctx, 2, Question{Subject: "B"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotFound)
}

func TestService_BulkDelete(t *testing.T) {
	svc := newFileService(t, Question{ID: 1}, Question{ID: 2}, Question{ID: 3})
	ctx := context.Background()

	n, err := svc.BulkDelete(ctx, []int{42, 43})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	qs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, qs, 3)

	n, err = svc.BulkDelete(ctx, []int{1, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.BulkDelete(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestService_ImportCSVContinuesFromMaxID(t *testing.T) {
	svc := newFileService(t, Question{ID: 2}, Question{ID: 5})
	ctx := context.Background()

	input := "subject,question,correct_answer\nA,q1,A\nB,q2,B\nC,q3,C\n"
	count, err := svc.ImportCSV(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	qs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, qs, 5)
	assert.Equal(t, []int{6, 7, 8}, []int{qs[2].ID, qs[3].ID, qs[4].ID})
	assert.Equal(t, "q2", qs[3].Question)
}

func TestService_ImportCSVInvalidStoresNothing(t *testing.T) {
	svc := newFileService(t, Question{ID: 1})
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, strings.NewReader("subject,question\nok,row\n\xff,row\n"))
	assert.ErrorIs(t, err, ErrInvalidCSV)

	qs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestService_ExportThenImportReproducesContent(t *testing.T) {
	svc := newFileService(t,
		models.SampleQuestion(),
		Question{ID: 4, Subject: "Reasoning", Difficulty: "Medium", Question: "Odd one out, please", OptionA: "x", OptionB: "y", OptionC: "z", OptionD: "w", CorrectAnswer: "D", Explanation: "w is a \"letter\""},
	)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	fresh := newFileService(t)
	count, err := fresh.ImportCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	before, err := svc.List(ctx)
	require.NoError(t, err)
	after, err := fresh.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		want, got := before[i], after[i]
		want.ID, got.ID = 0, 0
		assert.Equal(t, want, got)
	}
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	store := &failingStore{err: errors.New("disk gone")}
	svc := NewService(store, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, store.err)
	_, err = svc.Create(ctx, Question{})
	assert.ErrorIs(t, err, store.err)
	_, err = svc.Update(ctx, 1, Question{})
	assert.ErrorIs(t, err, store.err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1), store.err)
	_, err = svc.BulkDelete(ctx, []int{1})
	assert.ErrorIs(t, err, store.err)
	_, err = svc.ImportCSV(ctx, strings.NewReader("subject\nx\n"))
	assert.ErrorIs(t, err, store.err)
	assert.ErrorIs(t, svc.ExportCSV(ctx, &bytes.Buffer{}), store.err)
}

func TestService_ImportEmptyCSVSkipsStore(t *testing.T) {
	store := &failingStore{err: errors.New("should not be called")}
	svc := NewService(store, nil, zerolog.Nop())

	count, err := svc.ImportCSV(context.Background(), strings.NewReader("subject,question\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, store.calls)
}
