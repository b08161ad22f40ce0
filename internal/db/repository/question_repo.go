package repository

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/question-bank/internal/db/models"
)

type questionStore interface {
	Init(seed models.QuestionSet) (bool, error)
	Read() (models.QuestionSet, error)
	Mutate(fn func(v *models.QuestionSet) (bool, error)) error
}

// QuestionRepository owns id assignment and whole-file mutations of the question set.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// Seed creates the question file with the sample question if it is missing.
func (r *QuestionRepository) Seed(ctx context.Context) (bool, error) {
	return r.store.Init(models.QuestionSet{Questions: []models.Question{models.SampleQuestion()}})
}

// List returns every stored question in file order.
func (r *QuestionRepository) List(ctx context.Context) ([]models.Question, error) {
	set, err := r.store.Read()
	if err != nil {
		return nil, err
	}
	if set.Questions == nil {
		return []models.Question{}, nil
	}
	return set.Questions, nil
}

// Insert appends q with a fresh id and returns the stored record.
func (r *QuestionRepository) Insert(ctx context.Context, q models.Question) (models.Question, error) {
	stored, err := r.InsertMany(ctx, []models.Question{q})
	if err != nil {
		return models.Question{}, err
	}
	return stored[0], nil
}

// InsertMany appends qs with sequential ids continuing from the current max, in one rewrite.
func (r *QuestionRepository) InsertMany(ctx context.Context, qs []models.Question) ([]models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := make([]models.Question, 0, len(qs))
	err := r.store.Mutate(func(set *models.QuestionSet) (bool, error) {
		next := maxID(set.Questions)
		for _, q := range qs {
			next++
			q.ID = next
			stored = append(stored, q)
		}
		set.Questions = append(set.Questions, stored...)
		return len(stored) > 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert questions: %w", err)
	}
	return stored, nil
}

// Replace overwrites the record with the given id. The payload id is ignored.
// It reports false when no record matched.
func (r *QuestionRepository) Replace(ctx context.Context, id int, q models.Question) (models.Question, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Question{}, false, err
	}
	q.ID = id
	found := false
	err := r.store.Mutate(func(set *models.QuestionSet) (bool, error) {
		for i := range set.Questions {
			if set.Questions[i].ID == id {
				set.Questions[i] = q
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return models.Question{}, false, fmt.Errorf("replace question %d: %w", id, err)
	}
	return q, found, nil
}

// Delete removes the record with the given id and reports whether one existed.
func (r *QuestionRepository) Delete(ctx context.Context, id int) (bool, error) {
	n, err := r.DeleteMany(ctx, []int{id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteMany removes every record whose id is listed and returns how many went.
func (r *QuestionRepository) DeleteMany(ctx context.Context, ids []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	err := r.store.Mutate(func(set *models.QuestionSet) (bool, error) {
		kept := set.Questions[:0]
		for _, q := range set.Questions {
			if _, ok := drop[q.ID]; ok {
				removed++
				continue
			}
			kept = append(kept, q)
		}
		set.Questions = kept
		return removed > 0, nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete questions: %w", err)
	}
	return removed, nil
}

func maxID(qs []models.Question) int {
	highest := 0
	for _, q := range qs {
		if q.ID > highest {
			highest = q.ID
		}
	}
	return highest
}
