package question

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/question-bank/internal/metrics"
)

type questionStore interface {
	List(ctx context.Context) ([]Question, error)
	Insert(ctx context.Context, q Question) (Question, error)
	InsertMany(ctx context.Context, qs []Question) ([]Question, error)
	Replace(ctx context.Context, id int, q Question) (Question, bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	DeleteMany(ctx context.Context, ids []int) (int, error)
}

// Service implements question bank CRUD and CSV import/export on top of the file store.
// Callers are expected to have passed the auth gate already for everything but List.
type Service struct {
	repo    questionStore
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewService(repo questionStore, m *metrics.Metrics, logger zerolog.Logger) *Service {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Service{
		repo:    repo,
		metrics: m,
		logger:  logger.With().Str("component", "question_service").Logger(),
	}
}

// List returns the whole question bank in stored order.
func (s *Service) List(ctx context.Context) ([]Question, error) {
	return s.repo.List(ctx)
}

// Create stores q under a freshly assigned id.
func (s *Service) Create(ctx context.Context, q Question) (Question, error) {
	stored, err := s.repo.Insert(ctx, q)
	if err != nil {
		return Question{}, err
	}
	s.metrics.QuestionMutations.WithLabelValues(OpCreate).Inc()
	s.logger.Info().Int("question_id", stored.ID).Msg("question created")
	return stored, nil
}

// Update replaces the whole record at id; fields absent from q end up empty.
func (s *Service) Update(ctx context.Context, id int, q Question) (Question, error) {
	updated, found, err := s.repo.Replace(ctx, id, q)
	if err != nil {
		return Question{}, err
	}
	if !found {
		return Question{}, fmt.Errorf("update question %d: %w", id, ErrNotFound)
	}
	s.metrics.QuestionMutations.WithLabelValues(OpUpdate).Inc()
	s.logger.Info().Int("question_id", id).Msg("question updated")
	return updated, nil
}

// Delete removes the question with id.
func (s *Service) Delete(ctx context.Context, id int) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("delete question %d: %w", id, ErrNotFound)
	}
	s.metrics.QuestionMutations.WithLabelValues(OpDelete).Inc()
	s.logger.Info().Int("question_id", id).Msg("question deleted")
	return nil
}

// BulkDelete removes every listed id and returns the number removed, possibly zero.
func (s *Service) BulkDelete(ctx context.Context, ids []int) (int, error) {
	removed, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.metrics.QuestionMutations.WithLabelValues(OpDelete).Add(float64(removed))
	s.logger.Info().Int("requested", len(ids)).Int("removed", removed).Msg("questions bulk deleted")
	return removed, nil
}

// ImportCSV parses r and appends every row in a single rewrite.
// Nothing is stored when the file cannot be parsed.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	rows, err := DecodeCSV(r)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	stored, err := s.repo.InsertMany(ctx, rows)
	if err != nil {
		return 0, err
	}
	s.metrics.QuestionMutations.WithLabelValues(OpImport).Add(float64(len(stored)))
	s.logger.Info().
		Int("count", len(stored)).
		Int("first_id", stored[0].ID).
		Int("last_id", stored[len(stored)-1].ID).
		Msg("questions imported from csv")
	return len(stored), nil
}

// ExportCSV writes the whole bank as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	qs, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if err := EncodeCSV(w, qs); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}
