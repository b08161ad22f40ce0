package repository

import (
	"context"

	"github.com/gokatarajesh/question-bank/internal/db/models"
)

type credentialStore interface {
	Init(seed models.Credentials) (bool, error)
	Read() (models.Credentials, error)
}

// CredentialRepository reads the single admin login record.
type CredentialRepository struct {
	store credentialStore
}

func NewCredentialRepository(store credentialStore) *CredentialRepository {
	return &CredentialRepository{store: store}
}

// Seed writes defaults only when the credential file does not exist.
func (r *CredentialRepository) Seed(ctx context.Context, defaults models.Credentials) (bool, error) {
	return r.store.Init(defaults)
}

// Get re-reads the file on every call so manual edits apply without a restart.
func (r *CredentialRepository) Get(ctx context.Context) (models.Credentials, error) {
	return r.store.Read()
}
