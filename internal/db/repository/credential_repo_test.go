package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/question-bank/internal/db/filestore"
	"github.com/gokatarajesh/question-bank/internal/db/models"
)

func TestCredentialRepository_SeedKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"root","password":"s3cret"}`), 0o644))

	repo := NewCredentialRepository(filestore.New[models.Credentials](path))
	created, err := repo.Seed(context.Background(), models.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.False(t, created)

	creds, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Credentials{Username: "root", Password: "s3cret"}, creds)
}

func TestCredentialRepository_GetSeesManualEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_credentials.json")
	repo := NewCredentialRepository(filestore.New[models.Credentials](path))

	_, err := repo.Seed(context.Background(), models.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"username":"admin","password":"changed"}`), 0o644))

	creds, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "changed", creds.Password)
}
