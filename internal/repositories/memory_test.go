package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/docdrop/internal/models"
)

func TestMemoryUserRepository_DuplicateEmail(t *testing.T) {
	t.Parallel()
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "a@x.com"}))
	err := repo.Create(ctx, &models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryUserRepository_ConcurrentSignup(t *testing.T) {
	t.Parallel()
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, &models.User{Email: "race@x.com"})
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent signup may win")
}

func TestMemoryUserRepository_VerificationTokenLookup(t *testing.T) {
	t.Parallel()
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	token := "tok-123"
	user := &models.User{Email: "a@x.com", VerificationToken: &token}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByVerificationToken(ctx, "tok-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Clearing the token removes it from the index.
	found.VerificationToken = nil
	found.IsVerified = true
	require.NoError(t, repo.Update(ctx, found))

	_, err = repo.FindByVerificationToken(ctx, "tok-123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFileRepository_Lookups(t *testing.T) {
	t.Parallel()
	repo := NewMemoryFileRepository()
	ctx := context.Background()

	rec := &models.FileRecord{Filename: "a.docx", UploadedBy: 1, DownloadToken: "t1"}
	require.NoError(t, repo.Create(ctx, rec))
	require.NotZero(t, rec.ID)

	byID, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.docx", byID.Filename)

	byToken, err := repo.FindByDownloadToken(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byToken.ID)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByDownloadToken(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
