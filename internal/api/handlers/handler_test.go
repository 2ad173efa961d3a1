package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/docdrop/internal/api/services"
	"github.com/rohits-web03/docdrop/internal/auth"
	"github.com/rohits-web03/docdrop/internal/models"
	"github.com/rohits-web03/docdrop/internal/repositories"
)

// stubNotifier records deliveries on a channel and can be forced to fail.
type stubNotifier struct {
	sent chan [2]string // email, token
	err  error
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{sent: make(chan [2]string, 8)}
}

func (n *stubNotifier) SendVerificationEmail(email, token string) error {
	n.sent <- [2]string{email, token}
	return n.err
}

type testEnv struct {
	h        *Handler
	users    *repositories.MemoryUserRepository
	files    *repositories.MemoryFileRepository
	tokens   *auth.TokenService
	notifier *stubNotifier
	blobDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	blobs, err := repositories.NewDiskBlobStore(dir)
	require.NoError(t, err)

	users := repositories.NewMemoryUserRepository()
	files := repositories.NewMemoryFileRepository()
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)
	notifier := newStubNotifier()
	transfers := services.NewTransferService(files, blobs)

	return &testEnv{
		h:        New(users, transfers, tokens, notifier),
		users:    users,
		files:    files,
		tokens:   tokens,
		notifier: notifier,
		blobDir:  dir,
	}
}

func (e *testEnv) seedUser(t *testing.T, email, password string, ops, verified bool) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
		IsOpsUser:      ops,
		IsVerified:     verified,
	}
	if !verified {
		token := "verify-" + email
		user.VerificationToken = &token
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) waitForEmail(t *testing.T) (email, token string) {
	t.Helper()
	select {
	case sent := <-e.notifier.sent:
		return sent[0], sent[1]
	case <-time.After(2 * time.Second):
		t.Fatal("verification email was never sent")
		return "", ""
	}
}
