package repositories

import (
	"context"
	"errors"

	"github.com/rohits-web03/docdrop/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository persists user records keyed by email and verification token.
type UserRepository interface {
	// Create inserts the user and fills in its ID. Returns ErrDuplicateEmail
	// when the unique-email constraint rejects the insert; the constraint,
	// not application locking, is what makes concurrent signups safe.
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// FileRepository persists file metadata keyed by id and download token.
type FileRepository interface {
	Create(ctx context.Context, file *models.FileRecord) error
	FindByID(ctx context.Context, id uint) (*models.FileRecord, error)
	FindByDownloadToken(ctx context.Context, token string) (*models.FileRecord, error)
	ListAll(ctx context.Context) ([]models.FileRecord, error)
	ListByUploader(ctx context.Context, userID uint) ([]models.FileRecord, error)
}
