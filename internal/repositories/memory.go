package repositories

import (
	"context"
	"sync"

	"github.com/rohits-web03/docdrop/internal/models"
)

// MemoryUserRepository is a mutex-guarded in-memory UserRepository. It backs
// the server when no DB_URL is configured and keeps tests free of Postgres.
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: make(map[uint]models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByVerificationToken(_ context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

// MemoryFileRepository is the in-memory FileRepository counterpart.
type MemoryFileRepository struct {
	mu     sync.Mutex
	nextID uint
	files  []models.FileRecord
}

func NewMemoryFileRepository() *MemoryFileRepository {
	return &MemoryFileRepository{nextID: 1}
}

func (r *MemoryFileRepository) Create(_ context.Context, file *models.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file.ID = r.nextID
	r.nextID++
	r.files = append(r.files, *file)
	return nil
}

func (r *MemoryFileRepository) FindByID(_ context.Context, id uint) (*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.ID == id {
			file := f
			return &file, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryFileRepository) FindByDownloadToken(_ context.Context, token string) (*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.DownloadToken == token {
			file := f
			return &file, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryFileRepository) ListAll(_ context.Context) ([]models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.FileRecord, len(r.files))
	copy(out, r.files)
	return out, nil
}

func (r *MemoryFileRepository) ListByUploader(_ context.Context, userID uint) ([]models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.FileRecord, 0)
	for _, f := range r.files {
		if f.UploadedBy == userID {
			out = append(out, f)
		}
	}
	return out, nil
}
