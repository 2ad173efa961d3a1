package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rohits-web03/docdrop/internal/models"
	"github.com/rohits-web03/docdrop/internal/repositories"
	"github.com/rohits-web03/docdrop/internal/utils"
)

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrNotFound        = errors.New("file not found")
)

// allowedExtensions is the document allow-list; anything else is rejected
// before a record or blob is written.
var allowedExtensions = []string{".pptx", ".docx", ".xlsx"}

// TransferService stores uploaded documents under opaque download tokens
// and resolves downloads by token.
type TransferService struct {
	files repositories.FileRepository
	blobs repositories.BlobStore
}

func NewTransferService(files repositories.FileRepository, blobs repositories.BlobStore) *TransferService {
	return &TransferService{files: files, blobs: blobs}
}

// Upload validates the filename extension, generates a download token, and
// persists the metadata record followed by the blob. The returned token is
// the sole handle for later retrieval.
func (s *TransferService) Upload(ctx context.Context, user *models.User, filename string, content io.Reader) (*models.FileRecord, error) {
	// Client filenames are display-only; strip any path components.
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) || filename == "" {
		return nil, ErrInvalidFileType
	}
	if !hasAllowedExtension(filename) {
		return nil, ErrInvalidFileType
	}

	token, err := utils.GenerateSecureToken(32) // 256-bit token
	if err != nil {
		return nil, fmt.Errorf("failed to create download token: %w", err)
	}

	record := &models.FileRecord{
		Filename:      filename,
		UploadedBy:    user.ID,
		DownloadToken: token,
	}
	if err := s.files.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store file record: %w", err)
	}
	if err := s.blobs.Save(ctx, record.BlobKey(), content); err != nil {
		return nil, fmt.Errorf("failed to store file content: %w", err)
	}
	return record, nil
}

// FindByToken returns the record for a download token.
func (s *TransferService) FindByToken(ctx context.Context, token string) (*models.FileRecord, error) {
	record, err := s.files.FindByDownloadToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// OpenContent opens the blob behind a record. A blob missing from storage
// is ErrNotFound, same as an unknown token.
func (s *TransferService) OpenContent(ctx context.Context, record *models.FileRecord) (io.ReadCloser, error) {
	content, err := s.blobs.Open(ctx, record.BlobKey())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return content, nil
}

// ResolveDownload is the one-shot token-to-content path for callers that do
// not need to interleave checks between the record lookup and the blob open.
func (s *TransferService) ResolveDownload(ctx context.Context, token string) (*models.FileRecord, io.ReadCloser, error) {
	record, err := s.FindByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.OpenContent(ctx, record)
	if err != nil {
		return nil, nil, err
	}
	return record, content, nil
}

// FindByID returns the record with the given numeric id.
func (s *TransferService) FindByID(ctx context.Context, id uint) (*models.FileRecord, error) {
	record, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// ListFor returns every record for ops users and only the user's own
// uploads otherwise.
func (s *TransferService) ListFor(ctx context.Context, user *models.User) ([]models.FileRecord, error) {
	if user.IsOpsUser {
		return s.files.ListAll(ctx)
	}
	return s.files.ListByUploader(ctx, user.ID)
}

func hasAllowedExtension(filename string) bool {
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
