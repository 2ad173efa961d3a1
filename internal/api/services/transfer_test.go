package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/docdrop/internal/models"
	"github.com/rohits-web03/docdrop/internal/repositories"
)

func newTestTransferService(t *testing.T) (*TransferService, *repositories.MemoryFileRepository, string) {
	t.Helper()
	dir := t.TempDir()
	blobs, err := repositories.NewDiskBlobStore(dir)
	require.NoError(t, err)
	files := repositories.NewMemoryFileRepository()
	return NewTransferService(files, blobs), files, dir
}

func TestUpload_InvalidExtension(t *testing.T) {
	t.Parallel()
	svc, files, dir := newTestTransferService(t)
	ctx := context.Background()
	user := &models.User{ID: 1}

	for _, name := range []string{"report.pdf", "script.sh", "archive.zip", "noext", "report.docx.exe"} {
		_, err := svc.Upload(ctx, user, name, strings.NewReader("content"))
		assert.ErrorIs(t, err, ErrInvalidFileType, "filename %q", name)
	}

	// No record and no blob may exist after a rejected upload.
	records, err := files.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_Success(t *testing.T) {
	t.Parallel()
	svc, _, dir := newTestTransferService(t)
	ctx := context.Background()
	user := &models.User{ID: 7}

	record, err := svc.Upload(ctx, user, "report.docx", strings.NewReader("hello doc"))
	require.NoError(t, err)
	assert.Equal(t, "report.docx", record.Filename)
	assert.Equal(t, uint(7), record.UploadedBy)
	require.NotEmpty(t, record.DownloadToken)
	// 32 random bytes, URL-safe base64: 43 chars and at least 128 bits.
	assert.Len(t, record.DownloadToken, 43)

	// Blob lands under {token}_{filename}.
	_, err = os.Stat(filepath.Join(dir, record.DownloadToken+"_report.docx"))
	require.NoError(t, err)

	got, content, err := svc.ResolveDownload(ctx, record.DownloadToken)
	require.NoError(t, err)
	defer content.Close()
	assert.Equal(t, record.ID, got.ID)
	data, err := io.ReadAll(content)
	require.NoError(t, err)
	assert.Equal(t, "hello doc", string(data))
}

func TestUpload_TokensUnique(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTransferService(t)
	ctx := context.Background()
	user := &models.User{ID: 1}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		record, err := svc.Upload(ctx, user, "report.docx", strings.NewReader("x"))
		require.NoError(t, err)
		require.False(t, seen[record.DownloadToken], "duplicate download token")
		seen[record.DownloadToken] = true
	}
}

func TestUpload_StripsPathComponents(t *testing.T) {
	t.Parallel()
	svc, _, dir := newTestTransferService(t)
	ctx := context.Background()

	record, err := svc.Upload(ctx, &models.User{ID: 1}, "../../etc/evil.docx", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "evil.docx", record.Filename)

	// Nothing escaped the upload directory.
	_, err = os.Stat(filepath.Join(dir, record.DownloadToken+"_evil.docx"))
	require.NoError(t, err)
}

func TestResolveDownload_UnknownToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTransferService(t)

	_, _, err := svc.ResolveDownload(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveDownload_MissingBlob(t *testing.T) {
	t.Parallel()
	svc, _, dir := newTestTransferService(t)
	ctx := context.Background()

	record, err := svc.Upload(ctx, &models.User{ID: 1}, "report.xlsx", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, record.BlobKey())))

	_, _, err = svc.ResolveDownload(ctx, record.DownloadToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFor_Visibility(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTransferService(t)
	ctx := context.Background()

	alice := &models.User{ID: 1}
	bob := &models.User{ID: 2}
	ops := &models.User{ID: 3, IsOpsUser: true}

	for i := 0; i < 3; i++ {
		_, err := svc.Upload(ctx, alice, "a.docx", strings.NewReader("x"))
		require.NoError(t, err)
	}
	_, err := svc.Upload(ctx, bob, "b.pptx", strings.NewReader("x"))
	require.NoError(t, err)

	aliceFiles, err := svc.ListFor(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, aliceFiles, 3)
	for _, f := range aliceFiles {
		assert.Equal(t, alice.ID, f.UploadedBy)
	}

	bobFiles, err := svc.ListFor(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, bobFiles, 1)

	opsFiles, err := svc.ListFor(ctx, ops)
	require.NoError(t, err)
	assert.Len(t, opsFiles, 4)
}

func TestListFor_EmptyForNewUser(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestTransferService(t)

	files, err := svc.ListFor(context.Background(), &models.User{ID: 42})
	require.NoError(t, err)
	assert.Empty(t, files)
}
