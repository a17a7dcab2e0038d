package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"issue-tracker/internal/entity"
	"issue-tracker/internal/repository"
)

// MaxUploadSize caps attachment uploads at 10MB.
const MaxUploadSize = 10 << 20

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"application/pdf": true,
}

// AttachmentService stores uploaded file bytes on disk and their
// metadata in the attachment repository.
type AttachmentService struct {
	issues      repository.IssueRepository
	attachments repository.AttachmentRepository
	dir         string
}

func NewAttachmentService(issues repository.IssueRepository, attachments repository.AttachmentRepository, dir string) *AttachmentService {
	return &AttachmentService{issues: issues, attachments: attachments, dir: dir}
}

// Upload writes the file under the upload directory with a unique name
// and records the attachment. The issue must exist; mime type and size
// are validated against the fixed allow-list and ceiling.
func (s *AttachmentService) Upload(ctx context.Context, issueID, uploaderID int, filename, mimeType string, size int64, r io.Reader) (*entity.Attachment, error) {
	if _, err := s.issues.GetByID(ctx, issueID); err != nil {
		return nil, err
	}
	if uploaderID == 0 {
		return nil, entity.Invalid("uploaderId is required")
	}
	if size > MaxUploadSize {
		return nil, entity.Invalid("file exceeds the 10MB upload limit")
	}
	if !allowedMimeTypes[mimeType] {
		return nil, entity.Invalid("invalid file type; only JPEG, PNG, GIF and PDF files are allowed")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	storedName := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString(), filename)
	storedPath := filepath.Join(s.dir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	// LimitReader guards against a lying Content-Length.
	if _, err := io.Copy(dst, io.LimitReader(r, MaxUploadSize+1)); err != nil {
		os.Remove(storedPath)
		return nil, err
	}

	attachment := &entity.Attachment{
		Filename:   filename,
		Filepath:   storedPath,
		IssueID:    issueID,
		UploaderID: uploaderID,
	}
	created, err := s.attachments.Create(ctx, attachment)
	if err != nil {
		logger.Error().Err(err).Msgf("Error recording attachment for issue %d", issueID)
		os.Remove(storedPath)
		return nil, err
	}

	return created, nil
}

func (s *AttachmentService) ListByIssue(ctx context.Context, issueID int) ([]entity.Attachment, error) {
	if _, err := s.issues.GetByID(ctx, issueID); err != nil {
		return nil, err
	}
	return s.attachments.ListByIssue(ctx, issueID)
}

// Get returns the metadata for a stored attachment, for download.
func (s *AttachmentService) Get(ctx context.Context, id int) (*entity.Attachment, error) {
	return s.attachments.GetByID(ctx, id)
}
