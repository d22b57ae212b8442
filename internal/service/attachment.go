package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
	"knowledgehub/internal/storage"
)

var (
	ErrReaderNil    = errors.New("reader is nil")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

// presignExpiry bounds how long resolved download URLs stay valid.
const presignExpiry = 15 * time.Minute

// PreviewKind tells the client which inline preview to render for a file.
type PreviewKind string

const (
	PreviewPDF   PreviewKind = "pdf"
	PreviewImage PreviewKind = "image"
	PreviewAudio PreviewKind = "audio"
	PreviewVideo PreviewKind = "video"
	PreviewOther PreviewKind = "other"
)

// previewByExt maps file extensions to preview kinds. Unknown extensions fall
// back to a generic download link.
var previewByExt = map[string]PreviewKind{
	".pdf":  PreviewPDF,
	".png":  PreviewImage,
	".jpg":  PreviewImage,
	".jpeg": PreviewImage,
	".gif":  PreviewImage,
	".webp": PreviewImage,
	".svg":  PreviewImage,
	".mp3":  PreviewAudio,
	".wav":  PreviewAudio,
	".ogg":  PreviewAudio,
	".m4a":  PreviewAudio,
	".mp4":  PreviewVideo,
	".webm": PreviewVideo,
	".mov":  PreviewVideo,
}

// PreviewKindFor sniffs the preview kind from the file name's extension.
func PreviewKindFor(fileName string) PreviewKind {
	ext := strings.ToLower(filepath.Ext(fileName))
	if kind, ok := previewByExt[ext]; ok {
		return kind
	}
	return PreviewOther
}

// AttachmentView is an attachment with its resolved download URL and preview kind.
type AttachmentView struct {
	model.Attachment
	URL     string      `json:"url"`
	Preview PreviewKind `json:"preview"`
}

// AttachmentService defines the attachment lifecycle: upload, URL resolution
// with type-specific preview selection, and deletion.
type AttachmentService interface {
	// Upload stores the content under a randomized key, then writes the
	// metadata row. The size limit is enforced before any storage call. When
	// the metadata write fails the stored object is deleted again.
	Upload(ctx context.Context, actor Actor, documentID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Attachment, error)

	// ListByDocument returns the document's attachments with presigned URLs.
	ListByDocument(ctx context.Context, documentID string) ([]AttachmentView, error)

	// Delete removes the stored object and the metadata row. Uploader, document
	// creator or admin.
	Delete(ctx context.Context, actor Actor, id string) error
}

type attachmentService struct {
	atts     repository.AttachmentRepository
	docs     repository.DocumentRepository
	store    storage.Storage
	maxBytes int64
}

// NewAttachmentService constructs a new AttachmentService. maxBytes bounds
// accepted upload sizes.
func NewAttachmentService(atts repository.AttachmentRepository, docs repository.DocumentRepository, store storage.Storage, maxBytes int64) AttachmentService {
	return &attachmentService{atts: atts, docs: docs, store: store, maxBytes: maxBytes}
}

func (s *attachmentService) Upload(ctx context.Context, actor Actor, documentID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Attachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.CreatedBy != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	// Randomized storage key: UUID + the original extension.
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("attachments", documentID, uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	att := &model.Attachment{
		ID:          uuid.New().String(),
		DocumentID:  documentID,
		FileName:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		UploadedBy:  actor.ID,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.atts.Create(ctx, att)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// ListByDocument resolves a presigned URL per attachment at read time.
func (s *attachmentService) ListByDocument(ctx context.Context, documentID string) ([]AttachmentView, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	atts, err := s.atts.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	views := make([]AttachmentView, 0, len(atts))
	for _, att := range atts {
		u, err := s.store.PresignGet(ctx, att.StoragePath, presignExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", att.StoragePath, err)
		}
		views = append(views, AttachmentView{
			Attachment: att,
			URL:        u,
			Preview:    PreviewKindFor(att.FileName),
		})
	}
	return views, nil
}

// Delete removes the object from storage first; if that fails the metadata
// row stays so the reference is not lost.
func (s *attachmentService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	att, err := s.atts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if att.UploadedBy != actor.ID && !actor.IsAdmin() {
		doc, err := s.docs.FindByID(ctx, att.DocumentID)
		if err != nil || doc.CreatedBy != actor.ID {
			return ErrForbidden
		}
	}
	if err := s.store.Delete(ctx, att.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.atts.Delete(ctx, id)
}
