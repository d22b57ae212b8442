package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
	"knowledgehub/internal/storage"
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentInput carries the user-editable document fields.
type DocumentInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Summary    string `json:"summary"`
	CategoryID string `json:"category_id"`
}

// DocumentService defines the use cases of the document workflow: submission,
// review, publication-gated listing and the view/download counters.
type DocumentService interface {
	// Submit creates a document in pending_approval with the publication flag off.
	Submit(ctx context.Context, actor Actor, in DocumentInput) (*model.Document, error)

	// ListPublished returns approved, published documents matching the filter.
	ListPublished(ctx context.Context, f repository.DocumentFilter, limit, offset int) (*DocumentListResult, error)

	// ListMine returns the actor's own documents in any status.
	ListMine(ctx context.Context, actor Actor, limit, offset int) (*DocumentListResult, error)

	// ListPending returns documents awaiting review. Admin only.
	ListPending(ctx context.Context, actor Actor, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document. Unpublished documents are visible only to
	// their creator and admins.
	Get(ctx context.Context, actor Actor, id string) (*model.Document, error)

	// Update replaces the editable fields. Creator only, and only before review.
	Update(ctx context.Context, actor Actor, id string, in DocumentInput) (*model.Document, error)

	// Approve publishes a pending document, recording the approver. Admin only.
	Approve(ctx context.Context, actor Actor, id string) (*model.Document, error)

	// Reject declines a pending document with an optional free-text reason. Admin only.
	Reject(ctx context.Context, actor Actor, id, reason string) (*model.Document, error)

	// RecordView increments the view counter and returns the new value.
	RecordView(ctx context.Context, id string) (int64, error)

	// RecordDownload increments the download counter and returns the new value.
	RecordDownload(ctx context.Context, id string) (int64, error)

	// Delete removes a document, its attachment rows and their stored objects.
	// Creator or admin.
	Delete(ctx context.Context, actor Actor, id string) error
}

type documentService struct {
	docs     repository.DocumentRepository
	atts     repository.AttachmentRepository
	store    storage.Storage
	activity repository.ActivityLogRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(docs repository.DocumentRepository, atts repository.AttachmentRepository, store storage.Storage, activity repository.ActivityLogRepository) DocumentService {
	return &documentService{docs: docs, atts: atts, store: store, activity: activity}
}

func (s *documentService) Submit(ctx context.Context, actor Actor, in DocumentInput) (*model.Document, error) {
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	now := time.Now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Content:     in.Content,
		Summary:     in.Summary,
		CategoryID:  in.CategoryID,
		Status:      model.StatusPendingApproval,
		IsPublished: false,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	recordActivity(ctx, s.activity, actor.ID, "document.submitted", "document", stored.ID)
	return stored, nil
}

func (s *documentService) ListPublished(ctx context.Context, f repository.DocumentFilter, limit, offset int) (*DocumentListResult, error) {
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.docs.ListPublished(ctx, f, pq)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) ListMine(ctx context.Context, actor Actor, limit, offset int) (*DocumentListResult, error) {
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.docs.ListByCreator(ctx, actor.ID, pq)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) ListPending(ctx context.Context, actor Actor, limit, offset int) (*DocumentListResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.docs.ListByStatus(ctx, model.StatusPendingApproval, pq)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, actor Actor, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Publication flag alone decides visibility for ordinary users.
	if !doc.Visible() && doc.CreatedBy != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, actor Actor, id string, in DocumentInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.CreatedBy != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if doc.Status != model.StatusDraft && doc.Status != model.StatusPendingApproval {
		return nil, ErrNotPending
	}
	doc.Title = in.Title
	doc.Content = in.Content
	doc.Summary = in.Summary
	doc.CategoryID = in.CategoryID
	return s.docs.UpdateContent(ctx, doc)
}

func (s *documentService) Approve(ctx context.Context, actor Actor, id string) (*model.Document, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.Approve(ctx, id, actor.ID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotPending
		}
		return nil, err
	}
	recordActivity(ctx, s.activity, actor.ID, "document.approved", "document", doc.ID)
	return doc, nil
}

func (s *documentService) Reject(ctx context.Context, actor Actor, id, reason string) (*model.Document, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.Reject(ctx, id, reason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotPending
		}
		return nil, err
	}
	recordActivity(ctx, s.activity, actor.ID, "document.rejected", "document", doc.ID)
	return doc, nil
}

func (s *documentService) RecordView(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, ErrIDRequired
	}
	n, err := s.docs.IncrementViewCount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return n, nil
}

func (s *documentService) RecordDownload(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, ErrIDRequired
	}
	n, err := s.docs.IncrementDownloadCount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return n, nil
}

// Delete removes the stored attachment objects first, then the document row;
// attachment rows go with the document via the FK cascade. A storage delete
// failure aborts so the metadata keeps pointing at the surviving object.
func (s *documentService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if doc.CreatedBy != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	atts, err := s.atts.ListByDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("list attachments: %w", err)
	}
	for _, att := range atts {
		if err := s.store.Delete(ctx, att.StoragePath); err != nil {
			return fmt.Errorf("delete attachment object %s: %w", att.StoragePath, err)
		}
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	recordActivity(ctx, s.activity, actor.ID, "document.deleted", "document", id)
	return nil
}
