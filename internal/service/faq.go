package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

// FAQListResult is the service-level DTO for paginated FAQs.
type FAQListResult struct {
	Items []model.FAQ `json:"data"`
	Total int         `json:"total"`
}

// SubmissionListResult is the service-level DTO for paginated submissions.
type SubmissionListResult struct {
	Items []model.FAQSubmission `json:"data"`
	Total int                   `json:"total"`
}

// FAQInput carries the admin-editable FAQ fields.
type FAQInput struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	CategoryID  string `json:"category_id"`
	IsPublished bool   `json:"is_published"`
}

// FAQService covers the public FAQ list, helpfulness votes and the submission
// moderation workflow: a user question is pending until an admin approves it
// with an answer (promoting it into a published FAQ) or rejects it.
type FAQService interface {
	ListPublished(ctx context.Context, categoryID string, limit, offset int) (*FAQListResult, error)

	// Vote bumps the helpful or not-helpful counter.
	Vote(ctx context.Context, id string, helpful bool) error

	// Submit records a user question as a pending submission.
	Submit(ctx context.Context, actor Actor, question, categoryID string) (*model.FAQSubmission, error)

	// ListMySubmissions returns the actor's own submissions in any status.
	ListMySubmissions(ctx context.Context, actor Actor, limit, offset int) (*SubmissionListResult, error)

	// ListPendingSubmissions returns submissions awaiting moderation. Admin only.
	ListPendingSubmissions(ctx context.Context, actor Actor, limit, offset int) (*SubmissionListResult, error)

	// ApproveSubmission records the decision and promotes the question into a
	// published FAQ carrying the admin-authored answer. Admin only.
	ApproveSubmission(ctx context.Context, actor Actor, id, answer, notes string) (*model.FAQ, error)

	// RejectSubmission records a rejection with free-text notes. Admin only.
	RejectSubmission(ctx context.Context, actor Actor, id, notes string) (*model.FAQSubmission, error)

	// UpdateFAQ edits or unpublishes an existing FAQ. Admin only.
	UpdateFAQ(ctx context.Context, actor Actor, id string, in FAQInput) (*model.FAQ, error)

	// DeleteFAQ removes an FAQ. Admin only.
	DeleteFAQ(ctx context.Context, actor Actor, id string) error
}

type faqService struct {
	faqs     repository.FAQRepository
	subs     repository.FAQSubmissionRepository
	activity repository.ActivityLogRepository
}

// NewFAQService constructs a new FAQService.
func NewFAQService(faqs repository.FAQRepository, subs repository.FAQSubmissionRepository, activity repository.ActivityLogRepository) FAQService {
	return &faqService{faqs: faqs, subs: subs, activity: activity}
}

func (s *faqService) ListPublished(ctx context.Context, categoryID string, limit, offset int) (*FAQListResult, error) {
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.faqs.ListPublished(ctx, categoryID, pq)
	if err != nil {
		return nil, err
	}
	return &FAQListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *faqService) Vote(ctx context.Context, id string, helpful bool) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.faqs.Vote(ctx, id, helpful); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *faqService) Submit(ctx context.Context, actor Actor, question, categoryID string) (*model.FAQSubmission, error) {
	if question == "" {
		return nil, ErrQuestionRequired
	}
	now := time.Now().UTC()
	sub := &model.FAQSubmission{
		ID:          uuid.New().String(),
		Question:    question,
		CategoryID:  categoryID,
		SubmittedBy: actor.ID,
		Status:      model.SubmissionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.subs.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.activity, actor.ID, "faq.submitted", "faq_submission", stored.ID)
	return stored, nil
}

func (s *faqService) ListMySubmissions(ctx context.Context, actor Actor, limit, offset int) (*SubmissionListResult, error) {
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.subs.ListBySubmitter(ctx, actor.ID, pq)
	if err != nil {
		return nil, err
	}
	return &SubmissionListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *faqService) ListPendingSubmissions(ctx context.Context, actor Actor, limit, offset int) (*SubmissionListResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	pq := normalizePage(repository.PageQuery{Limit: limit, Offset: offset})
	res, err := s.subs.ListByStatus(ctx, model.SubmissionPending, pq)
	if err != nil {
		return nil, err
	}
	return &SubmissionListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *faqService) ApproveSubmission(ctx context.Context, actor Actor, id, answer, notes string) (*model.FAQ, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if answer == "" {
		return nil, ErrAnswerRequired
	}

	sub, err := s.subs.Decide(ctx, id, model.SubmissionApproved, answer, notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotPending
		}
		return nil, err
	}

	now := time.Now().UTC()
	faq, err := s.faqs.Create(ctx, &model.FAQ{
		ID:          uuid.New().String(),
		Question:    sub.Question,
		Answer:      answer,
		CategoryID:  sub.CategoryID,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.activity, actor.ID, "faq.approved", "faq_submission", sub.ID)
	return faq, nil
}

func (s *faqService) RejectSubmission(ctx context.Context, actor Actor, id, notes string) (*model.FAQSubmission, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	sub, err := s.subs.Decide(ctx, id, model.SubmissionRejected, "", notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotPending
		}
		return nil, err
	}
	recordActivity(ctx, s.activity, actor.ID, "faq.rejected", "faq_submission", sub.ID)
	return sub, nil
}

func (s *faqService) UpdateFAQ(ctx context.Context, actor Actor, id string, in FAQInput) (*model.FAQ, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if in.Question == "" {
		return nil, ErrQuestionRequired
	}
	if in.Answer == "" {
		return nil, ErrAnswerRequired
	}
	faq, err := s.faqs.Update(ctx, &model.FAQ{
		ID:          id,
		Question:    in.Question,
		Answer:      in.Answer,
		CategoryID:  in.CategoryID,
		IsPublished: in.IsPublished,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return faq, nil
}

func (s *faqService) DeleteFAQ(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if id == "" {
		return ErrIDRequired
	}
	return s.faqs.Delete(ctx, id)
}
