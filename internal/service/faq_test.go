package service

import (
	"context"
	"database/sql"
	"testing"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
	repoMocks "knowledgehub/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFAQService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path starts pending", func(t *testing.T) {
		mSubs := new(repoMocks.MockFAQSubmissionRepository)
		mSubs.On("Create", ctx, mock.MatchedBy(func(sub *model.FAQSubmission) bool {
			return sub.Status == model.SubmissionPending &&
				sub.Question == "How do I reset my password?" &&
				sub.SubmittedBy == "user-1"
		})).Return(&model.FAQSubmission{ID: "sub-1", Status: model.SubmissionPending}, nil)

		svc := NewFAQService(nil, mSubs, nil)
		sub, err := svc.Submit(ctx, Actor{ID: "user-1"}, "How do I reset my password?", "cat-1")

		assert.NoError(t, err)
		assert.Equal(t, model.SubmissionPending, sub.Status)
		mSubs.AssertExpectations(t)
	})

	t.Run("empty question", func(t *testing.T) {
		svc := NewFAQService(nil, new(repoMocks.MockFAQSubmissionRepository), nil)
		_, err := svc.Submit(ctx, Actor{ID: "user-1"}, "", "")
		assert.ErrorIs(t, err, ErrQuestionRequired)
	})
}

func TestFAQService_ApproveSubmission(t *testing.T) {
	ctx := context.Background()
	admin := Actor{ID: "admin-1", Role: model.RoleAdmin}

	t.Run("approval promotes into a published FAQ", func(t *testing.T) {
		mFAQs := new(repoMocks.MockFAQRepository)
		mSubs := new(repoMocks.MockFAQSubmissionRepository)

		mSubs.On("Decide", ctx, "sub-1", model.SubmissionApproved, "Use the reset link.", "looks good").
			Return(&model.FAQSubmission{
				ID:          "sub-1",
				Question:    "How do I reset my password?",
				CategoryID:  "cat-1",
				Status:      model.SubmissionApproved,
				AdminAnswer: "Use the reset link.",
			}, nil)
		mFAQs.On("Create", ctx, mock.MatchedBy(func(faq *model.FAQ) bool {
			return faq.Question == "How do I reset my password?" &&
				faq.Answer == "Use the reset link." &&
				faq.CategoryID == "cat-1" &&
				faq.IsPublished
		})).Return(&model.FAQ{ID: "faq-1", IsPublished: true}, nil)

		svc := NewFAQService(mFAQs, mSubs, nil)
		faq, err := svc.ApproveSubmission(ctx, admin, "sub-1", "Use the reset link.", "looks good")

		assert.NoError(t, err)
		assert.True(t, faq.IsPublished)
		mFAQs.AssertExpectations(t)
		mSubs.AssertExpectations(t)
	})

	t.Run("answer is mandatory", func(t *testing.T) {
		svc := NewFAQService(nil, new(repoMocks.MockFAQSubmissionRepository), nil)
		_, err := svc.ApproveSubmission(ctx, admin, "sub-1", "", "")
		assert.ErrorIs(t, err, ErrAnswerRequired)
	})

	t.Run("already decided submission", func(t *testing.T) {
		mSubs := new(repoMocks.MockFAQSubmissionRepository)
		mSubs.On("Decide", ctx, "sub-1", model.SubmissionApproved, "answer", "").
			Return(nil, sql.ErrNoRows)

		svc := NewFAQService(nil, mSubs, nil)
		_, err := svc.ApproveSubmission(ctx, admin, "sub-1", "answer", "")
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		svc := NewFAQService(nil, new(repoMocks.MockFAQSubmissionRepository), nil)
		_, err := svc.ApproveSubmission(ctx, Actor{ID: "user-1"}, "sub-1", "answer", "")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestFAQService_RejectSubmission(t *testing.T) {
	ctx := context.Background()
	admin := Actor{ID: "admin-1", Role: model.RoleAdmin}

	mFAQs := new(repoMocks.MockFAQRepository)
	mSubs := new(repoMocks.MockFAQSubmissionRepository)
	mSubs.On("Decide", ctx, "sub-1", model.SubmissionRejected, "", "off topic").
		Return(&model.FAQSubmission{ID: "sub-1", Status: model.SubmissionRejected, AdminNotes: "off topic"}, nil)

	svc := NewFAQService(mFAQs, mSubs, nil)
	sub, err := svc.RejectSubmission(ctx, admin, "sub-1", "off topic")

	assert.NoError(t, err)
	assert.Equal(t, model.SubmissionRejected, sub.Status)
	// A rejection never creates an FAQ.
	mFAQs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFAQService_Vote(t *testing.T) {
	ctx := context.Background()

	t.Run("helpful vote", func(t *testing.T) {
		mFAQs := new(repoMocks.MockFAQRepository)
		mFAQs.On("Vote", ctx, "faq-1", true).Return(nil)

		svc := NewFAQService(mFAQs, nil, nil)
		assert.NoError(t, svc.Vote(ctx, "faq-1", true))
		mFAQs.AssertExpectations(t)
	})

	t.Run("unknown faq", func(t *testing.T) {
		mFAQs := new(repoMocks.MockFAQRepository)
		mFAQs.On("Vote", ctx, "missing", false).Return(sql.ErrNoRows)

		svc := NewFAQService(mFAQs, nil, nil)
		assert.ErrorIs(t, svc.Vote(ctx, "missing", false), ErrNotFound)
	})
}

func TestFAQService_ListPublished(t *testing.T) {
	ctx := context.Background()

	mFAQs := new(repoMocks.MockFAQRepository)
	mFAQs.On("ListPublished", ctx, "cat-1", repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.FAQ]{Items: []model.FAQ{{ID: "faq-1"}}, Total: 1}, nil)

	svc := NewFAQService(mFAQs, nil, nil)
	res, err := svc.ListPublished(ctx, "cat-1", 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestFAQService_AdminGuards(t *testing.T) {
	ctx := context.Background()
	user := Actor{ID: "user-1"}
	svc := NewFAQService(new(repoMocks.MockFAQRepository), new(repoMocks.MockFAQSubmissionRepository), nil)

	_, err := svc.ListPendingSubmissions(ctx, user, 10, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateFAQ(ctx, user, "faq-1", FAQInput{Question: "q", Answer: "a"})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.DeleteFAQ(ctx, user, "faq-1"), ErrForbidden)
}

func TestFAQService_UpdateFAQ(t *testing.T) {
	ctx := context.Background()
	admin := Actor{ID: "admin-1", Role: model.RoleAdmin}

	t.Run("unpublish keeps content", func(t *testing.T) {
		mFAQs := new(repoMocks.MockFAQRepository)
		mFAQs.On("Update", ctx, mock.MatchedBy(func(faq *model.FAQ) bool {
			return faq.ID == "faq-1" && !faq.IsPublished
		})).Return(&model.FAQ{ID: "faq-1", IsPublished: false}, nil)

		svc := NewFAQService(mFAQs, nil, nil)
		faq, err := svc.UpdateFAQ(ctx, admin, "faq-1", FAQInput{Question: "q", Answer: "a", IsPublished: false})

		assert.NoError(t, err)
		assert.False(t, faq.IsPublished)
	})

	t.Run("missing faq", func(t *testing.T) {
		mFAQs := new(repoMocks.MockFAQRepository)
		mFAQs.On("Update", ctx, mock.Anything).Return(nil, sql.ErrNoRows)

		svc := NewFAQService(mFAQs, nil, nil)
		_, err := svc.UpdateFAQ(ctx, admin, "missing", FAQInput{Question: "q", Answer: "a"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
