package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"unicode/utf8"

	"knowledgehub/internal/model"
	repoMocks "knowledgehub/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
)

// completerFunc adapts a function to the Completer interface.
type completerFunc func(ctx context.Context, docContext, userMessage string) (string, error)

func (f completerFunc) Complete(ctx context.Context, docContext, userMessage string) (string, error) {
	return f(ctx, docContext, userMessage)
}

func TestAssistantService_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("without document context", func(t *testing.T) {
		var gotContext string
		c := completerFunc(func(ctx context.Context, docContext, userMessage string) (string, error) {
			gotContext = docContext
			return "an answer", nil
		})

		svc := NewAssistantService(c, new(repoMocks.MockDocumentRepository), nil)
		res, err := svc.Ask(ctx, Actor{ID: "user-1"}, "", "what is the leave policy?")

		assert.NoError(t, err)
		assert.Equal(t, "an answer", res.Answer)
		assert.Empty(t, gotContext)
	})

	t.Run("document content is injected", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID: "doc-1", Title: "Leave policy", Content: "25 days per year.",
			Status: model.StatusApproved, IsPublished: true,
		}, nil)

		var gotContext string
		c := completerFunc(func(ctx context.Context, docContext, userMessage string) (string, error) {
			gotContext = docContext
			return "25 days", nil
		})

		svc := NewAssistantService(c, mDocs, nil)
		res, err := svc.Ask(ctx, Actor{ID: "user-1"}, "doc-1", "how many days?")

		assert.NoError(t, err)
		assert.Equal(t, "25 days", res.Answer)
		assert.Contains(t, gotContext, "Leave policy")
		assert.Contains(t, gotContext, "25 days per year.")
	})

	t.Run("long content is truncated", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID: "doc-1", Title: "Big", Content: strings.Repeat("a", assistantContextLimit*2),
			Status: model.StatusApproved, IsPublished: true,
		}, nil)

		var gotContext string
		c := completerFunc(func(ctx context.Context, docContext, userMessage string) (string, error) {
			gotContext = docContext
			return "ok", nil
		})

		svc := NewAssistantService(c, mDocs, nil)
		_, err := svc.Ask(ctx, Actor{ID: "user-1"}, "doc-1", "summarize")

		assert.NoError(t, err)
		assert.LessOrEqual(t, len(gotContext), assistantContextLimit+len("Big\n\n"))
	})

	t.Run("truncation keeps multi-byte runes intact", func(t *testing.T) {
		// 3-byte runes that do not divide the limit evenly, so a byte-based
		// cut would land mid-rune.
		content := strings.Repeat("€", assistantContextLimit)
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID: "doc-1", Title: "Accents", Content: content,
			Status: model.StatusApproved, IsPublished: true,
		}, nil)

		var gotContext string
		c := completerFunc(func(ctx context.Context, docContext, userMessage string) (string, error) {
			gotContext = docContext
			return "ok", nil
		})

		svc := NewAssistantService(c, mDocs, nil)
		_, err := svc.Ask(ctx, Actor{ID: "user-1"}, "doc-1", "summarize")

		assert.NoError(t, err)
		assert.True(t, utf8.ValidString(gotContext))
		assert.LessOrEqual(t, len(gotContext), assistantContextLimit+len("Accents\n\n"))
	})

	t.Run("unpublished document is off limits", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID: "doc-1", CreatedBy: "owner-1", Status: model.StatusPendingApproval,
		}, nil)

		svc := NewAssistantService(nil, mDocs, nil)
		_, err := svc.Ask(ctx, Actor{ID: "stranger"}, "doc-1", "what does it say?")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing document", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		svc := NewAssistantService(nil, mDocs, nil)
		_, err := svc.Ask(ctx, Actor{ID: "user-1"}, "ghost", "anything")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank message", func(t *testing.T) {
		svc := NewAssistantService(nil, new(repoMocks.MockDocumentRepository), nil)
		_, err := svc.Ask(ctx, Actor{ID: "user-1"}, "", "   ")
		assert.ErrorIs(t, err, ErrMessageRequired)
	})
}
