package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrTitleRequired       = errors.New("title is required")
	ErrQuestionRequired    = errors.New("question is required")
	ErrAnswerRequired      = errors.New("answer is required")
	ErrDisplayNameRequired = errors.New("display name is required")
	ErrInvalidRole         = errors.New("invalid role")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrNotPending          = errors.New("not in a pending state")
)

// Actor identifies the authenticated caller for ownership and role checks.
type Actor struct {
	ID   string
	Role model.Role
}

// IsAdmin reports whether the actor may use the admin operations.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// recordActivity appends an audit entry. Failures are swallowed: the audit
// trail never blocks the operation it describes.
func recordActivity(ctx context.Context, repo repository.ActivityLogRepository, actorID, action, entityType, entityID string) {
	if repo == nil {
		return
	}
	_ = repo.Create(ctx, &model.ActivityLog{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	})
}

func normalizePage(pq repository.PageQuery) repository.PageQuery {
	if pq.Limit <= 0 {
		pq.Limit = 10
	}
	if pq.Offset < 0 {
		pq.Offset = 0
	}
	return pq
}
