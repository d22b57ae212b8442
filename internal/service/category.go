package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

var ErrNameRequired = errors.New("name is required")

// CategoryService backs the category picker and the admin category console.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id string) (*model.Category, error)

	// Create adds a category with a slug derived from the name. Admin only.
	Create(ctx context.Context, actor Actor, name string) (*model.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Create(ctx context.Context, actor Actor, name string) (*model.Category, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.categories.Create(ctx, &model.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slugify(name),
		CreatedAt: time.Now().UTC(),
	})
}

// slugify lowercases the name and collapses runs of non-alphanumerics to a
// single hyphen.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
