package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/furnistore/backend/internal/repository"
)

// CategoryService answers category read queries.
type CategoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// GetAllCategories returns every category, name-ordered.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	out := make([]Category, 0, len(categories))
	for i := range categories {
		out = append(out, toCategory(&categories[i]))
	}
	return out, nil
}

// GetActiveCategories returns active categories with derived product
// counts (active products only).
func (s *CategoryService) GetActiveCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	out := make([]Category, 0, len(categories))
	for i := range categories {
		out = append(out, toCategory(&categories[i]))
	}
	return out, nil
}

// GetCategoryByID returns a single category or ErrCategoryNotFound.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	view := toCategory(category)
	return &view, nil
}
