package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnistore/backend/internal/entity"
)

func TestGetActiveCategories(t *testing.T) {
	parent := int64(1)
	svc := NewCategoryService(newFakeCategoryRepo(
		entity.Category{ID: 1, Name: "Living Room", IsActive: true, ProductCount: 3},
		entity.Category{ID: 2, Name: "Sofas", IsActive: true, ParentCategoryID: &parent, ProductCount: 2},
		entity.Category{ID: 3, Name: "Archive", IsActive: false},
	))

	active, err := svc.GetActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Living Room", active[0].Name)
	assert.Equal(t, 3, active[0].ProductCount)
	require.NotNil(t, active[1].ParentCategoryID)
	assert.Equal(t, parent, *active[1].ParentCategoryID)
}

func TestGetAllCategoriesIncludesInactive(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(
		entity.Category{ID: 1, Name: "Living Room", IsActive: true},
		entity.Category{ID: 2, Name: "Archive", IsActive: false},
	))

	all, err := svc.GetAllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetCategoryByID(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(
		entity.Category{ID: 1, Name: "Living Room", IsActive: true},
	))

	category, err := svc.GetCategoryByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Living Room", category.Name)

	_, err = svc.GetCategoryByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
