package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

func TestWarrantyService_CRUD(t *testing.T) {
	database := setupTestDB(t, "raf24_test_content", "project_warranties")
	svc := NewWarrantyService(database)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.ProjectWarranty{
		Title: "ضمان الهيكل الإنشائي",
		Years: 10,
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.True(t, created.IsActive, "new entries are active")

	updated, err := svc.Update(ctx, created.ID, map[string]interface{}{
		"years":     15,
		"is_active": false,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Years)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, created.ID, map[string]interface{}{"price": 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, primitive.NewObjectID(), map[string]interface{}{"years": 1})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestWarrantyService_CreateAlwaysStartsActive(t *testing.T) {
	database := setupTestDB(t, "raf24_test_content", "project_warranties")
	svc := NewWarrantyService(database)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.ProjectWarranty{
		Title:    "ضمان السباكة",
		Years:    2,
		IsActive: false,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive, "create ignores the submitted flag; deactivation goes through Update")

	fetched, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsActive)
}

func TestFeatureService_ListActiveOnly(t *testing.T) {
	database := setupTestDB(t, "raf24_test_content", "project_features")
	svc := NewFeatureService(database)
	ctx := context.Background()

	first, err := svc.Create(ctx, &models.ProjectFeature{Title: "مسبح", DisplayOrder: 2})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &models.ProjectFeature{Title: "نادي رياضي", DisplayOrder: 1})
	require.NoError(t, err)

	_, err = svc.Update(ctx, first.ID, map[string]interface{}{"is_active": false})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "نادي رياضي", all[0].Title, "sorted by display_order")

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestLocationFeatureService_Reorder(t *testing.T) {
	database := setupTestDB(t, "raf24_test_content", "location_features")
	svc := NewLocationFeatureService(database)
	ctx := context.Background()

	mosque, err := svc.Create(ctx, &models.LocationFeature{Title: "مسجد", Distance: "200 م", DisplayOrder: 1})
	require.NoError(t, err)
	school, err := svc.Create(ctx, &models.LocationFeature{Title: "مدرسة", Distance: "1 كم", DisplayOrder: 2})
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(ctx, []OrderUpdate{
		{ID: mosque.ID, Order: 2},
		{ID: school.ID, Order: 1},
	}))

	listed, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "مدرسة", listed[0].Title)

	err = svc.Reorder(ctx, []OrderUpdate{{ID: primitive.NewObjectID(), Order: 9}})
	assert.ErrorIs(t, err, ErrNotFound)
}
