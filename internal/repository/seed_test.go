package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edumanage-api/internal/models"
)

func TestSeedDemoDataWritesOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryDocumentStore(), StoreOptions{})

	require.NoError(t, store.SeedDemoData(ctx))
	students, err := store.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 8)
	assert.Equal(t, "STD-2024-001", students[0].ID)
	assert.Equal(t, models.StudentStatusInactive, students[7].Status)

	courses, err := store.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 6)
	assert.Equal(t, models.CourseStatusUpcoming, courses[2].Status)

	require.NoError(t, store.SaveStudents(ctx, students[:1]))
	require.NoError(t, store.SeedDemoData(ctx))

	students, err = store.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestSeedDemoDataKeepsEmptiedRoster(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryDocumentStore(), StoreOptions{})
	require.NoError(t, store.SaveStudents(ctx, []models.Student{}))

	require.NoError(t, store.SeedDemoData(ctx))

	students, err := store.Students(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}
