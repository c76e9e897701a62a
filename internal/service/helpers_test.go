package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edumanage-api/internal/models"
	"github.com/noah-isme/edumanage-api/internal/repository"
)

func newTestStore(t *testing.T, students ...models.Student) *repository.Store {
	t.Helper()
	store := repository.NewStore(repository.NewMemoryDocumentStore(), repository.StoreOptions{})
	if len(students) > 0 {
		require.NoError(t, store.SaveStudents(context.Background(), students))
	}
	return store
}

func student(id, first, last, class string) models.Student {
	return models.Student{ID: id, FirstName: first, LastName: last, Class: class, Status: models.StudentStatusActive}
}

type recordingLedgerMetrics struct {
	operations []string
	entries    int
}

func (r *recordingLedgerMetrics) RecordLedgerWrite(operation string, entries int) {
	r.operations = append(r.operations, operation)
	r.entries += entries
}
