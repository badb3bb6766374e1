package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/models"
)

func testApplication() models.Application {
	return models.Application{
		FullName:  "Jane Doe",
		Email:     "jdoe@caldwell.edu",
		StudentID: "123456",
	}
}

const testRecordJSON = `{"fullName":"Jane Doe","email":"jdoe@caldwell.edu","studentID":"123456"}`

func TestMemoryStore_Create(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "students", "id-1", testApplication()))

	docs := store.Documents("students")
	require.Len(t, docs, 1)
	assert.Equal(t, testApplication(), docs["id-1"])
	assert.Empty(t, store.Documents("faculty"))
	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryStore_Duplicate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, "students", "id-1", testApplication()))

	other := testApplication()
	other.FullName = "John Roe"
	err := store.Create(ctx, "students", "id-1", other)

	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDocumentExists))
	assert.Equal(t, "Jane Doe", store.Documents("students")["id-1"].FullName)
}

func TestMemoryStore_ContextErrors(t *testing.T) {
	store := NewMemoryStore()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.Create(canceled, "students", "id-1", testApplication())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDocumentWriteFailed))

	expired, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()
	err = store.Create(expired, "students", "id-2", testApplication())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStoreTimeout))

	assert.Empty(t, store.Documents("students"))
}
