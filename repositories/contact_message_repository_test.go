package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"phantoms-store/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadOnlyWritesTrue(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactMessageRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "contact_messages" SET "is_read"=$1 WHERE id = $2`)).
		WithArgs(true, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contact_messages" WHERE "contact_messages"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "message", "is_read", "created_at"}).
			AddRow(7, "Asha", "asha@example.com", "Hi", true, time.Now()))

	msg, err := repo.MarkRead(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, msg.IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadUnknownIsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactMessageRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "contact_messages" SET "is_read"=$1 WHERE id = $2`)).
		WithArgs(true, 404).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	msg, err := repo.MarkRead(context.Background(), 404)

	assert.Nil(t, msg)
	var notFound models.ErrorNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestCreateContactMessageStartsUnread(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactMessageRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "contact_messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	msg := &models.ContactMessage{Name: "Asha", Email: "asha@example.com", Message: "Hi", IsRead: true}
	require.NoError(t, repo.Create(context.Background(), msg))

	assert.False(t, msg.IsRead)
	assert.Equal(t, uint(1), msg.ID)
}
