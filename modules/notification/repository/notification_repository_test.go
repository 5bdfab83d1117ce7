package repository

import (
	"context"
	"testing"
	"time"

	"roundtable-api/core/database"
	coreEntity "roundtable-api/core/entity"
	"roundtable-api/core/params"
	"roundtable-api/modules/notification/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*NotificationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewNotificationRepository(database.New(sqlx.NewDb(db, "postgres"))), mock
}

func TestCreateScansGeneratedColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO notifications`).
		WithArgs("Invite", "You were invited", "game_invite", sqlmock.AnyArg(), "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

	n := &entity.Notification{UserID: "u1", Title: "Invite", Message: "You were invited", Type: "game_invite", Data: coreEntity.JSONB{"gameId": "g1"}}
	if err := repo.Create(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	if n.ID != id {
		t.Fatalf("want id %s, got %s", id, n.ID)
	}
}

func TestMarkAsReadExpandsIDs(t *testing.T) {
	repo, mock := newMockRepo(t)
	a, b := uuid.NewString(), uuid.NewString()

	mock.ExpectExec(`UPDATE notifications SET is_read = true, updated_at = now\(\) WHERE user_id = \$1 AND id IN \(\$2, \$3\)`).
		WithArgs("u1", a, b).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.MarkAsRead(context.Background(), "u1", []string{a, b}); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByUserIDPages(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`ORDER BY created_at DESC`).WithArgs("u1", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "type", "data", "is_read", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), "u1", "t", "m", "game_invite", []byte(`{"gameId":"g1"}`), false, time.Now(), time.Now()))

	page, err := repo.GetByUserID(context.Background(), "u1", params.QueryParams{PageNumber: 2, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 25 || len(page.Items) != 1 || page.Items[0].Data["gameId"] != "g1" {
		t.Fatalf("unexpected page %+v", page)
	}
}
