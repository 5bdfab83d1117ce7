package repository

import (
	"context"
	"errors"
	"testing"

	"roundtable-api/core/database"
	coreEntity "roundtable-api/core/entity"
	"roundtable-api/modules/social/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*SocialRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSocialRepository(database.New(sqlx.NewDb(db, "postgres"))), mock
}

func TestInsertBlockRemovesFollowsAndAudits(t *testing.T) {
	repo, mock := newMockRepo(t)
	reason := "spam"

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO user_blocks`).WithArgs("a", "b", "spam").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM user_follows`).WithArgs("a", "b").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO social_audit_logs`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	audit := &entity.AuditLog{ActorUserID: "a", TargetUserID: "b", Action: entity.AuditBlock, Metadata: coreEntity.JSONB{"reason": reason}}
	if err := repo.InsertBlock(context.Background(), "a", "b", &reason, audit); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertFollowRollsBackWhenAuditFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO user_follows`).WithArgs("a", "b").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO social_audit_logs`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.InsertFollow(context.Background(), "a", "b", &entity.AuditLog{ActorUserID: "a", TargetUserID: "b", Action: entity.AuditFollow})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetRelationship(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT\s+EXISTS`).WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"blocked", "blocked_by", "following", "followed_by"}).
			AddRow(false, true, false, true))

	rel, err := repo.GetRelationship(context.Background(), "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if rel.Blocked || !rel.BlockedBy || rel.Following || !rel.FollowedBy {
		t.Fatalf("unexpected row %+v", rel)
	}
}

func TestPrivacySettingsDefaults(t *testing.T) {
	raw := `not json`
	s := (&entity.UserPrivacy{PrivacySettings: &raw}).Settings()
	if !s.FollowsAllowed() || s.AllowInvites != entity.InvitesEveryone {
		t.Fatalf("malformed settings must fall back to defaults, got %+v", s)
	}
}
