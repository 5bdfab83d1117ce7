package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"roundtable-api/core/database"
	"roundtable-api/modules/teams/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*TeamRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewTeamRepository(database.New(sqlx.NewDb(db, "postgres"))), mock
}

func TestCreateTeamWithCaptain(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("Dice Goblins", "dice-goblins", nil, "abc1234", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "share_code", "created_by", "created_at", "updated_at"}).
			AddRow(id.String(), "Dice Goblins", "dice-goblins", nil, "abc1234", "u1", time.Now(), time.Now()))
	mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(id.String(), "u1", entity.RoleCaptain, entity.MemberActive).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	team, err := repo.CreateTeamWithCaptain(context.Background(), &entity.Team{
		Name: "Dice Goblins", Slug: "dice-goblins", ShareCode: "abc1234", CreatedBy: "u1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if team.ID != id {
		t.Fatalf("want id %s, got %s", id, team.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAddMembersRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	teamID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO team_members`).WithArgs(teamID.String(), "u2", entity.RolePlayer, entity.MemberActive).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO team_members`).WithArgs(teamID.String(), "u3", entity.RolePlayer, entity.MemberActive).
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := repo.AddMembers(context.Background(), teamID, []string{"u2", "u3"}, entity.RolePlayer, entity.MemberActive)
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAddMembersApprovesPendingRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	teamID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`ON CONFLICT \(team_id, user_id\) DO UPDATE\s+SET role = EXCLUDED.role, status = EXCLUDED.status\s+WHERE team_members.status = 'pending' AND EXCLUDED.status = 'active'`).
		WithArgs(teamID.String(), "joiner", entity.RolePlayer, entity.MemberActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.AddMembers(context.Background(), teamID, []string{"joiner"}, entity.RolePlayer, entity.MemberActive); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRemoveMemberNotInTeam(t *testing.T) {
	repo, mock := newMockRepo(t)
	teamID := uuid.New()

	mock.ExpectExec(`DELETE FROM team_members`).WithArgs(teamID.String(), "u9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RemoveMember(context.Background(), teamID, "u9"); err == nil {
		t.Fatal("expected error for missing membership")
	}
}

func TestAreTeammates(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.AreTeammates(context.Background(), "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("want teammates")
	}
}
