package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"roundtable-api/core/database"
	"roundtable-api/modules/gamesystems/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*GameSystemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewGameSystemRepository(database.New(sqlx.NewDb(db, "postgres"))), mock
}

var detailColumns = []string{
	"id", "name", "slug", "description_cms", "min_players", "max_players", "average_play_time",
	"year_released", "hero_image_id", "is_published", "created_at", "updated_at", "hero_image_url", "categories",
}

func TestFindBySlugScansCategories(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE gs.slug = \$1`).WithArgs("dnd-5e").
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow(1, "D&D 5e", "dnd-5e", nil, 2, 6, 180, 2014, 7, true, now, now, "https://cdn/x.png", "{Fantasy,Roleplaying}"))

	gs, err := repo.FindBySlug(context.Background(), "dnd-5e")
	if err != nil {
		t.Fatal(err)
	}
	if gs == nil || len(gs.Categories) != 2 || gs.Categories[0] != "Fantasy" {
		t.Fatalf("unexpected detail %+v", gs)
	}
	if gs.HeroImageURL == nil || *gs.HeroImageURL != "https://cdn/x.png" {
		t.Fatalf("hero url not scanned: %+v", gs.HeroImageURL)
	}
}

func TestAttachHeroImage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO media_assets`).
		WithArgs(3, entity.MediaKindHero, "https://cdn/k.png", "k.png", "image/png", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "game_system_id", "kind", "url", "storage_key", "content_type", "uploaded_by", "created_at"}).
			AddRow(11, 3, entity.MediaKindHero, "https://cdn/k.png", "k.png", "image/png", "u1", time.Now()))
	mock.ExpectExec(`UPDATE game_systems SET hero_image_id`).WithArgs(11, 3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	asset, err := repo.AttachHeroImage(context.Background(), &entity.MediaAsset{
		GameSystemID: 3, Kind: entity.MediaKindHero, URL: "https://cdn/k.png", StorageKey: "k.png", ContentType: "image/png", UploadedBy: "u1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if asset.ID != 11 {
		t.Fatalf("want asset 11, got %d", asset.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAttachHeroImageRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO media_assets`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	if _, err := repo.AttachHeroImage(context.Background(), &entity.MediaAsset{GameSystemID: 3}); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
