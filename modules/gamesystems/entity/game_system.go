package entity

import (
	"time"

	"github.com/lib/pq"
)

type GameSystem struct {
	ID              int       `db:"id"`
	Name            string    `db:"name"`
	Slug            *string   `db:"slug"`
	DescriptionCms  *string   `db:"description_cms"`
	MinPlayers      *int      `db:"min_players"`
	MaxPlayers      *int      `db:"max_players"`
	AveragePlayTime *int      `db:"average_play_time"`
	YearReleased    *int      `db:"year_released"`
	HeroImageID     *int      `db:"hero_image_id"`
	IsPublished     bool      `db:"is_published"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// GameSystemDetail adds the hero image and category names.
type GameSystemDetail struct {
	GameSystem

	HeroImageURL *string        `db:"hero_image_url"`
	Categories   pq.StringArray `db:"categories"`
}

const MediaKindHero = "hero"

type MediaAsset struct {
	ID           int       `db:"id"`
	GameSystemID int       `db:"game_system_id"`
	Kind         string    `db:"kind"`
	URL          string    `db:"url"`
	StorageKey   string    `db:"storage_key"`
	ContentType  string    `db:"content_type"`
	UploadedBy   string    `db:"uploaded_by"`
	CreatedAt    time.Time `db:"created_at"`
}
