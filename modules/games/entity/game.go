package entity

import (
	"time"

	coreEntity "roundtable-api/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	VisibilityPublic    = "public"
	VisibilityProtected = "protected"
	VisibilityPrivate   = "private"

	StatusScheduled = "scheduled"
	StatusCanceled  = "canceled"
	StatusCompleted = "completed"
)

type Game struct {
	ID                  uuid.UUID        `db:"id"`
	OwnerID             string           `db:"owner_id"`
	CampaignID          *uuid.UUID       `db:"campaign_id"`
	GameSystemID        int              `db:"game_system_id"`
	Name                string           `db:"name"`
	DateTime            time.Time        `db:"date_time"`
	Description         string           `db:"description"`
	ExpectedDuration    float64          `db:"expected_duration"`
	Price               *float64         `db:"price"`
	Language            string           `db:"language"`
	Location            coreEntity.JSONB `db:"location"`
	Status              string           `db:"status"`
	MinimumRequirements coreEntity.JSONB `db:"minimum_requirements"`
	Visibility          string           `db:"visibility"`
	SafetyRules         coreEntity.JSONB `db:"safety_rules"`
	CreatedAt           time.Time        `db:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at"`
}

// IsClosed reports whether the game no longer accepts participants.
func (g *Game) IsClosed() bool {
	return g.Status == StatusCanceled || g.Status == StatusCompleted
}

// GameListRow is one row of the aggregated listing query.
type GameListRow struct {
	Game

	OwnerName  string `db:"owner_name"`
	OwnerEmail string `db:"owner_email"`

	GameSystemName            string         `db:"game_system_name"`
	GameSystemSlug            *string        `db:"game_system_slug"`
	GameSystemAveragePlayTime *int           `db:"game_system_average_play_time"`
	GameSystemMinPlayers      *int           `db:"game_system_min_players"`
	GameSystemMaxPlayers      *int           `db:"game_system_max_players"`
	SystemHeroURL             *string        `db:"system_hero_url"`
	SystemCategories          pq.StringArray `db:"system_categories"`

	ParticipantCount int     `db:"participant_count"`
	ViewerRole       *string `db:"viewer_role"`
	ViewerStatus     *string `db:"viewer_status"`
}

// GameDetail is a single game with its owner and system resolved.
type GameDetail struct {
	Game

	OwnerName      string  `db:"owner_name"`
	OwnerEmail     string  `db:"owner_email"`
	GameSystemName string  `db:"game_system_name"`
	GameSystemSlug *string `db:"game_system_slug"`
}

type UserRef struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}
