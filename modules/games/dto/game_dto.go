package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserRole struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GameSystemSummary struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Slug            *string  `json:"slug"`
	AveragePlayTime *int     `json:"averagePlayTime"`
	MinPlayers      *int     `json:"minPlayers"`
	MaxPlayers      *int     `json:"maxPlayers"`
	HeroURL         *string  `json:"heroUrl"`
	Categories      []string `json:"categories"`
}

type GameListItem struct {
	ID                  uuid.UUID         `json:"id"`
	OwnerID             string            `json:"ownerId"`
	CampaignID          *uuid.UUID        `json:"campaignId"`
	GameSystemID        int               `json:"gameSystemId"`
	Name                string            `json:"name"`
	DateTime            time.Time         `json:"dateTime"`
	Description         string            `json:"description"`
	ExpectedDuration    float64           `json:"expectedDuration"`
	Price               *float64          `json:"price"`
	Language            string            `json:"language"`
	Location            map[string]any    `json:"location"`
	Status              string            `json:"status"`
	MinimumRequirements map[string]any    `json:"minimumRequirements"`
	Visibility          string            `json:"visibility"`
	SafetyRules         map[string]any    `json:"safetyRules"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	Owner               OwnerSummary      `json:"owner"`
	GameSystem          GameSystemSummary `json:"gameSystem"`
	ParticipantCount    int               `json:"participantCount"`
	UserRole            *UserRole         `json:"userRole"`
}

type GameListPage struct {
	Items      []GameListItem `json:"items"`
	TotalCount int            `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// ListGamesRequest is bound from the query string.
type ListGamesRequest struct {
	GameSystemID *int   `query:"gameSystemId"`
	CampaignID   string `query:"campaignId"`
	Status       string `query:"status"`
	DateFrom     string `query:"dateFrom"`
	DateTo       string `query:"dateTo"`
	SearchTerm   string `query:"searchTerm"`
	UserRole     string `query:"userRole"`
	Page         int    `query:"page"`
	PageSize     int    `query:"pageSize"`
}

type GameResponse struct {
	ID                  uuid.UUID      `json:"id"`
	OwnerID             string         `json:"ownerId"`
	CampaignID          *uuid.UUID     `json:"campaignId"`
	GameSystemID        int            `json:"gameSystemId"`
	Name                string         `json:"name"`
	DateTime            time.Time      `json:"dateTime"`
	Description         string         `json:"description"`
	ExpectedDuration    float64        `json:"expectedDuration"`
	Price               *float64       `json:"price"`
	Language            string         `json:"language"`
	Location            map[string]any `json:"location"`
	Status              string         `json:"status"`
	MinimumRequirements map[string]any `json:"minimumRequirements"`
	Visibility          string         `json:"visibility"`
	SafetyRules         map[string]any `json:"safetyRules"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

type GameDetailResponse struct {
	GameResponse
	Owner        OwnerSummary          `json:"owner"`
	GameSystem   GameSystemSummary     `json:"gameSystem"`
	Participants []ParticipantResponse `json:"participants"`
}

type CreateGameRequest struct {
	GameSystemID        int            `json:"gameSystemId"`
	CampaignID          string         `json:"campaignId"`
	Name                string         `json:"name"`
	DateTime            time.Time      `json:"dateTime"`
	Description         string         `json:"description"`
	ExpectedDuration    float64        `json:"expectedDuration"`
	Price               *float64       `json:"price"`
	Language            string         `json:"language"`
	Location            map[string]any `json:"location"`
	MinimumRequirements map[string]any `json:"minimumRequirements"`
	Visibility          string         `json:"visibility"`
	SafetyRules         map[string]any `json:"safetyRules"`
}

// UpdateGameRequest only touches the fields that are set.
type UpdateGameRequest struct {
	GameSystemID        *int           `json:"gameSystemId"`
	Name                *string        `json:"name"`
	DateTime            *time.Time     `json:"dateTime"`
	Description         *string        `json:"description"`
	ExpectedDuration    *float64       `json:"expectedDuration"`
	Price               *float64       `json:"price"`
	Language            *string        `json:"language"`
	Location            map[string]any `json:"location"`
	MinimumRequirements map[string]any `json:"minimumRequirements"`
	Visibility          *string        `json:"visibility"`
	SafetyRules         map[string]any `json:"safetyRules"`
	Status              *string        `json:"status"`
}

type UpdateGameStatusRequest struct {
	Status string `json:"status"`
}
