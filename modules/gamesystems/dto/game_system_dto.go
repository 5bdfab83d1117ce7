package dto

import "time"

type GameSystemSummary struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Slug            *string `json:"slug"`
	AveragePlayTime *int    `json:"averagePlayTime"`
	MinPlayers      *int    `json:"minPlayers"`
	MaxPlayers      *int    `json:"maxPlayers"`
}

type GameSystemResponse struct {
	GameSystemSummary

	Description  *string   `json:"description"`
	YearReleased *int      `json:"yearReleased"`
	HeroImageURL *string   `json:"heroImageUrl"`
	Categories   []string  `json:"categories"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateGameSystemRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	MinPlayers      *int    `json:"minPlayers"`
	MaxPlayers      *int    `json:"maxPlayers"`
	AveragePlayTime *int    `json:"averagePlayTime"`
	YearReleased    *int    `json:"yearReleased"`
}

// UploadHeroImageRequest is built by the controller from a multipart form.
type UploadHeroImageRequest struct {
	FileName    string
	ContentType string
	Body        []byte
}

type MediaAssetResponse struct {
	ID           int       `json:"id"`
	GameSystemID int       `json:"gameSystemId"`
	URL          string    `json:"url"`
	ContentType  string    `json:"contentType"`
	CreatedAt    time.Time `json:"createdAt"`
}
