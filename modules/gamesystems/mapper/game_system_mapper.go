package mapper

import (
	"roundtable-api/modules/gamesystems/dto"
	"roundtable-api/modules/gamesystems/entity"
)

func ToGameSystemSummary(gs *entity.GameSystem) dto.GameSystemSummary {
	return dto.GameSystemSummary{
		ID:              gs.ID,
		Name:            gs.Name,
		Slug:            gs.Slug,
		AveragePlayTime: gs.AveragePlayTime,
		MinPlayers:      gs.MinPlayers,
		MaxPlayers:      gs.MaxPlayers,
	}
}

func ToGameSystemSummaries(rows []entity.GameSystem) []dto.GameSystemSummary {
	out := make([]dto.GameSystemSummary, 0, len(rows))
	for i := range rows {
		out = append(out, ToGameSystemSummary(&rows[i]))
	}
	return out
}

func ToGameSystemResponse(d *entity.GameSystemDetail) *dto.GameSystemResponse {
	categories := []string(d.Categories)
	if categories == nil {
		categories = []string{}
	}
	return &dto.GameSystemResponse{
		GameSystemSummary: ToGameSystemSummary(&d.GameSystem),
		Description:       d.DescriptionCms,
		YearReleased:      d.YearReleased,
		HeroImageURL:      d.HeroImageURL,
		Categories:        categories,
		IsPublished:       d.IsPublished,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func ToMediaAssetResponse(m *entity.MediaAsset) *dto.MediaAssetResponse {
	return &dto.MediaAssetResponse{
		ID:           m.ID,
		GameSystemID: m.GameSystemID,
		URL:          m.URL,
		ContentType:  m.ContentType,
		CreatedAt:    m.CreatedAt,
	}
}
