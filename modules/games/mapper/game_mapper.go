package mapper

import (
	"roundtable-api/modules/games/dto"
	"roundtable-api/modules/games/entity"
)

// ToGameListItem flattens a listing row. Ownership always wins over any
// participant row the owner may still have.
func ToGameListItem(row *entity.GameListRow, viewerID string) dto.GameListItem {
	item := dto.GameListItem{
		ID:                  row.ID,
		OwnerID:             row.OwnerID,
		CampaignID:          row.CampaignID,
		GameSystemID:        row.GameSystemID,
		Name:                row.Name,
		DateTime:            row.DateTime,
		Description:         row.Description,
		ExpectedDuration:    row.ExpectedDuration,
		Price:               row.Price,
		Language:            row.Language,
		Location:            row.Location,
		Status:              row.Status,
		MinimumRequirements: row.MinimumRequirements,
		Visibility:          row.Visibility,
		SafetyRules:         row.SafetyRules,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
		Owner: dto.OwnerSummary{
			ID:    row.OwnerID,
			Name:  row.OwnerName,
			Email: row.OwnerEmail,
		},
		GameSystem: dto.GameSystemSummary{
			ID:              row.GameSystemID,
			Name:            row.GameSystemName,
			Slug:            row.GameSystemSlug,
			AveragePlayTime: row.GameSystemAveragePlayTime,
			MinPlayers:      row.GameSystemMinPlayers,
			MaxPlayers:      row.GameSystemMaxPlayers,
			HeroURL:         row.SystemHeroURL,
			Categories:      categories(row.SystemCategories),
		},
		ParticipantCount: row.ParticipantCount,
		UserRole:         userRole(row, viewerID),
	}
	return item
}

func ToGameListItems(rows []entity.GameListRow, viewerID string) []dto.GameListItem {
	items := make([]dto.GameListItem, 0, len(rows))
	for i := range rows {
		items = append(items, ToGameListItem(&rows[i], viewerID))
	}
	return items
}

func userRole(row *entity.GameListRow, viewerID string) *dto.UserRole {
	if viewerID != "" && row.OwnerID == viewerID {
		return &dto.UserRole{Role: entity.RoleOwner, Status: entity.ParticipantApproved}
	}
	if row.ViewerRole != nil && row.ViewerStatus != nil {
		return &dto.UserRole{Role: *row.ViewerRole, Status: *row.ViewerStatus}
	}
	return nil
}

func categories(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func ToGameResponse(g *entity.Game) *dto.GameResponse {
	return &dto.GameResponse{
		ID:                  g.ID,
		OwnerID:             g.OwnerID,
		CampaignID:          g.CampaignID,
		GameSystemID:        g.GameSystemID,
		Name:                g.Name,
		DateTime:            g.DateTime,
		Description:         g.Description,
		ExpectedDuration:    g.ExpectedDuration,
		Price:               g.Price,
		Language:            g.Language,
		Location:            g.Location,
		Status:              g.Status,
		MinimumRequirements: g.MinimumRequirements,
		Visibility:          g.Visibility,
		SafetyRules:         g.SafetyRules,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

func ToGameDetailResponse(d *entity.GameDetail, participants []entity.ParticipantWithUser) *dto.GameDetailResponse {
	return &dto.GameDetailResponse{
		GameResponse: *ToGameResponse(&d.Game),
		Owner: dto.OwnerSummary{
			ID:    d.OwnerID,
			Name:  d.OwnerName,
			Email: d.OwnerEmail,
		},
		GameSystem: dto.GameSystemSummary{
			ID:         d.GameSystemID,
			Name:       d.GameSystemName,
			Slug:       d.GameSystemSlug,
			Categories: []string{},
		},
		Participants: ToParticipantsWithUser(participants),
	}
}

func ToParticipantResponse(p *entity.GameParticipant) *dto.ParticipantResponse {
	return &dto.ParticipantResponse{
		ID:        p.ID,
		GameID:    p.GameID,
		UserID:    p.UserID,
		Role:      p.Role,
		Status:    p.Status,
		Message:   p.Message,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToParticipantsWithUser(rows []entity.ParticipantWithUser) []dto.ParticipantResponse {
	out := make([]dto.ParticipantResponse, 0, len(rows))
	for i := range rows {
		resp := ToParticipantResponse(&rows[i].GameParticipant)
		resp.User = &dto.OwnerSummary{
			ID:    rows[i].UserID,
			Name:  rows[i].UserName,
			Email: rows[i].UserEmail,
		}
		out = append(out, *resp)
	}
	return out
}
