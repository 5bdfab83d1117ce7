package mapper

import (
	"roundtable-api/modules/teams/dto"
	"roundtable-api/modules/teams/entity"
)

func ToTeamResponse(t *entity.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		ShareCode:   t.ShareCode,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

func ToTeamResponses(rows []entity.TeamWithRole) []dto.TeamResponse {
	out := make([]dto.TeamResponse, 0, len(rows))
	for i := range rows {
		r := ToTeamResponse(&rows[i].Team)
		r.MemberRole = rows[i].MemberRole
		r.MemberCount = rows[i].MemberCount
		out = append(out, *r)
	}
	return out
}

func ToTeamMemberResponses(rows []entity.TeamMemberWithUser) []dto.TeamMemberResponse {
	out := make([]dto.TeamMemberResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.TeamMemberResponse{
			UserID:   m.UserID,
			Name:     m.UserName,
			Email:    m.UserEmail,
			Role:     m.Role,
			Status:   m.Status,
			JoinedAt: m.CreatedAt,
		})
	}
	return out
}
