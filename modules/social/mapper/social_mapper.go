package mapper

import (
	"roundtable-api/modules/social/dto"
	"roundtable-api/modules/social/entity"
)

func ToRelationship(row *entity.RelationshipRow) *dto.Relationship {
	return &dto.Relationship{
		Blocked:      row.Blocked,
		BlockedBy:    row.BlockedBy,
		IsConnection: row.Following || row.FollowedBy,
		Following:    row.Following,
		FollowedBy:   row.FollowedBy,
	}
}

func ToBlockedUserResponses(rows []entity.BlockedUser) []dto.BlockedUserResponse {
	out := make([]dto.BlockedUserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BlockedUserResponse{
			UserID:    r.BlockeeID,
			Name:      r.Name,
			Email:     r.Email,
			Reason:    r.Reason,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
