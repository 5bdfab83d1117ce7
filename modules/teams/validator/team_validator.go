package validator

import (
	"strings"

	coreValidator "roundtable-api/core/validator"
	"roundtable-api/modules/teams/dto"
	"roundtable-api/modules/teams/entity"
)

func ValidateCreateTeam(req *dto.CreateTeamRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	req.Name = strings.TrimSpace(req.Name)
	result.Required("name", req.Name)
	if len(req.Name) > 255 {
		result.Add("name", "must be at most 255 characters")
	}
	return result
}

func ValidateAddMembers(req *dto.AddMembersRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	if len(req.UserIDs) == 0 {
		result.Add("userIds", "at least one user is required")
	}
	for _, id := range req.UserIDs {
		if strings.TrimSpace(id) == "" {
			result.Add("userIds", "must not contain empty ids")
			break
		}
	}
	if req.Role == "" {
		req.Role = entity.RolePlayer
	}
	result.OneOf("role", req.Role, entity.RoleCoach, entity.RolePlayer)
	return result
}
