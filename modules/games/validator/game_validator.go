package validator

import (
	"strings"

	"roundtable-api/core/constants"
	coreValidator "roundtable-api/core/validator"
	"roundtable-api/modules/games/dto"
	"roundtable-api/modules/games/entity"
	"roundtable-api/modules/games/predicate"
)

var (
	gameStatuses        = []string{entity.StatusScheduled, entity.StatusCanceled, entity.StatusCompleted}
	visibilities        = []string{entity.VisibilityPublic, entity.VisibilityProtected, entity.VisibilityPrivate}
	filterRoles         = []string{entity.RoleOwner, entity.RolePlayer, entity.RoleInvited, entity.RoleApplicant}
	participantRoles    = []string{entity.RolePlayer, entity.RoleInvited, entity.RoleApplicant}
	participantStatuses = []string{entity.ParticipantApproved, entity.ParticipantRejected, entity.ParticipantPending}
)

// ValidateListGames turns query parameters into listing filters.
func ValidateListGames(req *dto.ListGamesRequest) (predicate.Filters, *coreValidator.ValidationResult) {
	result := coreValidator.NewValidationResult()
	var f predicate.Filters

	if req.GameSystemID != nil {
		if *req.GameSystemID <= 0 {
			result.Add("gameSystemId", "must be a positive integer")
		} else {
			id := *req.GameSystemID
			f.GameSystemID = &id
		}
	}
	if req.CampaignID != "" {
		id := result.UUID("campaignId", req.CampaignID)
		f.CampaignID = &id
	}
	if req.Status != "" {
		result.OneOf("status", req.Status, gameStatuses...)
		f.Status = req.Status
	}
	if req.UserRole != "" {
		result.OneOf("userRole", req.UserRole, filterRoles...)
		f.UserRole = req.UserRole
	}
	f.DateFrom = result.Time("dateFrom", req.DateFrom)
	f.DateTo = result.Time("dateTo", req.DateTo)
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		result.Add("dateTo", "must not be before dateFrom")
	}
	f.SearchTerm = strings.TrimSpace(req.SearchTerm)

	return f, result
}

// NormalizePage clamps page and page size to their allowed ranges.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = constants.DefaultPageNumber
	}
	if page > constants.MaxPageNumber {
		page = constants.MaxPageNumber
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}

func ValidateCreateGame(req *dto.CreateGameRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()

	if req.GameSystemID <= 0 {
		result.Add("gameSystemId", "must be a positive integer")
	}
	result.Required("name", req.Name)
	result.Required("description", req.Description)
	result.Required("language", req.Language)
	if req.DateTime.IsZero() {
		result.Add("dateTime", "is required")
	}
	if req.ExpectedDuration <= 0 {
		result.Add("expectedDuration", "must be positive")
	}
	if req.Price != nil && *req.Price < 0 {
		result.Add("price", "must not be negative")
	}
	if req.Location == nil {
		result.Add("location", "is required")
	}
	if req.Visibility != "" {
		result.OneOf("visibility", req.Visibility, visibilities...)
	}
	if req.CampaignID != "" {
		result.UUID("campaignId", req.CampaignID)
	}
	return result
}

func ValidateUpdateGame(req *dto.UpdateGameRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()

	if req.GameSystemID != nil && *req.GameSystemID <= 0 {
		result.Add("gameSystemId", "must be a positive integer")
	}
	if req.Name != nil {
		result.Required("name", *req.Name)
	}
	if req.Description != nil {
		result.Required("description", *req.Description)
	}
	if req.Language != nil {
		result.Required("language", *req.Language)
	}
	if req.ExpectedDuration != nil && *req.ExpectedDuration <= 0 {
		result.Add("expectedDuration", "must be positive")
	}
	if req.Price != nil && *req.Price < 0 {
		result.Add("price", "must not be negative")
	}
	if req.Visibility != nil {
		result.OneOf("visibility", *req.Visibility, visibilities...)
	}
	if req.Status != nil {
		result.OneOf("status", *req.Status, gameStatuses...)
	}
	return result
}

func ValidateGameStatus(req *dto.UpdateGameStatusRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	result.OneOf("status", req.Status, gameStatuses...)
	return result
}

func ValidateAddParticipant(req *dto.AddParticipantRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	result.Required("userId", req.UserID)
	result.OneOf("role", req.Role, participantRoles...)
	result.OneOf("status", req.Status, participantStatuses...)
	return result
}

func ValidateUpdateParticipant(req *dto.UpdateParticipantRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	if req.Role == nil && req.Status == nil {
		result.Add("role", "role or status is required")
	}
	if req.Role != nil {
		result.OneOf("role", *req.Role, participantRoles...)
	}
	if req.Status != nil {
		result.OneOf("status", *req.Status, participantStatuses...)
	}
	return result
}

func ValidateInvite(req *dto.InviteToGameRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	req.UserID = strings.TrimSpace(req.UserID)
	req.Email = strings.TrimSpace(req.Email)

	if req.UserID == "" && req.Email == "" {
		result.Add("userId", "either userId or email must be provided")
	}
	if req.Email != "" {
		result.Email("email", req.Email)
	}
	return result
}

func ValidateRespondToInvitation(req *dto.RespondToInvitationRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	result.OneOf("action", req.Action, "accept", "reject")
	return result
}

func ValidateRespondToApplication(req *dto.RespondToApplicationRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	result.OneOf("status", req.Status, entity.ParticipantApproved, entity.ParticipantRejected)
	return result
}
