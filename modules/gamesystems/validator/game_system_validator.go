package validator

import (
	"strings"

	"roundtable-api/core/constants"
	coreValidator "roundtable-api/core/validator"
	"roundtable-api/modules/gamesystems/dto"
)

var heroImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

func ValidateCreateGameSystem(req *dto.CreateGameSystemRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	req.Name = strings.TrimSpace(req.Name)
	result.Required("name", req.Name)
	if len(req.Name) > 255 {
		result.Add("name", "must be at most 255 characters")
	}
	if req.MinPlayers != nil && *req.MinPlayers < 1 {
		result.Add("minPlayers", "must be at least 1")
	}
	if req.MinPlayers != nil && req.MaxPlayers != nil && *req.MaxPlayers < *req.MinPlayers {
		result.Add("maxPlayers", "must not be less than minPlayers")
	}
	if req.AveragePlayTime != nil && *req.AveragePlayTime < 0 {
		result.Add("averagePlayTime", "must not be negative")
	}
	return result
}

func ValidateHeroImage(req *dto.UploadHeroImageRequest) *coreValidator.ValidationResult {
	result := coreValidator.NewValidationResult()
	if len(req.Body) == 0 {
		result.Add("file", "is required")
	}
	if len(req.Body) > constants.MaxHeroImageBytes {
		result.Add("file", "must be at most 5MB")
	}
	result.OneOf("contentType", req.ContentType, heroImageTypes...)
	return result
}
