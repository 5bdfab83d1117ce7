package service

import (
	"roundtable-api/core/errors"
	"roundtable-api/modules/games/entity"
	socialDto "roundtable-api/modules/social/dto"
)

// EnforceApplyEligibility decides whether a viewer with relationship rel to
// the owner may apply to game.
func EnforceApplyEligibility(rel *socialDto.Relationship, game *entity.Game) *errors.AppError {
	if rel != nil && rel.AnyBlock() {
		return errors.NewAppError(errors.ErrForbidden, "You cannot apply to this game", nil)
	}
	if game.IsClosed() {
		return errors.NewAppError(errors.ErrAlreadyExists, "Game is no longer accepting participants", nil)
	}
	switch game.Visibility {
	case entity.VisibilityPrivate:
		return errors.NewAppError(errors.ErrForbidden, "This game is invite only", nil)
	case entity.VisibilityProtected:
		if rel == nil || !(rel.IsConnection || rel.IsTeammate) {
			return errors.NewAppError(errors.ErrForbidden, "Only connections of the organizer can apply", nil)
		}
	}
	return nil
}

// EnforceInviteEligibility decides whether the owner may add or invite a user.
func EnforceInviteEligibility(rel *socialDto.Relationship, canInvite bool, game *entity.Game) *errors.AppError {
	if game.IsClosed() {
		return errors.NewAppError(errors.ErrAlreadyExists, "Game is no longer accepting participants", nil)
	}
	if rel != nil && rel.AnyBlock() {
		return errors.NewAppError(errors.ErrForbidden, "You cannot invite this user", nil)
	}
	if !canInvite {
		return errors.NewAppError(errors.ErrForbidden, "This user only accepts invitations from connections", nil)
	}
	return nil
}
