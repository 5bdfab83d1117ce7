package entity

import (
	"encoding/json"
	"time"

	coreEntity "roundtable-api/core/entity"

	"github.com/google/uuid"
)

const (
	AuditFollow   = "follow"
	AuditUnfollow = "unfollow"
	AuditBlock    = "block"
	AuditUnblock  = "unblock"

	InvitesEveryone    = "everyone"
	InvitesConnections = "connections"
	InvitesNobody      = "nobody"
)

type UserFollow struct {
	ID          uuid.UUID `db:"id"`
	FollowerID  string    `db:"follower_id"`
	FollowingID string    `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}

type UserBlock struct {
	ID        uuid.UUID `db:"id"`
	BlockerID string    `db:"blocker_id"`
	BlockeeID string    `db:"blockee_id"`
	Reason    *string   `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

// BlockedUser is a block joined with the blockee's profile.
type BlockedUser struct {
	UserBlock

	Name  string `db:"name"`
	Email string `db:"email"`
}

type AuditLog struct {
	ActorUserID  string           `db:"actor_user_id"`
	TargetUserID string           `db:"target_user_id"`
	Action       string           `db:"action"`
	Metadata     coreEntity.JSONB `db:"metadata"`
}

// RelationshipRow is the single-query answer to "how do a and b relate".
type RelationshipRow struct {
	Blocked    bool `db:"blocked"`
	BlockedBy  bool `db:"blocked_by"`
	Following  bool `db:"following"`
	FollowedBy bool `db:"followed_by"`
}

// UserPrivacy carries the raw privacy_settings text column.
type UserPrivacy struct {
	ID              string  `db:"id"`
	PrivacySettings *string `db:"privacy_settings"`
}

type PrivacySettings struct {
	AllowFollows *bool  `json:"allowFollows"`
	AllowInvites string `json:"allowInvites"`
}

// Settings decodes the column. Missing or malformed JSON yields the permissive defaults.
func (u *UserPrivacy) Settings() PrivacySettings {
	var s PrivacySettings
	if u.PrivacySettings != nil && *u.PrivacySettings != "" {
		_ = json.Unmarshal([]byte(*u.PrivacySettings), &s)
	}
	if s.AllowInvites == "" {
		s.AllowInvites = InvitesEveryone
	}
	return s
}

func (s PrivacySettings) FollowsAllowed() bool {
	return s.AllowFollows == nil || *s.AllowFollows
}
