package dto

import "time"

// Relationship describes how a viewer relates to another user.
type Relationship struct {
	Blocked      bool `json:"blocked"`   // viewer blocked the other user
	BlockedBy    bool `json:"blockedBy"` // the other user blocked viewer
	IsConnection bool `json:"isConnection"`
	IsTeammate   bool `json:"isTeammate"`
	Following    bool `json:"following"`
	FollowedBy   bool `json:"followedBy"`
}

// AnyBlock reports a block in either direction.
func (r *Relationship) AnyBlock() bool {
	return r.Blocked || r.BlockedBy
}

type FollowRequest struct {
	UserID string `json:"userId"`
}

type BlockRequest struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

type BlockedUserResponse struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
