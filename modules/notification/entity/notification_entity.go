package entity

import "roundtable-api/core/entity"

type Notification struct {
	UserID  string       `db:"user_id"`
	Title   string       `db:"title"`
	Message string       `db:"message"`
	Type    string       `db:"type"`
	Data    entity.JSONB `db:"data"`
	IsRead  bool         `db:"is_read"`
	entity.BaseEntity
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
