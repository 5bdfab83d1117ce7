package entity

import "time"

type User struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Image     *string   `db:"image"`
	CreatedAt time.Time `db:"created_at"`
}
