package model

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserPatch carries a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}
