package model

import "time"

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProjectPatch struct {
	Name        *string
	Description *string
}

func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}
