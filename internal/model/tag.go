package model

// Tag always belongs to exactly one task.
type Tag struct {
	ID     int    `json:"id"`
	TaskID int    `json:"task_id"`
	Title  string `json:"title"`
}

type TagPatch struct {
	Title *string
}

func (p TagPatch) Empty() bool {
	return p.Title == nil
}
