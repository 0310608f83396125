package projects

import "time"

// Project is a workspace owned by a single account. Ownership is an explicit
// foreign-key identifier resolved by lookup, never an embedded record.
type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task belongs to a project and may reference an assignee account. Both
// references are plain identifiers.
type Task struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes,omitempty"`
	Done       bool      `json:"done"`
	CreatedAt  time.Time `json:"created_at"`
}
