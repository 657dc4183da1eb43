package scanlog

import "time"

// Entry represents a persisted failed-operation record
type Entry struct {
	ID           int64     `json:"id"`
	CodebasePath string    `json:"codebase_path"`
	ProjectID    string    `json:"project_id,omitempty"`
	Phase        string    `json:"phase,omitempty"` // validate | persist | other
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}
