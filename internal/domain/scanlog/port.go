package scanlog

import (
	"context"
)

// Repository defines persistence for failed-operation entries
type Repository interface {
	Save(ctx context.Context, e *Entry) error
	ListByPath(ctx context.Context, codebasePath string, limit int) ([]*Entry, error)
}
