package audit

import "context"

type Repository interface {
	Insert(ctx context.Context, e *LogEntry) error
	List(ctx context.Context, limit, offset int) ([]*LogEntry, int, error)
}
