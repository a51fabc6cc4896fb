package event

import "context"

type Repository interface {
	Insert(ctx context.Context, e Event) (Event, error)
	List(ctx context.Context, limit int) ([]Event, error)
}
