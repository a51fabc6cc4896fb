package embedding

import "context"

type Repository interface {
	Add(ctx context.Context, rec Record) (Record, error)
	ForUser(ctx context.Context, userID int) ([]Record, error)
}
