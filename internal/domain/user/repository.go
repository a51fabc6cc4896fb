package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u User, windows []AccessWindow) (User, error)
	GetByID(ctx context.Context, id int) (User, error)
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	ReplaceWindows(ctx context.Context, userID int, windows []AccessWindow) error
	Delete(ctx context.Context, id int) error
}
