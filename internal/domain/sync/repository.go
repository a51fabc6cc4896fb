package sync

import (
	"context"
	"time"

	"gatekeeper/internal/domain/embedding"
	"gatekeeper/internal/domain/user"
	"gatekeeper/internal/infrastructure/storage/photostore"
)

// Repository is the read view of directory state plus the single write the
// builder performs: recording the hash delivered to a device.
type Repository interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	ListAccessWindows(ctx context.Context) ([]user.AccessWindow, error)
	ListEmbeddings(ctx context.Context) ([]embedding.Record, error)
	UpsertDeviceSync(ctx context.Context, deviceID, payloadHash string, at time.Time) error
}

// PhotoSource is the read view of the unmanaged photo trees.
type PhotoSource interface {
	UserPhotos() ([]photostore.UserPhoto, error)
	Captures() ([]photostore.Capture, error)
}
