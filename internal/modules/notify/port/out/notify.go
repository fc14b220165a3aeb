package out

import (
	"context"

	"focuspro/internal/modules/notify/domain"
)

// ManifestStore loads installed plugin manifests.
type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs notifier plugin binaries.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Deliver(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error
}
