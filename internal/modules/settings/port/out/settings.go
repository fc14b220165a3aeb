package out

import "context"

// SettingStore persists string key/value pairs. Get returns
// apperrors.ErrNotFound when the key has never been written.
type SettingStore interface {
	Upsert(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}
