package output

import "context"

// SettingsRepository persists bound setting values keyed by path.
type SettingsRepository interface {
	// LoadAll returns the persisted snapshot (path -> value).
	LoadAll(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, path string, value any) error
	Delete(ctx context.Context, path string) error
}
