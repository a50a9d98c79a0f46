package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"alvrsettings/internal/infrastructure/database/sqlc_generated"
	"alvrsettings/internal/ports/output"
)

var _ output.SettingsRepository = (*SettingRepository)(nil)

// SettingRepository implements output.SettingsRepository using sqlc + pgx.
// Only values that differ from a default need to be stored, but any
// settable path may be.
type SettingRepository struct {
	q *sqlc_generated.Queries
}

// NewSettingRepository creates a SettingRepository.
func NewSettingRepository(q *sqlc_generated.Queries) *SettingRepository {
	return &SettingRepository{q: q}
}

// LoadAll returns every stored value keyed by path. A row whose value
// cannot be decoded is skipped and logged.
func (r *SettingRepository) LoadAll(ctx context.Context) (map[string]any, error) {
	rows, err := r.q.ListSettingValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list setting values: %w", err)
	}
	out := make(map[string]any, len(rows))
	for _, row := range rows {
		v, err := decodeValue(row.Value)
		if err != nil {
			log.Printf("⚠️ Valeur illisible pour %s (modifiée le %s): %v",
				row.Path, pgtypeTimestamptzToTime(row.UpdatedAt).Format(time.RFC3339), err)
			continue
		}
		out[row.Path] = v
	}
	return out, nil
}

func (r *SettingRepository) Save(ctx context.Context, path string, value any) error {
	data, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	err = r.q.UpsertSettingValue(ctx, sqlc_generated.UpsertSettingValueParams{
		Path:  path,
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("upsert setting value %s: %w", path, err)
	}
	return nil
}

func (r *SettingRepository) Delete(ctx context.Context, path string) error {
	if err := r.q.DeleteSettingValue(ctx, path); err != nil {
		return fmt.Errorf("delete setting value %s: %w", path, err)
	}
	return nil
}
