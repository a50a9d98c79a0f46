package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"alvrsettings/internal/definition"
	"alvrsettings/internal/domain/entities"
)

// memoryRepo is an in-memory output.SettingsRepository.
type memoryRepo struct {
	mu      sync.Mutex
	values  map[string]any
	deleted []string
	failOn  string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{values: make(map[string]any)}
}

func (r *memoryRepo) LoadAll(context.Context) (map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *memoryRepo) Save(_ context.Context, path string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path == r.failOn {
		return errors.New("disk full")
	}
	r.values[path] = value
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, path)
	r.deleted = append(r.deleted, path)
	return nil
}

func TestPersistChanges(t *testing.T) {
	repo := newMemoryRepo()
	persist := PersistChanges(repo, definition.Tree(), time.Second)

	b, err := Bind(definition.Tree(), nil, sinkFunc(persist))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Set(gammaPath, 2.2, "test"); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(codecPath, "HEVC", "test"); err != nil {
		t.Fatal(err)
	}
	if err := b.Reset(codecPath, ""); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.LoadAll(context.Background())
	if diff := cmp.Diff(map[string]any{gammaPath: 2.2}, got); diff != "" {
		t.Errorf("stored values mismatch (-want +got):\n%s", diff)
	}

	// A restart binds the stored values back.
	restarted, err := Bind(definition.Tree(), got, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := restarted.Get(gammaPath); v != 2.2 {
		t.Errorf("gamma after restart = %v, want 2.2", v)
	}
}

func TestPersistChanges_Failure(t *testing.T) {
	repo := newMemoryRepo()
	repo.failOn = gammaPath
	persist := PersistChanges(repo, definition.Tree(), time.Second)

	persist(entities.Change{Path: gammaPath, NewValue: 2.2})
	persist(entities.Change{Path: "_root_video_gone", NewValue: 1})

	got, _ := repo.LoadAll(context.Background())
	if len(got) != 0 {
		t.Errorf("nothing should be stored, got %v", got)
	}
}

func TestPruneSnapshot(t *testing.T) {
	repo := newMemoryRepo()
	repo.values["_root_video_gone"] = true
	repo.values[gammaPath] = 9.0

	PruneSnapshot(context.Background(), repo, []string{"_root_video_gone", gammaPath})
	if diff := cmp.Diff([]string{"_root_video_gone", gammaPath}, repo.deleted); diff != "" {
		t.Errorf("deleted mismatch (-want +got):\n%s", diff)
	}
}

type sinkFunc func(entities.Change)

func (f sinkFunc) Notify(c entities.Change) { f(c) }
