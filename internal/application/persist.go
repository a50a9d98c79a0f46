package application

import (
	"context"
	"log"
	"time"

	"alvrsettings/internal/domain/entities"
	"alvrsettings/internal/domain/schema"
	"alvrsettings/internal/ports/output"
)

// PersistChanges returns an observer that writes each change to repo. A
// value equal to its default is deleted rather than stored, so the table
// only holds what differs from the schema. Failures are logged: the bound
// value stays authoritative until the next change of that path.
func PersistChanges(repo output.SettingsRepository, tree *schema.Tree, timeout time.Duration) func(entities.Change) {
	return func(change entities.Change) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		n, ok := tree.Settable(change.Path)
		if !ok {
			log.Printf("⚠️ Changement ignoré pour un chemin inconnu: %s", change.Path)
			return
		}
		var err error
		if change.NewValue == n.Default() {
			err = repo.Delete(ctx, change.Path)
		} else {
			err = repo.Save(ctx, change.Path, change.NewValue)
		}
		if err != nil {
			log.Printf("❌ Erreur lors de l'enregistrement de %s (%s): %v", change.Path, change.Source, err)
		}
	}
}

// PruneSnapshot deletes the persisted entries Bind rejected so that they are
// not reported again on the next start.
func PruneSnapshot(ctx context.Context, repo output.SettingsRepository, paths []string) {
	for _, p := range paths {
		if err := repo.Delete(ctx, p); err != nil {
			log.Printf("❌ Erreur lors de la suppression de %s: %v", p, err)
			continue
		}
		log.Printf("🧹 Valeur persistée rejetée supprimée: %s", p)
	}
}
