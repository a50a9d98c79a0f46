package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alvrsettings/internal/adapters/discord"
	"alvrsettings/internal/application"
	"alvrsettings/internal/config"
	"alvrsettings/internal/definition"
	"alvrsettings/internal/domain"
	"alvrsettings/internal/domain/schema"
	"alvrsettings/internal/infrastructure/database"
	"alvrsettings/internal/infrastructure/database/sqlc_generated"
	"alvrsettings/internal/infrastructure/i18n"
	"alvrsettings/internal/infrastructure/notify"
)

const (
	notifyBuffer   = 64
	persistTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}

	tree, err := loadTree(cfg.SchemaFile)
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement du schéma: %v", err)
	}
	tr, err := loadTranslator(cfg)
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement des traductions: %v", err)
	}
	if err := tr.Validate(tree); err != nil {
		log.Fatalf("❌ Traductions incomplètes: %v", err)
	}
	for locale, keys := range tr.Orphans(tree) {
		log.Printf("⚠️ %d clé(s) orpheline(s) en %s: %v", len(keys), locale, keys)
	}
	log.Printf("✅ Schéma chargé: %d réglages, langues %v", len(tree.SettablePaths()), tr.Locales())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("❌ Erreur lors des migrations: %v", err)
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'initialisation de la base de données: %v", err)
	}
	defer pool.Close()

	repo := database.NewSettingRepository(sqlc_generated.New(pool))
	snapshot, err := repo.LoadAll(ctx)
	if err != nil {
		log.Fatalf("❌ Erreur lors de la lecture des réglages: %v", err)
	}

	notifier := notify.New(notify.WithAsync(notifyBuffer))
	defer notifier.Close()

	bound, err := application.Bind(tree, snapshot, notifier)
	var snapErr *domain.SnapshotError
	switch {
	case errors.As(err, &snapErr):
		log.Printf("⚠️ %v", err)
		application.PruneSnapshot(ctx, repo, snapErr.Paths())
	case err != nil:
		log.Fatalf("❌ Erreur lors de la liaison des réglages: %v", err)
	}
	notifier.Subscribe(application.PersistChanges(repo, tree, persistTimeout))

	settings := application.NewSettingsService(bound, tr)

	if !cfg.DiscordEnabled() {
		log.Println("ℹ️ TOKEN absent: bot Discord désactivé. Appuyez sur CTRL+C pour quitter.")
		<-ctx.Done()
		return
	}
	bot, err := discord.NewBot(cfg, settings, tr)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := bot.Start(ctx); err != nil {
		log.Printf("❌ Erreur lors du démarrage du bot: %v", err)
		// os.Exit skips the deferred calls; drain pending writes first.
		notifier.Close()
		pool.Close()
		os.Exit(1)
	}
}

func loadTree(schemaFile string) (*schema.Tree, error) {
	if schemaFile == "" {
		return schema.Build(definition.ALVR())
	}
	return schema.LoadFile(schemaFile)
}

func loadTranslator(cfg *config.Config) (*i18n.Translator, error) {
	if cfg.BundleDir == "" {
		return i18n.NewTranslator(cfg.FallbackLocale)
	}
	return i18n.LoadDir(cfg.BundleDir, cfg.FallbackLocale)
}
