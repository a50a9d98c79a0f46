package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	// Token active le bot Discord ; vide, le service tourne sans interface.
	Token   string `env:"TOKEN"`
	GuildID string `env:"GUILD_ID"`

	DatabaseURL    string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/alvrsettings?sslmode=disable"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	DefaultLocale  string `env:"DEFAULT_LOCALE" envDefault:"en"`
	FallbackLocale string `env:"FALLBACK_LOCALE" envDefault:"en"`

	// BundleDir remplace les traductions embarquées par celles d'un dossier.
	BundleDir string `env:"BUNDLE_DIR"`
	// SchemaFile remplace la définition intégrée par un fichier YAML.
	SchemaFile string `env:"SCHEMA_FILE"`
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}
	return parse(nil)
}

// parse lit environ (ou l'environnement du processus si nil).
func parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	c.Token = strings.TrimSpace(c.Token)

	for _, r := range c.GuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: GUILD_ID doit être un ID de serveur Discord (chiffres uniquement)")
		}
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		return fmt.Errorf("config: MIGRATIONS_PATH ne peut pas être vide")
	}

	for name, locale := range map[string]string{
		"DEFAULT_LOCALE":  c.DefaultLocale,
		"FALLBACK_LOCALE": c.FallbackLocale,
	} {
		if _, err := language.Parse(locale); err != nil {
			return fmt.Errorf("config: %s invalide (%q): %w", name, locale, err)
		}
	}

	if c.BundleDir != "" {
		info, err := os.Stat(c.BundleDir)
		if err != nil {
			return fmt.Errorf("config: BUNDLE_DIR inaccessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: BUNDLE_DIR (%q) n'est pas un dossier", c.BundleDir)
		}
	}

	return nil
}

// DiscordEnabled indique si un token Discord a été fourni.
func (c *Config) DiscordEnabled() bool {
	return c.Token != ""
}
