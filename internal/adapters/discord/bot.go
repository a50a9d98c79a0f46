package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"alvrsettings/internal/config"
	"alvrsettings/internal/ports/input"
	"alvrsettings/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot and wires the settings use case into the interaction handler.
func NewBot(cfg *config.Config, settings input.SettingsUseCase, tr output.T) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: NewHandler(settings, tr, cfg.DefaultLocale),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commandName {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		if i.ApplicationCommandData().Name == commandName {
			b.handler.HandleAutocomplete(s, i)
		}
	}
}

// Start opens the session, registers /settings and runs until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	tabs, err := b.handler.settings.Tabs(b.config.DefaultLocale)
	if err != nil {
		return fmt.Errorf("erreur lors de la lecture des onglets: %w", err)
	}
	cmd := settingsCommand(tabs)
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
		log.Printf("⚠️ Erreur lors de l'enregistrement de la commande %s: %v", cmd.Name, err)
	}

	log.Println("🤖 Bot en ligne !")
	<-ctx.Done()
	log.Println("👋 Arrêt du bot.")
	return nil
}
