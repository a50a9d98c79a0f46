package discord

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"alvrsettings/internal/domain/entities"
	"alvrsettings/internal/domain/schema"
	pkgdiscord "alvrsettings/pkg/discord"
)

const (
	commandName = "settings"

	subShow  = "show"
	subTab   = "tab"
	subSet   = "set"
	subReset = "reset"

	optPath  = "path"
	optTab   = "name"
	optValue = "value"

	// Discord caps autocomplete results and choice names.
	maxChoices    = 25
	maxChoiceName = 100
)

// settingsCommand describes /settings. The tab option lists the given tabs.
func settingsCommand(tabs []entities.SettingView) *discordgo.ApplicationCommand {
	pathOption := &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         optPath,
		Description:  "Setting path",
		Required:     true,
		Autocomplete: true,
	}
	tabChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(tabs))
	for _, tab := range tabs {
		tabChoices = append(tabChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncateChoice(tab.Name),
			Value: tabSegment(tab.Path),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: "Show and change the streamer settings",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subShow,
				Description: "Show one setting",
				Options:     []*discordgo.ApplicationCommandOption{pathOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subTab,
				Description: "Show every setting of a tab",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optTab,
					Description: "Tab",
					Required:    true,
					Choices:     tabChoices,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subSet,
				Description: "Change a setting",
				Options: []*discordgo.ApplicationCommandOption{
					pathOption,
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optValue,
						Description: "New value (a variant name for a choice)",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subReset,
				Description: "Restore the default of a setting",
				Options:     []*discordgo.ApplicationCommandOption{pathOption},
			},
		},
	}
}

func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := h.locale(i.Interaction)
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		respondEphemeral(s, i.Interaction, h.tr.T(locale, "error.generic", nil))
		return
	}
	sub := data.Options[0]
	opts := optionValues(sub.Options)

	switch sub.Name {
	case subShow:
		h.show(s, i.Interaction, locale, opts[optPath])
	case subTab:
		h.tab(s, i.Interaction, locale, opts[optTab])
	case subSet:
		h.set(s, i.Interaction, locale, opts[optPath], opts[optValue])
	case subReset:
		h.reset(s, i.Interaction, locale, opts[optPath])
	}
}

// HandleAutocomplete suggests settable paths matching what was typed so far.
func (h *Handler) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := h.locale(i.Interaction)
	data := i.ApplicationCommandData()

	var query string
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Focused {
				query = opt.StringValue()
			}
		}
	}

	views, err := h.settings.Find(locale, query, maxChoices)
	if err != nil {
		log.Printf("❌ Erreur lors de la recherche de réglages (%q): %v", query, err)
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(views))
	for _, v := range views {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncateChoice(v.Name + " · " + v.Path),
			Value: v.Path,
		})
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Printf("⚠️ Erreur lors de l'autocomplétion: %v", err)
	}
}

func (h *Handler) show(s *discordgo.Session, i *discordgo.Interaction, locale, path string) {
	view, err := h.settings.Describe(locale, path)
	if err != nil {
		h.fail(s, i, locale, err)
		return
	}
	respondEmbed(s, i, pkgdiscord.BuildSettingEmbed(view, h.labels(locale)))
}

func (h *Handler) tab(s *discordgo.Session, i *discordgo.Interaction, locale, segment string) {
	views, err := h.settings.Form(locale, segment)
	if err != nil {
		h.fail(s, i, locale, err)
		return
	}
	respondEmbed(s, i, pkgdiscord.BuildFormEmbed(views[0], views))
}

func (h *Handler) set(s *discordgo.Session, i *discordgo.Interaction, locale, path, raw string) {
	view, err := h.settings.Describe(locale, path)
	if err != nil {
		h.fail(s, i, locale, err)
		return
	}
	if err := h.settings.Set(path, parseInput(view.Value, raw), changeSource(i)); err != nil {
		h.fail(s, i, locale, err)
		return
	}
	value, _ := h.settings.Get(path)
	log.Printf("🔧 %s a modifié %s = %s", displayName(i), path, pkgdiscord.FormatValue(value))

	msg := h.tr.T(locale, "settings.updated", map[string]any{
		"Name":  view.Name,
		"Value": pkgdiscord.FormatValue(value),
	})
	if active, err := h.settings.Describe(locale, path); err == nil && !active.Active {
		msg += "\n" + h.tr.T(locale, "settings.inactive", nil)
	}
	respondEphemeral(s, i, msg)
}

func (h *Handler) reset(s *discordgo.Session, i *discordgo.Interaction, locale, path string) {
	view, err := h.settings.Describe(locale, path)
	if err != nil {
		h.fail(s, i, locale, err)
		return
	}
	if err := h.settings.Reset(path, changeSource(i)); err != nil {
		h.fail(s, i, locale, err)
		return
	}
	log.Printf("🔧 %s a réinitialisé %s", displayName(i), path)
	respondEphemeral(s, i, h.tr.T(locale, "settings.reset", map[string]any{
		"Name":  view.Name,
		"Value": pkgdiscord.FormatValue(view.Default),
	}))
}

func (h *Handler) fail(s *discordgo.Session, i *discordgo.Interaction, locale string, err error) {
	msg := pkgdiscord.DomainErrorMessage(h.tr, locale, err)
	log.Printf("❌ Erreur /settings: %v", err)
	respondEphemeral(s, i, msg)
}

func (h *Handler) labels(locale string) pkgdiscord.Labels {
	return pkgdiscord.Labels{
		Value:    h.tr.T(locale, "settings.value", nil),
		Default:  h.tr.T(locale, "settings.default", nil),
		Range:    h.tr.T(locale, "settings.range", nil),
		Variants: h.tr.T(locale, "settings.variants", nil),
		Inactive: h.tr.T(locale, "settings.inactive", nil),
	}
}

func (h *Handler) locale(i *discordgo.Interaction) string {
	if i.Locale != "" {
		return string(i.Locale)
	}
	if i.GuildLocale != nil && *i.GuildLocale != "" {
		return string(*i.GuildLocale)
	}
	return h.defaultLocale
}

func displayName(i *discordgo.Interaction) string {
	if name := resolveDisplayName(i.Member); name != "" {
		return name
	}
	if u := interactionUser(i); u != nil {
		return u.Username
	}
	return "?"
}

func optionValues(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	out := make(map[string]string, len(opts))
	for _, opt := range opts {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			out[opt.Name] = opt.StringValue()
		}
	}
	return out
}

// parseInput converts typed text to the type of the current value. Text that
// does not parse is passed through as a string so that the bound tree
// reports the type mismatch.
func parseInput(current any, raw string) any {
	raw = strings.TrimSpace(raw)
	switch current.(type) {
	case bool:
		switch strings.ToLower(raw) {
		case "on", "yes", "oui":
			return true
		case "off", "no", "non":
			return false
		}
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case int64:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case float64:
		if f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
			return f
		}
	case string:
		if raw == `""` {
			return ""
		}
	}
	return raw
}

// tabSegment returns "video" for "_root_video_tab".
func tabSegment(path string) string {
	return strings.TrimSuffix(strings.TrimPrefix(path, schema.RootMarker+schema.Separator), schema.TabSuffix)
}

func truncateChoice(s string) string {
	r := []rune(s)
	if len(r) <= maxChoiceName {
		return s
	}
	return fmt.Sprintf("%s…", string(r[:maxChoiceName-1]))
}
