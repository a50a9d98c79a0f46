package discord

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"alvrsettings/internal/domain/entities"
)

const (
	embedColor    = 0x5865F2
	inactiveColor = 0x747F8D

	maxTitle       = 256
	maxDescription = 4096
	maxFieldValue  = 1024
)

// Labels are the localized captions of a setting embed.
type Labels struct {
	Value    string
	Default  string
	Range    string
	Variants string
	Inactive string
}

// FormatValue renders a bound value the way it is typed back in /settings set.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		if x == "" {
			return `""`
		}
		return x
	default:
		return fmt.Sprint(x)
	}
}

// BuildSettingEmbed shows one setting: its texts, value, default, range and,
// for a choice, its variants with the selected one checked.
func BuildSettingEmbed(view entities.SettingView, labels Labels) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       truncate(view.Name, maxTitle),
		Description: truncate(view.Description, maxDescription),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: view.Path},
	}
	if !view.Active {
		embed.Color = inactiveColor
		embed.Description = truncate("*"+labels.Inactive+"*\n\n"+view.Description, maxDescription)
	}
	if !view.Settable {
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: labels.Value, Value: "`" + FormatValue(view.Value) + "`", Inline: true},
		{Name: labels.Default, Value: "`" + FormatValue(view.Default) + "`", Inline: true},
	}
	if view.Min != nil && view.Max != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   labels.Range,
			Value:  fmt.Sprintf("`%s` … `%s`", FormatValue(*view.Min), FormatValue(*view.Max)),
			Inline: true,
		})
	}
	if len(view.Variants) > 0 {
		var b strings.Builder
		for _, v := range view.Variants {
			mark := "▫️"
			if v.Selected {
				mark = "✅"
			}
			fmt.Fprintf(&b, "%s **%s** `%s`\n", mark, v.Label, v.Name)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  labels.Variants,
			Value: truncate(b.String(), maxFieldValue),
		})
	}
	return embed
}

// BuildFormEmbed lists every setting of a tab with its current value.
// Inactive settings are struck through.
func BuildFormEmbed(tab entities.SettingView, views []entities.SettingView) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, v := range views {
		if v.Path == tab.Path {
			continue
		}
		line := "**" + v.Name + "**"
		if v.Settable {
			line += ": `" + FormatValue(v.Value) + "`"
		} else {
			line = "__" + v.Name + "__"
		}
		if !v.Active {
			line = "~~" + line + "~~"
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return &discordgo.MessageEmbed{
		Title:       truncate(tab.Name, maxTitle),
		Description: truncate(b.String(), maxDescription),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: tab.Description},
	}
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
