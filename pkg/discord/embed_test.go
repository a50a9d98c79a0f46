package discord

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"alvrsettings/internal/domain/entities"
)

var testLabels = Labels{Value: "Value", Default: "Default", Range: "Range", Variants: "Options", Inactive: "Inactive"}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "-"},
		{2.2, "2.2"},
		{0.005, "0.005"},
		{int64(9944), "9944"},
		{true, "true"},
		{"", `""`},
		{"HEVC", "HEVC"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildSettingEmbed(t *testing.T) {
	lo, hi := 0.0, 5.0
	embed := BuildSettingEmbed(entities.SettingView{
		Path:     "_root_video_colorCorrection_content_gamma",
		Name:     "Gamma",
		Settable: true,
		Active:   true,
		Value:    2.2,
		Default:  1.0,
		Min:      &lo,
		Max:      &hi,
	}, testLabels)

	var got []string
	for _, f := range embed.Fields {
		got = append(got, f.Name+"="+f.Value)
	}
	want := []string{"Value=`2.2`", "Default=`1`", "Range=`0` … `5`"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if embed.Footer.Text != "_root_video_colorCorrection_content_gamma" {
		t.Errorf("footer = %q", embed.Footer.Text)
	}
}

func TestBuildSettingEmbed_Choice(t *testing.T) {
	embed := BuildSettingEmbed(entities.SettingView{
		Name:     "Video codec",
		Settable: true,
		Value:    "HEVC",
		Default:  "H264",
		Variants: []entities.VariantView{
			{Name: "H264", Label: "H.264"},
			{Name: "HEVC", Label: "HEVC", Selected: true},
		},
	}, testLabels)

	if embed.Color != inactiveColor {
		t.Error("inactive setting should use the inactive color")
	}
	if !strings.HasPrefix(embed.Description, "*Inactive*") {
		t.Errorf("description = %q", embed.Description)
	}
	last := embed.Fields[len(embed.Fields)-1]
	if last.Value != "▫️ **H.264** `H264`\n✅ **HEVC** `HEVC`\n" {
		t.Errorf("variants field = %q", last.Value)
	}
}

func TestBuildFormEmbed(t *testing.T) {
	tab := entities.SettingView{Path: "_root_audio_tab", Name: "Audio", Active: true}
	embed := BuildFormEmbed(tab, []entities.SettingView{
		tab,
		{Path: "_root_audio_microphone", Name: "Microphone", Active: true},
		{Path: "_root_audio_microphone_enabled", Name: "Enabled", Settable: true, Active: true, Value: false},
		{Path: "_root_audio_microphone_content_deviceDropdown", Name: "Device", Settable: true, Value: ""},
	})

	want := "__Microphone__\n**Enabled**: `false`\n~~**Device**: `\"\"`~~\n"
	if embed.Description != want {
		t.Errorf("description = %q, want %q", embed.Description, want)
	}
}

func TestTruncate(t *testing.T) {
	s := strings.Repeat("视", 10)
	got := truncate(s, 5)
	if utf8.RuneCountInString(got) != 5 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate = %q", got)
	}
	if truncate("short", 10) != "short" {
		t.Error("short strings must be left alone")
	}
}
