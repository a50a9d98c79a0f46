package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"alvrsettings/internal/domain"
	"alvrsettings/internal/domain/schema"
)

const enBundle = `
"settings.updated" = "**{{.Name}}** set to ` + "`{{.Value}}`" + `."
"error.generic" = "Something went wrong."
"_root_video_tab.name" = "Video"
"_root_video_tab.description" = "Video settings"
"_root_video_gamma.name" = "Gamma"
"_root_video_gamma.description" = "Line one\nLine two"
"_root_video_codec-choice-.name" = "Video codec"
"_root_video_codec_H264-choice-.name" = "H.264"
"_root_video_codec_HEVC-choice-.name" = "HEVC"
"_root_video_legacy.name" = "Removed setting"
`

const zhBundle = `
"settings.updated" = "**{{.Name}}** 已设置为 {{.Value}}"
"_root_video_tab.name" = "视频"
"_root_video_gamma.name" = "伽马"
"_root_video_gamma.description" = ""
"_root_video_codec-choice-.name" = ""
`

func newTestTranslator(t *testing.T) *Translator {
	t.Helper()
	fsys := fstest.MapFS{
		"active.en.toml": {Data: []byte(enBundle)},
		"active.zh.toml": {Data: []byte(zhBundle)},
	}
	tr, err := Load(fsys, []string{"active.en.toml", "active.zh.toml"}, "en")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return tr
}

func testTree(t *testing.T) *schema.Tree {
	t.Helper()
	tree, err := schema.Build([]schema.NodeSpec{
		schema.Tab("video",
			schema.Float("gamma", 1).Within(0, 5),
			schema.Choice("codec", "H264", schema.Option("H264"), schema.Option("HEVC")),
		),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tree
}

func TestResolve(t *testing.T) {
	tr := newTestTranslator(t)

	tests := []struct {
		name   string
		path   string
		field  string
		locale string
		want   string
	}{
		{"exact locale", "_root_video_tab", "name", "zh", "视频"},
		{"region falls to base language", "_root_video_tab", "name", "zh-CN", "视频"},
		{"missing key uses fallback", "_root_video_tab", "description", "zh", "Video settings"},
		{"empty name uses fallback", "_root_video_codec-choice-", "name", "zh", "Video codec"},
		{"empty description is kept", "_root_video_gamma", "description", "zh", ""},
		{"multi-line text is verbatim", "_root_video_gamma", "description", "en", "Line one\nLine two"},
		{"unknown locale", "_root_video_gamma", "name", "fr", "Gamma"},
		{"malformed locale", "_root_video_gamma", "name", "not a locale!", "Gamma"},
		{"missing description", "_root_video_codec-choice-", "description", "en", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Resolve(tt.path, tt.field, tt.locale)
			if err != nil {
				t.Fatalf("Resolve(%q, %q, %q) error: %v", tt.path, tt.field, tt.locale, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q, %q, %q) = %q, want %q", tt.path, tt.field, tt.locale, got, tt.want)
			}
		})
	}
}

func TestResolve_MissingName(t *testing.T) {
	tr := newTestTranslator(t)

	_, err := tr.Resolve("_root_video_unknown", "name", "zh")
	if !errors.Is(err, domain.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	var missing *domain.MissingNameError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingNameError, got %T", err)
	}
	if diff := cmp.Diff(map[string][]string{"zh": {"_root_video_unknown.name"}}, missing.Missing); diff != "" {
		t.Errorf("Missing mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_UnknownField(t *testing.T) {
	tr := newTestTranslator(t)

	if _, err := tr.Resolve("_root_video_tab", "tooltip", "en"); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestMatch(t *testing.T) {
	tr := newTestTranslator(t)

	for locale, want := range map[string]string{
		"":      "en",
		"en-US": "en",
		"zh":    "zh",
		"zh-CN": "zh",
		"de":    "en",
	} {
		if got := tr.Match(locale).String(); got != want {
			t.Errorf("Match(%q) = %s, want %s", locale, got, want)
		}
	}
	if diff := cmp.Diff([]string{"en", "zh"}, tagStrings(tr)); diff != "" {
		t.Errorf("Locales() mismatch (-want +got):\n%s", diff)
	}
}

func tagStrings(tr *Translator) []string {
	var out []string
	for _, tag := range tr.Locales() {
		out = append(out, tag.String())
	}
	return out
}

func TestValidate(t *testing.T) {
	tr := newTestTranslator(t)

	if err := tr.Validate(testTree(t)); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	tree := schema.MustBuild([]schema.NodeSpec{
		schema.Tab("video",
			schema.Float("gamma", 1),
			schema.Bool("hdr", false),
		),
	})
	err := tr.Validate(tree)
	var missing *domain.MissingNameError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingNameError, got %v", err)
	}
	want := map[string][]string{
		"en": {"_root_video_hdr.name"},
		"zh": {"_root_video_hdr.name"},
	}
	if diff := cmp.Diff(want, missing.Missing); diff != "" {
		t.Errorf("Missing mismatch (-want +got):\n%s", diff)
	}
}

func TestOrphans(t *testing.T) {
	tr := newTestTranslator(t)

	want := map[string][]string{"en": {"_root_video_legacy.name"}}
	if diff := cmp.Diff(want, tr.Orphans(testTree(t))); diff != "" {
		t.Errorf("Orphans mismatch (-want +got):\n%s", diff)
	}
}

func TestT(t *testing.T) {
	tr := newTestTranslator(t)

	data := map[string]any{"Name": "Gamma", "Value": 2.2}
	if got, want := tr.T("en", "settings.updated", data), "**Gamma** set to `2.2`."; got != want {
		t.Errorf("T(en) = %q, want %q", got, want)
	}
	if got, want := tr.T("zh-CN", "settings.updated", data), "**Gamma** 已设置为 2.2"; got != want {
		t.Errorf("T(zh-CN) = %q, want %q", got, want)
	}
	if got, want := tr.T("zh", "error.generic", nil), "Something went wrong."; got != want {
		t.Errorf("T fallback = %q, want %q", got, want)
	}
	if got, want := tr.T("en", "no.such.key", nil), "no.such.key"; got != want {
		t.Errorf("T missing key = %q, want %q", got, want)
	}
}

func TestLoad_FallbackWithoutBundle(t *testing.T) {
	fsys := fstest.MapFS{"active.zh.toml": {Data: []byte(zhBundle)}}
	if _, err := Load(fsys, []string{"active.zh.toml"}, "en"); err == nil {
		t.Fatal("expected an error when the fallback locale has no bundle")
	}
}

func TestLoadDir_JSONC(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"active.en.toml": enBundle,
		"fr.jsonc": `{
			// dashboard
			"_root_video_tab.name": "Vidéo",
			"_root_video_gamma.name": "Gamma",
		}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tr, err := LoadDir(dir, "en")
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	got, err := tr.Resolve("_root_video_tab", "name", "fr-CA")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "Vidéo" {
		t.Errorf("Resolve = %q, want %q", got, "Vidéo")
	}
}

func TestNewTranslator_Embedded(t *testing.T) {
	tr, err := NewTranslator("en")
	if err != nil {
		t.Fatalf("NewTranslator failed: %v", err)
	}
	got, err := tr.Resolve("_root_video_codec_HEVC-choice-", "name", "zh")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "HEVC（画质优先）" {
		t.Errorf("Resolve = %q", got)
	}
}
