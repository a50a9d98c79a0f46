package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"alvrsettings/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Translator implements the output ports.
var (
	_ output.T        = (*Translator)(nil)
	_ output.Resolver = (*Translator)(nil)
)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer for UI
// messages, plus an immutable per-locale copy of every message used to
// resolve settings names and descriptions verbatim.
type Translator struct {
	bundle   *i18n.Bundle
	fallback language.Tag
	tags     []language.Tag // fallback first
	matcher  language.Matcher
	texts    map[language.Tag]map[string]string
}

// NewTranslator builds a Translator from the embedded active.*.toml files,
// using fallbackLocale (e.g. "en") as the authoring locale.
func NewTranslator(fallbackLocale string) (*Translator, error) {
	files, err := fs.Glob(localeFS, "active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob embedded bundles: %w", err)
	}
	return Load(localeFS, files, fallbackLocale)
}

// LoadDir builds a Translator from every .toml, .json and .jsonc bundle in
// dir. File names carry the locale (e.g. "active.zh.toml", "fr.jsonc").
func LoadDir(dir, fallbackLocale string) (*Translator, error) {
	fsys := os.DirFS(dir)
	var files []string
	for _, pattern := range []string{"*.toml", "*.json", "*.jsonc"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("i18n: glob %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("i18n: no bundle found in %s", dir)
	}
	return Load(fsys, files, fallbackLocale)
}

// Load parses the given bundle files from fsys. The fallback locale must be
// among them.
func Load(fsys fs.FS, files []string, fallbackLocale string) (*Translator, error) {
	fallback, err := language.Parse(fallbackLocale)
	if err != nil {
		return nil, fmt.Errorf("i18n: invalid fallback locale %q: %w", fallbackLocale, err)
	}
	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("jsonc", unmarshalJSONC)

	t := &Translator{
		bundle:   bundle,
		fallback: fallback,
		texts:    make(map[language.Tag]map[string]string),
	}
	for _, file := range files {
		mf, err := bundle.LoadMessageFileFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("i18n: failed to load %s: %w", file, err)
		}
		t.addFile(path.Base(file), mf)
	}

	if _, ok := t.texts[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %s has no bundle", fallback)
	}
	t.tags = append(t.tags, fallback)
	for tag := range t.texts {
		if tag != fallback {
			t.tags = append(t.tags, tag)
		}
	}
	sort.Slice(t.tags[1:], func(i, j int) bool {
		return t.tags[1+i].String() < t.tags[1+j].String()
	})
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

func (t *Translator) addFile(name string, mf *i18n.MessageFile) {
	texts, ok := t.texts[mf.Tag]
	if !ok {
		texts = make(map[string]string, len(mf.Messages))
		t.texts[mf.Tag] = texts
	}
	for _, m := range mf.Messages {
		if _, dup := texts[m.ID]; dup {
			log.Printf("⚠️ i18n: clé %s redéfinie par %s", m.ID, name)
		}
		texts[m.ID] = m.Other
	}
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, t.Match(locale).String())
	}
	languages = append(languages, t.fallback.String())

	var lastErr error
	for _, lang := range languages {
		localizer := i18n.NewLocalizer(t.bundle, lang)
		msg, err := localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    key,
			TemplateData: data,
		})
		var notFound *i18n.MessageNotFoundErr
		if err == nil || (msg != "" && errors.As(err, &notFound)) {
			return msg
		}
		lastErr = err
	}
	log.Printf("i18n: localize failed (key=%s, locales=%v): %v", key, languages, lastErr)
	return key
}
