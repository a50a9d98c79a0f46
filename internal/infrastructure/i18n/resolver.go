package i18n

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
	"golang.org/x/text/language"

	"alvrsettings/internal/domain"
	"alvrsettings/internal/domain/schema"
)

// Match returns the loaded locale closest to the requested one ("zh-CN"
// matches "zh"). Unknown or malformed locales get the fallback.
func (t *Translator) Match(locale string) language.Tag {
	if locale == "" {
		return t.fallback
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return t.fallback
	}
	_, index, confidence := t.matcher.Match(requested)
	if confidence == language.No {
		return t.fallback
	}
	return t.tags[index]
}

// Fallback returns the authoring locale.
func (t *Translator) Fallback() language.Tag { return t.fallback }

// Locales returns the loaded locales, fallback first.
func (t *Translator) Locales() []language.Tag {
	out := make([]language.Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// Resolve returns the text of path+"."+field in locale, falling back to the
// authoring locale. Texts are returned verbatim. A missing description is
// "", a missing (or empty) name is a *domain.MissingNameError.
func (t *Translator) Resolve(path, field, locale string) (string, error) {
	if field != schema.FieldName && field != schema.FieldDescription {
		return "", fmt.Errorf("i18n: unknown field %q", field)
	}
	key := schema.Key(path, field)
	tag := t.Match(locale)
	if text, ok := t.lookup(tag, key, field); ok {
		return text, nil
	}
	if text, ok := t.lookup(t.fallback, key, field); ok {
		return text, nil
	}
	if field == schema.FieldDescription {
		return "", nil
	}
	return "", &domain.MissingNameError{Missing: map[string][]string{tag.String(): {key}}}
}

func (t *Translator) lookup(tag language.Tag, key, field string) (string, bool) {
	text, ok := t.texts[tag][key]
	if field == schema.FieldName && text == "" {
		return "", false
	}
	return text, ok
}

// Validate checks that every named path of tree resolves to a name in every
// loaded locale. It is meant to run once at startup so that a bundle out of
// step with the schema fails the process instead of a render.
func (t *Translator) Validate(tree *schema.Tree) error {
	missing := make(map[string][]string)
	for _, tag := range t.tags {
		for _, p := range tree.NamedPaths() {
			key := schema.Key(p, schema.FieldName)
			if _, ok := t.lookup(tag, key, schema.FieldName); ok {
				continue
			}
			if _, ok := t.lookup(t.fallback, key, schema.FieldName); ok {
				continue
			}
			missing[tag.String()] = append(missing[tag.String()], key)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingNameError{Missing: missing}
	}
	return nil
}

// Orphans lists, per locale, the path keys that match no node of tree.
// Free UI message keys are ignored.
func (t *Translator) Orphans(tree *schema.Tree) map[string][]string {
	out := make(map[string][]string)
	for tag, texts := range t.texts {
		for key := range texts {
			p, _, ok := schema.SplitKey(key)
			if !ok {
				continue
			}
			if _, ok := tree.Lookup(p); ok {
				continue
			}
			if _, ok := tree.LookupVariant(p); ok {
				continue
			}
			out[tag.String()] = append(out[tag.String()], key)
		}
	}
	for _, keys := range out {
		sort.Strings(keys)
	}
	return out
}

// unmarshalJSONC decodes JSON with comments and trailing commas, the format
// the dashboard's bundles were first authored in.
func unmarshalJSONC(data []byte, v any) error {
	return json.Unmarshal(jsonc.ToJSON(data), v)
}
