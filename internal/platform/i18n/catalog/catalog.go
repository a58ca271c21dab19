// Package catalog loads the embedded message catalogs for every supported
// locale and registers them with golang.org/x/text/message.
//
// Files live at locales/<locale>/<namespace>.yaml:
//
//	locale: "fr-FR"
//	namespace: "errors"
//	messages:
//	  "NOTATION_EMPTY_EXPRESSION": "L'expression de dés est vide"
//
// Keys are unique per locale across namespaces. Keys of the "errors"
// namespace are error codes; "core." keys belong to the "core" namespace.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

const (
	// NamespaceCore holds application text: help, labels, results.
	NamespaceCore = "core"
	// NamespaceErrors holds templates keyed by error code.
	NamespaceErrors = "errors"
)

var errorCodeKey = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustLoadEmbedded()

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	locales map[string]*localeMessages
}

type localeMessages struct {
	all        map[string]string
	namespaces map[string]map[string]string
}

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Default returns the embedded bundle, registered with x/text at init.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys. The base locale must
// be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]*localeMessages{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parseFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is missing", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	dir, name := path.Split(p)
	if want := path.Base(dir); file.Locale != want {
		return fmt.Errorf("locale %q does not match directory %q", file.Locale, want)
	}
	if want := strings.TrimSuffix(name, path.Ext(name)); file.Namespace != want {
		return fmt.Errorf("namespace %q does not match file name %q", file.Namespace, want)
	}
	if _, err := language.Parse(file.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", file.Locale, err)
	}

	lm := b.locales[file.Locale]
	if lm == nil {
		lm = &localeMessages{all: map[string]string{}, namespaces: map[string]map[string]string{}}
		b.locales[file.Locale] = lm
	}
	if _, ok := lm.namespaces[file.Namespace]; ok {
		return fmt.Errorf("namespace %q defined twice for %s", file.Namespace, file.Locale)
	}

	for key, value := range file.Messages {
		switch {
		case strings.HasPrefix(key, "core.") && file.Namespace != NamespaceCore:
			return fmt.Errorf("key %q belongs in the %s namespace", key, NamespaceCore)
		case file.Namespace == NamespaceErrors && !errorCodeKey.MatchString(key):
			return fmt.Errorf("key %q is not an error code", key)
		}
		if _, ok := lm.all[key]; ok {
			return fmt.Errorf("duplicate key %q for %s", key, file.Locale)
		}
		lm.all[key] = value
	}
	lm.namespaces[file.Namespace] = file.Messages
	return nil
}

// register makes every message available to message.Printer. Regional
// locales are also registered under their bare language so "fr" finds
// fr-FR text.
func (b *Bundle) register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if bare := language.Make(base.String()); bare.String() != tag.String() {
				tags = append(tags, bare)
			}
		}
		for key, value := range b.locales[locale].all {
			for _, t := range tags {
				if err := message.SetString(t, key, value); err != nil {
					return fmt.Errorf("register %s %q: %w", t, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether locale has at least one catalog file.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

// LocaleMessages returns a copy of every message of locale, without fallback.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	lm, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	return clone(lm.all)
}

// NamespaceMessages returns a copy of one namespace of locale, without fallback.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	lm, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	return clone(lm.namespaces[strings.TrimSpace(namespace)])
}

// NamespaceMessagesWithFallback returns the namespace for locale, or for the
// base locale when locale has none, along with the locale actually used.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages := b.NamespaceMessages(locale, namespace); len(messages) > 0 {
		return locale, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

// Message returns one message for locale, falling back to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		if lm, ok := b.locales[candidate]; ok {
			if value, ok := lm.all[key]; ok {
				return value, true
			}
		}
	}
	return "", false
}

func clone(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.register(); err != nil {
		panic(err)
	}
	return b
}

// parseFile decodes one catalog file. Unknown fields and duplicate keys are
// rejected.
func parseFile(data []byte) (catalogFile, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return catalogFile{}, err
	}

	file.Locale = strings.TrimSpace(file.Locale)
	file.Namespace = strings.TrimSpace(file.Namespace)
	switch {
	case file.Locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case file.Namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(file.Messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	for key := range file.Messages {
		if strings.TrimSpace(key) == "" {
			return catalogFile{}, fmt.Errorf("blank message key")
		}
	}
	return file, nil
}
