// Package i18n renders user-facing error messages from the errors namespace
// of the embedded locale catalogs.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	platformi18n "github.com/louisbranch/aria-memo/internal/platform/i18n"
	"github.com/louisbranch/aria-memo/internal/platform/i18n/catalog"
)

// Code is an error code. It mirrors errors.Code, which imports this package.
type Code = string

// Catalog holds the parsed message templates of one locale.
type Catalog struct {
	locale    string
	templates map[Code]*template.Template
	raw       map[Code]string
}

var catalogs sync.Map // locale -> *Catalog

// GetCatalog returns the catalog for locale. locale may be a full tag, a
// bare language or an Accept-Language value; unsupported values get en-US.
func GetCatalog(locale string) *Catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = catalog.BaseLocale
	}
	if c, ok := catalogs.Load(locale); ok {
		return c.(*Catalog)
	}

	resolved, messages := catalog.Default().NamespaceMessagesWithFallback(
		platformi18n.ResolveLocale(locale), catalog.NamespaceErrors)
	if c, ok := catalogs.Load(resolved); ok {
		return c.(*Catalog)
	}
	c, _ := catalogs.LoadOrStore(resolved, NewCatalog(resolved, messages))
	return c.(*Catalog)
}

// RegisterCatalog installs c for locale, replacing the bundled one.
func RegisterCatalog(locale string, c *Catalog) {
	catalogs.Store(locale, c)
}

// NewCatalog parses messages as text/template sources. A message that does
// not parse is kept and returned verbatim by Format.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		templates: make(map[Code]*template.Template, len(messages)),
		raw:       make(map[Code]string, len(messages)),
	}
	for code, text := range messages {
		c.raw[code] = text
		if tmpl, err := template.New(code).Parse(text); err == nil {
			c.templates[code] = tmpl
		}
	}
	return c
}

// Locale returns the locale the messages are written in.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata as template data. An
// unknown code renders as itself; a broken template renders its source.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.raw[code]
	if !ok {
		return code
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, metadata); err != nil {
		return text
	}
	return out.String()
}
