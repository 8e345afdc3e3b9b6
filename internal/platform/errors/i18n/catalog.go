// Package i18n renders localized user-facing messages for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/registrar/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (a string here to avoid an import
// cycle with the errors package).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale    string
	messages  map[Code]string
	templates sync.Map
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the catalog best matching locale, which may be a single
// tag or an Accept-Language list. Falls back to en-US.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if c, ok := lookupCatalog(requested); ok {
		return c
	}

	bundle := i18ncatalog.Default()
	resolved, messages := bundle.NamespaceMessagesWithFallback(bundle.Match(requested), "errors")
	if c, ok := lookupCatalog(resolved); ok {
		return c
	}
	return storeCatalogIfAbsent(resolved, NewCatalog(resolved, messages))
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata, falling back
// to the code itself when no template exists and to the raw template when it
// cannot be rendered.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	raw, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	var t *template.Template
	if cached, ok := c.templates.Load(code); ok {
		t = cached.(*template.Template)
	} else {
		parsed, err := template.New(code).Parse(raw)
		if err != nil {
			return raw
		}
		c.templates.Store(code, parsed)
		t = parsed
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return raw
	}
	return buf.String()
}

// RegisterCatalog overrides the catalog for a locale. Intended for tests.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{locale: locale, messages: cloned}
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}

func storeCatalogIfAbsent(locale string, candidate *Catalog) *Catalog {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[locale]; ok {
		return existing
	}
	catalogs[locale] = candidate
	return candidate
}
