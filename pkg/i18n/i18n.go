// Package i18n localizes the user-facing fragments of webhook messages.
package i18n

import (
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Localizer resolves a message id to a localized string.
type Localizer func(id string) string

// Catalog is a set of message catalogs keyed by locale.
type Catalog struct {
	locales map[string]map[string]string
}

// New parses the bundled locale files into a catalog.
func New() (*Catalog, error) {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	c := &Catalog{
		locales: make(map[string]map[string]string, len(entries)),
	}

	for _, entry := range entries {
		name := entry.Name()
		data, err := localesFS.ReadFile("locales/" + name)
		if err != nil {
			return nil, fmt.Errorf("read locale %q: %w", name, err)
		}

		messages := make(map[string]string)
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", name, err)
		}

		c.locales[strings.TrimSuffix(name, filepath.Ext(name))] = messages
	}

	return c, nil
}

// Get resolves a message id. Lookup order is the exact locale, its base
// language, then English. Unknown ids come back verbatim so a missing
// translation never breaks a message.
func (c *Catalog) Get(locale, id string) string {
	locale = normalize(locale)
	if s, ok := c.lookup(locale, id); ok {
		return s
	}

	if base, _, found := strings.Cut(locale, "-"); found {
		if s, ok := c.lookup(base, id); ok {
			return s
		}
	}

	if s, ok := c.lookup("en", id); ok {
		return s
	}

	return id
}

// Localizer binds a locale.
func (c *Catalog) Localizer(locale string) Localizer {
	return func(id string) string {
		return c.Get(locale, id)
	}
}

// Locales returns the bundled locales in sorted order.
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func (c *Catalog) lookup(locale, id string) (string, bool) {
	m, ok := c.locales[locale]
	if !ok {
		return "", false
	}
	s, ok := m[id]
	return s, ok
}

func normalize(locale string) string {
	return strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
}
