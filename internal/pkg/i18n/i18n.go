package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "ar"

const catalogFile = "notifications.yaml"

//go:embed locales
var embedded embed.FS

type Translations map[string]string

// Catalog is built once at startup and only read afterwards, so it is safe to
// share between goroutines without locking.
type Catalog struct {
	messages map[string]Translations
	statuses map[string]Translations
}

// LoadDefault reads the catalogue compiled into the binary.
func LoadDefault() (*Catalog, error) {
	return Load(embedded, "locales")
}

// LoadDir reads locale folders from disk, e.g. to ship copy changes without a rebuild.
func LoadDir(localePath string) (*Catalog, error) {
	return Load(os.DirFS(localePath), ".")
}

// Load expects one folder per locale under root, each holding notifications.yaml.
func Load(fsys fs.FS, root string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		messages: make(map[string]Translations),
		statuses: make(map[string]Translations),
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join(root, locale, catalogFile)

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var file struct {
			Notifications Translations `yaml:"NOTIFICATIONS"`
			Statuses      Translations `yaml:"STATUSES"`
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		c.messages[locale] = file.Notifications
		c.statuses[locale] = file.Statuses
	}

	if _, ok := c.messages[DefaultLocale]; !ok {
		return nil, fmt.Errorf("catalog has no %q locale under %s", DefaultLocale, root)
	}

	return c, nil
}

func (c *Catalog) Translate(locale, key string) string {
	if trans, ok := c.messages[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if val, ok := c.messages[DefaultLocale][key]; ok {
			return val
		}
	}

	return key
}

// Format translates key and substitutes {{name}} placeholders. Unknown placeholders
// are left as-is; missing values render as empty strings.
func (c *Catalog) Format(locale, key string, vars map[string]string) string {
	text := c.Translate(locale, key)
	if len(vars) == 0 {
		return text
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// StatusLabel returns the localized label for a report status code.
func (c *Catalog) StatusLabel(locale, status string) (string, bool) {
	label, ok := c.statuses[locale][status]
	return label, ok
}

func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		locales = append(locales, locale)
	}
	return locales
}
