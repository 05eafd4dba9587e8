// Package localization provides the translated strings and marketing copy served to the
// site's language selector. Each language lives in a JSON file named after its code
// (e.g. "en.json"); English is the fallback for missing languages and missing keys.
package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// DefaultLanguage is used whenever a requested language or key is missing.
const DefaultLanguage = "en"

//go:embed locales/*.json
var embedded embed.FS

type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Slide struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
}

// Content is the copy behind the disclaimer accordion, feature showcase and carousel.
type Content struct {
	Language   string    `json:"language"`
	Disclaimer []Section `json:"disclaimer"`
	Features   []Feature `json:"features"`
	Carousel   []Slide   `json:"carousel"`
}

type localeFile struct {
	Language Language          `json:"language"`
	Strings  map[string]string `json:"strings"`
	Content  Content           `json:"content"`
}

// Localizer manages the translations for the application.
type Localizer struct {
	mu      sync.RWMutex
	locales map[string]*localeFile
}

// NewLocalizer loads every *.json file at the root of fsys.
func NewLocalizer(fsys fs.FS) (*Localizer, error) {
	l := &Localizer{locales: make(map[string]*localeFile)}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read localization directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		code := strings.TrimSuffix(entry.Name(), ".json")

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var lf localeFile
		if err := json.Unmarshal(data, &lf); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		lf.Language.Code = code
		lf.Content.Language = code
		l.locales[code] = &lf
	}

	if _, ok := l.locales[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("localization directory has no %s.json", DefaultLanguage)
	}
	return l, nil
}

// Default returns the localizer built from the embedded locales.
func Default() *Localizer {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic(err)
	}
	l, err := NewLocalizer(sub)
	if err != nil {
		panic(fmt.Sprintf("embedded locales are invalid: %v", err))
	}
	return l
}

// Resolve maps a requested language (e.g. "es-MX") to a loaded one.
func (l *Localizer) Resolve(lang string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := l.locales[lang]; ok {
		return lang
	}
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		if _, ok := l.locales[lang[:i]]; ok {
			return lang[:i]
		}
	}
	return DefaultLanguage
}

func (l *Localizer) Languages() []Language {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Language, 0, len(l.locales))
	for _, lf := range l.locales {
		out = append(out, lf.Language)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// GetString returns the translation for key, falling back to English and then the key itself.
func (l *Localizer) GetString(lang, key string) string {
	code := l.Resolve(lang)

	l.mu.RLock()
	defer l.mu.RUnlock()
	if s, ok := l.locales[code].Strings[key]; ok {
		return s
	}
	if s, ok := l.locales[DefaultLanguage].Strings[key]; ok {
		return s
	}
	return key
}

// Strings returns the full translation map for lang with English filling the gaps.
func (l *Localizer) Strings(lang string) map[string]string {
	code := l.Resolve(lang)

	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]string, len(l.locales[DefaultLanguage].Strings))
	for k, v := range l.locales[DefaultLanguage].Strings {
		out[k] = v
	}
	for k, v := range l.locales[code].Strings {
		out[k] = v
	}
	return out
}

func (l *Localizer) Content(lang string) Content {
	code := l.Resolve(lang)

	l.mu.RLock()
	defer l.mu.RUnlock()
	c := l.locales[code].Content
	def := l.locales[DefaultLanguage].Content
	if len(c.Disclaimer) == 0 {
		c.Disclaimer = def.Disclaimer
	}
	if len(c.Features) == 0 {
		c.Features = def.Features
	}
	if len(c.Carousel) == 0 {
		c.Carousel = def.Carousel
	}
	return c
}
