// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	LangZH = "zh"
	LangEN = "en"
)

var (
	once         sync.Once
	translations map[string]map[string]string
	defaultLang  = LangZH
)

func load() {
	translations = make(map[string]map[string]string)
	for _, lang := range []string{LangZH, LangEN} {
		data, err := localeFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: missing embedded locale %s: %v", lang, err))
		}
		table := make(map[string]string)
		if err := json.Unmarshal(data, &table); err != nil {
			panic(fmt.Sprintf("i18n: malformed locale %s: %v", lang, err))
		}
		translations[lang] = table
	}
}

// T resolves key for lang, falling back to the default language and finally
// to the key itself. Extra args are interpolated with fmt.Sprintf.
func T(lang, key string, args ...interface{}) string {
	once.Do(load)

	if table, ok := translations[lang]; ok {
		if text, ok := table[key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...)
			}
			return text
		}
	}

	if lang != defaultLang {
		if table, ok := translations[defaultLang]; ok {
			if text, ok := table[key]; ok {
				if len(args) > 0 {
					return fmt.Sprintf(text, args...)
				}
				return text
			}
		}
	}

	return key
}

// SupportedLanguages lists the embedded locales.
func SupportedLanguages() []string {
	once.Do(load)

	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	return langs
}
