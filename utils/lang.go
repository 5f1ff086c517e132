package utils

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// catalogFiles lists the message catalogs exposure alerts are rendered
// from, one per supported language.
var catalogFiles = []string{"en.yaml", "zh_tw.yaml"}

var bundle *i18n.Bundle

// InitI18NBundle loads the alert message catalogs from i18n.dir.
// English is the fallback for untranslated messages.
func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, f := range catalogFiles {
		bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), f))
	}
}

// NewLocalizer returns a localizer for one language tag.
func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}
