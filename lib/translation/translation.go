package translation

import (
	"github.com/leonelquinteros/gotext"
)

func GetLanguage() string {
	lang := gotext.GetLanguage()

	if lang == "und" || lang == "" {
		return "en"
	}

	return lang
}

// Translate resolves a message by ID; with no locale installed the ID itself
// is the English fallback.
func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
