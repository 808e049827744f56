// Package detector identifies the natural language of request and story text.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// languages is the set of languages stories are commonly requested in.
// Restricting the set keeps the detector small and fast to build.
var languages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Polish,
	lingua.Ukrainian,
	lingua.Russian,
}

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &Detector{detector: detector}
}

// DetectISO returns the ISO 639-1 code of text, lower-cased.
func (d *Detector) DetectISO(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
