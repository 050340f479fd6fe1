// Package region derives a Russian federal subject from a free-text address.
package region

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	postalIndex  = regexp.MustCompile(`^\s*\d{5,6}\s*,\s*`)
	federalCity  = regexp.MustCompile(`(?i)(г\.?\s*)?(москва|санкт\s*[- ]?\s*петербург|севастополь)`)
	regionPhrase = regexp.MustCompile(`(?i)(республика\s+[^,]+|[^,]+\s+область|[^,]+\s+край|[^,]+\s+автономный\s+округ|[^,]+\s+автономная\s+область)`)
	petersburg   = regexp.MustCompile(`(?i)^санкт\s*[- ]?\s*петербург$`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	yoReplacer   = strings.NewReplacer("ё", "е", "Ё", "Е")
)

// Extract returns the region named in address, title-cased, or "" when none
// can be found.
//
// Federal cities are recognised first, then phrases built around a region
// noun (республика, область, край, автономный округ, автономная область).
// Otherwise the text before the first comma is used unless it is numeric.
func Extract(address string) string {
	s := yoReplacer.Replace(strings.TrimSpace(address))
	if s == "" {
		return ""
	}
	s = postalIndex.ReplaceAllString(s, "")

	if m := federalCity.FindStringSubmatch(s); m != nil {
		return titleCase(m[2])
	}
	if m := regionPhrase.FindString(s); m != "" {
		return titleCase(m)
	}

	first, _, _ := strings.Cut(s, ",")
	first = strings.TrimSpace(first)
	if first == "" || digitsOnly.MatchString(first) {
		return ""
	}
	return titleCase(first)
}

// titleCase capitalizes every word, including each part of a hyphenated
// name, so "ханты-мансийский" becomes "Ханты-Мансийский".
func titleCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if petersburg.MatchString(s) {
		return "Санкт-Петербург"
	}
	return cases.Title(language.Russian).String(strings.ToLower(s))
}
