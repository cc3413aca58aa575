// Package casing converts configuration keys between the snake_case used by
// resource constructors and the camelCase used in YAML documents.
//
// Input is NFC-normalized first so keys that differ only in Unicode
// composition compare equal.
package casing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	wordBoundary = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerToUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToCamel converts snake_case to camelCase: "data_set_id" becomes
// "dataSetId". Keys without underscores are returned unchanged.
func ToCamel(s string) string {
	s = norm.NFC.String(s)
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	// Casers are stateful; one per call.
	title := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(title.String(p))
	}
	return b.String()
}

// ToSnake converts camelCase to snake_case: "dataSetId" becomes
// "data_set_id" and "HTTPServer" becomes "http_server".
func ToSnake(s string) string {
	s = norm.NFC.String(s)
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	s = lowerToUpper.ReplaceAllString(s, "${1}_${2}")
	return cases.Lower(language.Und).String(s)
}

// Fold returns the case-folded form of s for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// FoldKey folds s with underscores removed, so "data_set_id", "dataSetId"
// and "DATASETID" share one key.
func FoldKey(s string) string {
	return Fold(strings.ReplaceAll(s, "_", ""))
}
