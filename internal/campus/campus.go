package campus

import (
	"regexp"
	"strings"
)

// UnknownCode is used when a site reference is too short to derive a code from.
const UnknownCode = "UNK"

var parenthesized = regexp.MustCompile(`\((\w+)\)`)

// entry pairs a canonical campus code with its display name. Entries are kept
// in a slice, not a map, because resolution order matters: substring scans
// must visit campuses in table order.
type entry struct {
	Code string
	Name string
}

// Directory is the static campus reference table shared by every pipeline.
// It is immutable after construction; build one with NewDirectory and inject
// it wherever campus identity needs resolving.
type Directory struct {
	entries []entry
	byCode  map[string]string
}

// NewDirectory returns the directory of the 20 known campuses.
func NewDirectory() *Directory {
	entries := []entry{
		{"MTY", "Monterrey"},
		{"PUE", "Puebla"},
		{"GDL", "Guadalajara"},
		{"CDJ", "Ciudad Juárez"},
		{"TOL", "Toluca"},
		{"CCM", "Ciudad de México"},
		{"CEM", "Estado de México"},
		{"QRO", "Querétaro"},
		{"CHI", "Chihuahua"},
		{"SIN", "Sinaloa"},
		{"AGS", "Aguascalientes"},
		{"COB", "Ciudad Obregón"},
		{"LEO", "León"},
		{"LAG", "Laguna"},
		{"SON", "Sonora"},
		{"HGO", "Hidalgo"},
		{"SLP", "San Luis Potosí"},
		{"CVA", "Cuernavaca"},
		{"CSF", "Santa Fe"},
		{"SAL", "Saltillo"},
	}

	byCode := make(map[string]string, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e.Name
	}

	return &Directory{entries: entries, byCode: byCode}
}

// Name returns the display name for a canonical code.
func (d *Directory) Name(code string) (string, bool) {
	name, ok := d.byCode[code]
	return name, ok
}

// IsKnown reports whether code is one of the 20 canonical campus codes.
func (d *Directory) IsKnown(code string) bool {
	_, ok := d.byCode[code]
	return ok
}

// Codes returns the canonical codes in table order.
func (d *Directory) Codes() []string {
	codes := make([]string, len(d.entries))
	for i, e := range d.entries {
		codes[i] = e.Code
	}
	return codes
}

// Resolve maps a free-text site reference to a (code, name) pair. It never
// fails: references that match nothing fall back to a synthetic identity so
// downstream output keeps every record it saw.
//
// Strategies, first match wins:
//  1. a parenthesized token, e.g. "Campus Monterrey (MTY)"
//  2. a known code embedded anywhere in the uppercased text
//  3. a known display name embedded anywhere in the lowercased text
//  4. the first three characters of the text, uppercased
func (d *Directory) Resolve(text string) (string, string) {
	if m := parenthesized.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		if name, ok := d.byCode[code]; ok {
			return code, name
		}
		// Annotated but unrecognized: keep the annotation as both halves.
		return code, code
	}

	upper := strings.ToUpper(text)
	for _, e := range d.entries {
		if strings.Contains(upper, e.Code) {
			return e.Code, e.Name
		}
	}

	lower := strings.ToLower(text)
	for _, e := range d.entries {
		if strings.Contains(lower, strings.ToLower(e.Name)) {
			return e.Code, e.Name
		}
	}

	return fallbackCode(text), text
}

// ResolveByName maps a display name (as found in score-table campus headers)
// to a canonical code, matching known names as case-insensitive substrings.
func (d *Directory) ResolveByName(name string) string {
	lower := strings.ToLower(name)
	for _, e := range d.entries {
		if strings.Contains(lower, strings.ToLower(e.Name)) {
			return e.Code
		}
	}
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

func fallbackCode(text string) string {
	runes := []rune(text)
	if len(runes) < 3 {
		return UnknownCode
	}
	return strings.ToUpper(string(runes[:3]))
}
