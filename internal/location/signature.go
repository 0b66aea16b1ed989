package location

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"costasight-comparables/internal/models"
)

// Signature is the normalized identity of a location input. Key is stable
// across house numbers on the same street; Text is what gets geocoded.
type Signature struct {
	Key       string
	Text      string
	Precise   bool
	FromHint  bool
	Cacheable bool
}

// Classifier decides whether an address input is street-level (precise) or
// only names a district known to span a large area (broad).
type Classifier struct {
	broadAreas map[string]struct{}
}

// NewClassifier builds a classifier from the configured broad-area deny-list.
func NewClassifier(broadAreas []string) *Classifier {
	deny := make(map[string]struct{}, len(broadAreas))
	for _, name := range broadAreas {
		deny[normalizeComponent(name)] = struct{}{}
	}
	return &Classifier{broadAreas: deny}
}

// streetTerms maps full Spanish street designators to their abbreviations so
// "Calle Larios" and "C/ Larios" normalize to the same signature.
var streetTerms = map[string]string{
	"calle":        "c",
	"c/":           "c",
	"avenida":      "avda",
	"av":           "avda",
	"urbanizacion": "urb",
	"urbanización": "urb",
	"camino":       "cno",
	"paseo":        "po",
	"plaza":        "pza",
	"carretera":    "ctra",
}

// streetKeywords are the normalized designators whose presence marks an
// address fragment as street-level.
var streetKeywords = map[string]struct{}{
	"c": {}, "avda": {}, "urb": {}, "cno": {}, "po": {}, "pza": {}, "ctra": {},
}

// Signature normalizes the input into a cache signature. A free-text hint
// overrides the raw address fields for cache-key purposes.
func (c *Classifier) Signature(frags models.AddressFragments, hint string) Signature {
	if strings.TrimSpace(hint) != "" {
		normalized := normalizeComponent(hint)
		return Signature{
			Key:       "hint:" + hashKey(normalized),
			Text:      strings.TrimSpace(hint),
			FromHint:  true,
			Cacheable: true,
		}
	}

	street := normalizeComponent(frags.Street)
	urbanization := normalizeComponent(frags.Urbanization)
	city := normalizeComponent(frags.City)

	// Deny-listed broad names never contribute to the signature, wherever
	// the feed happened to put them.
	if c.isBroadArea(street) {
		street = ""
	}
	if c.isBroadArea(urbanization) {
		urbanization = ""
	}

	precise := urbanization != "" || isStreetLevel(street)

	// The key excludes pure area names and house numbers: two properties on
	// the same street legitimately share an entry, two properties sharing
	// only an area name must not.
	var parts []string
	if street != "" {
		parts = append(parts, stripHouseNumbers(street))
	}
	if urbanization != "" {
		parts = append(parts, urbanization)
	}
	if city != "" {
		parts = append(parts, city)
	}

	var text []string
	for _, s := range []string{frags.Street, frags.Urbanization, frags.Area, frags.City} {
		if strings.TrimSpace(s) != "" {
			text = append(text, strings.TrimSpace(s))
		}
	}

	return Signature{
		Key:       "addr:" + hashKey(strings.Join(parts, "|")),
		Text:      strings.Join(text, ", "),
		Precise:   precise,
		Cacheable: precise,
	}
}

func (c *Classifier) isBroadArea(normalized string) bool {
	if normalized == "" {
		return false
	}
	_, ok := c.broadAreas[normalized]
	return ok
}

// isStreetLevel reports whether a normalized street fragment carries a
// street designator or a house number.
func isStreetLevel(street string) bool {
	if street == "" {
		return false
	}
	for _, token := range strings.Fields(street) {
		if _, ok := streetKeywords[token]; ok {
			return true
		}
		if isNumeric(token) {
			return true
		}
	}
	return false
}

func normalizeComponent(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.Fields(s)
	for i, f := range fields {
		trimmed := strings.TrimSuffix(f, ".")
		if abbr, ok := streetTerms[trimmed]; ok {
			fields[i] = abbr
		} else {
			fields[i] = trimmed
		}
	}
	return strings.Join(fields, " ")
}

func stripHouseNumbers(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if isNumeric(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
