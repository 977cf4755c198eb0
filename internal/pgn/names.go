// Package pgn loads multi-game move-record files: player identity recovery,
// game extraction via the chess-rules provider, and batch loading with
// per-game fault tolerance.
package pgn

import (
	"regexp"
	"strconv"
	"strings"
)

// placeholders are header values that count as an absent player name.
var placeholders = map[string]struct{}{
	"": {}, "?": {}, "-": {}, "Unknown": {}, "N/A": {}, "null": {}, "None": {},
}

// titlePrefixes are chess-title tokens stripped from the front of a name.
var titlePrefixes = map[string]struct{}{
	"GM": {}, "IM": {}, "FM": {}, "CM": {}, "WGM": {}, "WIM": {}, "WFM": {}, "WCM": {},
}

// generationSuffixes are trailing tokens stripped from a name, compared with
// any trailing period removed.
var generationSuffixes = map[string]struct{}{
	"Jr": {}, "Sr": {}, "II": {}, "III": {}, "IV": {},
}

var (
	siteVsPattern   = regexp.MustCompile(`(?i)(\w+(?:\s+\w+)*)\s+vs\s+(\w+(?:\s+\w+)*)`)
	scottishPattern = regexp.MustCompile(`\b(Mc|Mac)([a-z])`)
	gaelicPattern   = regexp.MustCompile(`\b(O'|D')([a-z])`)
)

func isPlaceholder(name string) bool {
	_, ok := placeholders[name]

	return ok
}

// ExtractPlayerName recovers a usable player name for one slot ("White" or
// "Black") from incomplete game headers. Resolution runs an ordered fallback
// chain; the first non-placeholder result wins, and the cleaning pass is
// always applied.
func ExtractPlayerName(headers map[string]string, slot string, index int) string {
	name := strings.TrimSpace(headers[slot])

	if isPlaceholder(name) {
		name = nameFromAltHeaders(headers, slot)
	}

	if name == "" {
		name = nameFromEvent(headers["Event"], slot)
	}

	if name == "" {
		name = nameFromSite(headers["Site"], slot)
	}

	if name == "" {
		name = synthesizeName(headers, slot, index)
	}

	name = CleanPlayerName(name)

	if len(strings.TrimSpace(name)) < 2 {
		name = numberedName(slot, index)
	}

	return name
}

// nameFromAltHeaders checks alternate header spellings for the slot.
func nameFromAltHeaders(headers map[string]string, slot string) string {
	altKeys := []string{
		slot + "Player",
		slot + "_Player",
		slot + "Name",
		slot + "_Name",
	}

	for _, key := range altKeys {
		alt := strings.TrimSpace(headers[key])
		if !isPlaceholder(alt) {
			return alt
		}
	}

	return ""
}

// nameFromEvent splits an Event like "Smith vs Jones" or "Smith - Jones",
// taking the first segment for White and the second for Black.
func nameFromEvent(event, slot string) string {
	var parts []string

	lower := strings.ToLower(event)

	switch {
	case strings.Contains(lower, "vs"):
		parts = strings.Split(lower, "vs")
	case strings.Contains(event, " - "):
		parts = strings.Split(event, " - ")
	}

	if len(parts) < 2 {
		return ""
	}

	if slot == "White" {
		return titleWords(strings.TrimSpace(parts[0]))
	}

	return titleWords(strings.TrimSpace(parts[1]))
}

// nameFromSite extracts a "<Name> vs <Name>" pairing from the Site field
// when it mentions a tournament or match.
func nameFromSite(site, slot string) string {
	lower := strings.ToLower(site)
	if !strings.Contains(lower, "tournament") && !strings.Contains(lower, "match") {
		return ""
	}

	match := siteVsPattern.FindStringSubmatch(site)
	if match == nil {
		return ""
	}

	if slot == "White" {
		return titleWords(strings.TrimSpace(match[1]))
	}

	return titleWords(strings.TrimSpace(match[2]))
}

// synthesizeName builds a descriptive fallback from the Event or Date.
func synthesizeName(headers map[string]string, slot string, index int) string {
	event := headers["Event"]
	if event != "" && event != "Game" {
		return event + " " + slot
	}

	if date := headers["Date"]; date != "" {
		return date + " " + slot
	}

	return numberedName(slot, index)
}

func numberedName(slot string, index int) string {
	return slot + " Player " + strconv.Itoa(index)
}

// CleanPlayerName normalizes a raw player name: collapses whitespace, strips
// chess titles and generational suffixes, title-cases, and restores casing
// after Mc/Mac and O'/D' prefixes. If stripping removes every word, the
// original name is returned untouched.
func CleanPlayerName(name string) string {
	if name == "" {
		return ""
	}

	words := strings.Fields(name)

	for len(words) > 0 {
		if _, ok := titlePrefixes[words[0]]; !ok {
			break
		}

		words = words[1:]
	}

	for len(words) > 0 {
		if _, ok := generationSuffixes[strings.TrimRight(words[len(words)-1], ".")]; !ok {
			break
		}

		words = words[:len(words)-1]
	}

	if len(words) == 0 {
		return name
	}

	cleaned := titleWords(strings.Join(words, " "))

	cleaned = strings.ReplaceAll(cleaned, "'S ", "'s ")
	cleaned = scottishPattern.ReplaceAllStringFunc(cleaned, upperAfterPrefix)
	cleaned = gaelicPattern.ReplaceAllStringFunc(cleaned, upperAfterPrefix)

	return cleaned
}

// upperAfterPrefix uppercases the final letter of a prefix match
// ("Mcd" -> "McD", "O'b" -> "O'B").
func upperAfterPrefix(match string) string {
	return match[:len(match)-1] + strings.ToUpper(match[len(match)-1:])
}

// titleWords uppercases the first letter of each whitespace-separated word
// and lowercases the rest.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}

	return strings.Join(words, " ")
}
