package note

import (
	"regexp"
	"strings"
)

// noteRegex matches one {{#note <key>}}...{{#note end}} region. The (?ms)
// flags let a region span lines. A key runs to the first closing brace and a
// payload to the first opening brace, so regions never nest and the first
// end marker always terminates the region.
var noteRegex = regexp.MustCompile(`(?ms)\{\{#note ?(?P<key>[^}]*)}}(?P<val>[^{]*)\{\{#note end}}`)

// Extract is one captured note payload, or a synthetic chapter heading,
// tagged with the key path it will be grouped under.
//
// Key holds the pipe separated key segments in reverse written order.
// Grouping consumes segments from the end of the slice, so a key reads left
// to right as a path from the root: "a|b" nests b under a. An empty Key
// places the value directly in the generated chapter's body.
type Extract struct {
	Key []string
	Val string
}

// Scan extracts every note region from content in source order. The first
// time a distinct key expression appears in a chapter, a "### <chapter>"
// heading extract precedes the payload extract so grouped notes stay
// attributed to their source chapter.
func Scan(content, chapterName string) []Extract {
	matches := noteRegex.FindAllStringSubmatch(content, -1)
	if matches == nil {
		return nil
	}

	extracts := make([]Extract, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		key := capture(m, "key")
		keys := splitKey(key)
		if !seen[key] {
			seen[key] = true
			extracts = append(extracts, Extract{Key: keys, Val: "### " + chapterName})
		}
		extracts = append(extracts, Extract{Key: keys, Val: capture(m, "val")})
	}
	return extracts
}

// CountRegions reports how many note regions content contains.
func CountRegions(content string) int {
	return len(noteRegex.FindAllStringIndex(content, -1))
}

// Strip removes every note region from content, leaving the trimmed payload
// where the region was. Content without regions comes back unchanged.
func Strip(content string) string {
	return noteRegex.ReplaceAllStringFunc(content, func(region string) string {
		m := noteRegex.FindStringSubmatch(region)
		if m == nil {
			return region
		}
		return capture(m, "val")
	})
}

// capture returns the named group's trimmed text, or "" when the group did
// not participate in the match.
func capture(m []string, name string) string {
	i := noteRegex.SubexpIndex(name)
	if i < 0 || i >= len(m) {
		return ""
	}
	return strings.TrimSpace(m[i])
}

// splitKey parses a key expression into its path: split on "|", trim each
// segment, drop empty segments, then reverse so the outermost grouping
// segment comes last.
func splitKey(key string) []string {
	var keys []string
	for _, part := range strings.Split(key, "|") {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}
