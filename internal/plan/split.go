package plan

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencePattern   = regexp.MustCompile("```(?:json)?")
	headingTrimmer = regexp.MustCompile(`^[#*\s\d.):-]+|[*:\s]+$`)
	nonWordRun     = regexp.MustCompile(`[^a-z0-9]+`)
)

// ParseSections maps raw model output onto the fixed section set. The model
// is asked for strict JSON, so that is tried first (tolerating markdown code
// fences); free-form text falls back to heading matching via SplitSections.
// The result always contains exactly the fixed section keys.
func ParseSections(raw string) map[string]string {
	if sections, err := ExtractJSON(raw); err == nil {
		out := emptySections()
		for key, value := range sections {
			name := canonicalSection(key)
			if name != "" {
				out[name] = strings.TrimSpace(value)
			}
		}
		return out
	}
	return SplitSections(raw)
}

// ExtractJSON parses a JSON object of section name -> text from raw model
// output, stripping markdown code fences and, failing that, scanning for the
// outermost brace window.
func ExtractJSON(raw string) (map[string]string, error) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	sections := make(map[string]string)
	err := json.Unmarshal([]byte(cleaned), &sections)
	if err == nil {
		return sections, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end > start {
		window := cleaned[start : end+1]
		if jerr := json.Unmarshal([]byte(window), &sections); jerr == nil {
			return sections, nil
		}
	}
	return nil, err
}

// SplitSections maps free-form text onto the fixed sections by deterministic
// heading match. Lines under a recognized heading belong to that section;
// text with no preceding recognized heading lands in next_steps.
func SplitSections(raw string) map[string]string {
	out := emptySections()
	buckets := make(map[string][]string)

	current := ""
	for _, line := range strings.Split(raw, "\n") {
		if name := matchHeading(line); name != "" {
			current = name
			continue
		}
		buckets[current] = append(buckets[current], line)
	}

	for _, name := range SectionNames {
		out[name] = strings.TrimSpace(strings.Join(buckets[name], "\n"))
	}
	if orphan := strings.TrimSpace(strings.Join(buckets[""], "\n")); orphan != "" {
		if out["next_steps"] == "" {
			out["next_steps"] = orphan
		} else {
			out["next_steps"] = orphan + "\n" + out["next_steps"]
		}
	}
	return out
}

// matchHeading reports the section a line introduces, or "" when the line is
// not a recognized heading. Tolerates markdown heading markers, numbering,
// bold markers, and either spaced or underscored section names.
func matchHeading(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 64 {
		return ""
	}
	stripped := headingTrimmer.ReplaceAllString(strings.ToLower(trimmed), "")
	return canonicalSection(stripped)
}

// canonicalSection normalizes a candidate name and returns the matching fixed
// section name, or "".
func canonicalSection(s string) string {
	normalized := strings.Trim(nonWordRun.ReplaceAllString(strings.ToLower(s), "_"), "_")
	if IsSection(normalized) {
		return normalized
	}
	return ""
}

func emptySections() map[string]string {
	sections := make(map[string]string, len(SectionNames))
	for _, name := range SectionNames {
		sections[name] = ""
	}
	return sections
}
