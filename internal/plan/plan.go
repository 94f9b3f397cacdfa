package plan

import (
	"fmt"
	"strings"
	"time"
)

// SchemaVersion is bumped on schema-incompatible changes, not on edits.
const SchemaVersion = "1"

// SectionNames is the fixed ordered section set of an account plan. Every
// plan carries exactly these sections; absent content is an empty string,
// never a missing key.
var SectionNames = []string{
	"company_overview",
	"key_stakeholders",
	"pain_points",
	"value_proposition",
	"engagement_strategy",
	"success_metrics",
	"next_steps",
}

// AccountPlan is the structured account-plan document. Its JSON form is the
// on-disk document format: {"plan": {...}, "created_at": ..., "version": ...}.
type AccountPlan struct {
	Sections  map[string]string `json:"plan"`
	CreatedAt time.Time         `json:"created_at,omitzero"`
	Version   string            `json:"version"`
}

// ValidationResult lists sections that violate the schema. Missing sections
// are a hard failure; incomplete (empty) sections are only flagged.
type ValidationResult struct {
	Missing    []string
	Incomplete []string
}

// Valid reports whether the plan has the full fixed section set.
func (r ValidationResult) Valid() bool {
	return len(r.Missing) == 0
}

// Complete reports whether every section has content.
func (r ValidationResult) Complete() bool {
	return r.Valid() && len(r.Incomplete) == 0
}

// NewEmpty returns a plan with every fixed section set to the empty string
// and created_at unset.
func NewEmpty() AccountPlan {
	sections := make(map[string]string, len(SectionNames))
	for _, name := range SectionNames {
		sections[name] = ""
	}
	return AccountPlan{
		Sections: sections,
		Version:  SchemaVersion,
	}
}

// Validate checks the plan against the fixed section set. Pure; no side
// effects.
func Validate(p AccountPlan) ValidationResult {
	var res ValidationResult
	for _, name := range SectionNames {
		content, ok := p.Sections[name]
		if !ok {
			res.Missing = append(res.Missing, name)
			continue
		}
		if strings.TrimSpace(content) == "" {
			res.Incomplete = append(res.Incomplete, name)
		}
	}
	return res
}

// IsSection reports whether name is one of the fixed section names.
func IsSection(name string) bool {
	for _, s := range SectionNames {
		if s == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the plan.
func (p AccountPlan) Clone() AccountPlan {
	sections := make(map[string]string, len(p.Sections))
	for k, v := range p.Sections {
		sections[k] = v
	}
	return AccountPlan{
		Sections:  sections,
		CreatedAt: p.CreatedAt,
		Version:   p.Version,
	}
}

// SetSection replaces the text of a single section.
func (p *AccountPlan) SetSection(name, text string) error {
	if !IsSection(name) {
		return fmt.Errorf("unknown section %q", name)
	}
	if p.Sections == nil {
		p.Sections = make(map[string]string, len(SectionNames))
	}
	p.Sections[name] = text
	return nil
}

// Title renders a section name as a display heading,
// e.g. "pain_points" -> "Pain Points".
func Title(section string) string {
	words := strings.Split(section, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Markdown renders the plan as a markdown document with one heading per
// section, in the fixed order.
func (p AccountPlan) Markdown() string {
	var b strings.Builder
	for _, name := range SectionNames {
		b.WriteString("### ")
		b.WriteString(Title(name))
		b.WriteString("\n")
		b.WriteString(p.Sections[name])
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
