package session

import (
	"strings"

	"github.com/dikshacr123/research-agent/internal/plan"
)

// Kind is the classified intent of an utterance.
type Kind int

const (
	KindChat Kind = iota
	KindResearch
	KindGeneratePlan
	KindEditSection
	KindRegenerate
	KindExport
	KindConfirm
	KindLoadPlan
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindResearch:
		return "research"
	case KindGeneratePlan:
		return "plan"
	case KindEditSection:
		return "edit"
	case KindRegenerate:
		return "regenerate"
	case KindExport:
		return "export"
	case KindConfirm:
		return "confirm"
	case KindLoadPlan:
		return "load"
	case KindReset:
		return "reset"
	}
	return "chat"
}

// Intent is a classified utterance. Classification is keyword based and
// deliberately tolerant of free-form phrasing; it never errors, falling back
// to KindChat.
type Intent struct {
	Kind    Kind
	Company string // KindResearch, KindLoadPlan
	Section string // KindEditSection, KindRegenerate
	Raw     string
}

var confirmWords = map[string]bool{
	"yes": true, "y": true, "yeah": true, "yep": true,
	"ok": true, "okay": true, "sure": true, "go ahead": true, "do it": true,
}

var resetWords = map[string]bool{
	"reset": true, "start over": true, "clear": true,
	"clear history": true, "new session": true,
}

var researchPhrases = []string{
	"research", "tell me about", "find information on",
	"find information about", "find information", "look up", "search for",
	"what do you know about",
}

// Classify maps an utterance onto an intent. Pure function; the state
// machine applies its own preconditions separately.
func Classify(utterance string) Intent {
	raw := strings.TrimSpace(utterance)
	lower := strings.ToLower(raw)
	normalized := strings.Trim(lower, " ?!.")

	if confirmWords[normalized] {
		return Intent{Kind: KindConfirm, Raw: raw}
	}
	if resetWords[normalized] {
		return Intent{Kind: KindReset, Raw: raw}
	}

	if strings.Contains(lower, "export") || strings.Contains(lower, "download") {
		return Intent{Kind: KindExport, Raw: raw}
	}

	section := matchSection(lower)

	if containsAny(lower, "regenerate", "rewrite", "redo") {
		return Intent{Kind: KindRegenerate, Section: section, Raw: raw}
	}
	if strings.HasPrefix(lower, "edit") || strings.Contains(lower, " edit ") {
		return Intent{Kind: KindEditSection, Section: section, Raw: raw}
	}
	if section != "" && containsAny(lower, "change", "update", "modify", "replace") {
		return Intent{Kind: KindEditSection, Section: section, Raw: raw}
	}

	if strings.Contains(lower, "plan") &&
		containsAny(lower, "generate", "create", "make", "build", "account plan") {
		return Intent{Kind: KindGeneratePlan, Raw: raw}
	}

	for _, prefix := range []string{"load ", "open "} {
		if strings.HasPrefix(lower, prefix) {
			return Intent{Kind: KindLoadPlan, Company: strings.TrimSpace(raw[len(prefix):]), Raw: raw}
		}
	}

	for _, phrase := range researchPhrases {
		if strings.Contains(lower, phrase) {
			return Intent{Kind: KindResearch, Company: ExtractCompany(raw), Raw: raw}
		}
	}

	return Intent{Kind: KindChat, Raw: raw}
}

// leadPhrases are stripped off the front of a research utterance, repeatedly,
// until what remains is the company name. Stripping from the front preserves
// the casing of the name itself.
var leadPhrases = []string{
	"can you", "could you", "would you", "please",
	"what do you know about",
	"find information on", "find information about", "find information",
	"tell me about", "look up", "search for", "research",
	"about", "for", "on",
}

// ExtractCompany pulls a company name out of a research utterance.
func ExtractCompany(utterance string) string {
	rest := strings.TrimSpace(utterance)
	for {
		lower := strings.ToLower(rest)
		stripped := false
		for _, phrase := range leadPhrases {
			if lower == phrase {
				return ""
			}
			if strings.HasPrefix(lower, phrase+" ") {
				rest = strings.TrimSpace(rest[len(phrase)+1:])
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Trim(rest, " ?!.")
}

// matchSection finds the first fixed section named in the utterance,
// accepting spaced or underscored forms.
func matchSection(lower string) string {
	for _, name := range plan.SectionNames {
		if strings.Contains(lower, name) ||
			strings.Contains(lower, strings.ReplaceAll(name, "_", " ")) {
			return name
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
