package session

import "testing"

func TestClassifyTable(t *testing.T) {
	cases := []struct {
		utterance string
		kind      Kind
		company   string
		section   string
	}{
		{"Research Tesla", KindResearch, "Tesla", ""},
		{"tell me about Acme Corp", KindResearch, "Acme Corp", ""},
		{"Can you find information on SpaceX?", KindResearch, "SpaceX", ""},
		{"look up Stripe", KindResearch, "Stripe", ""},
		{"Generate account plan", KindGeneratePlan, "", ""},
		{"create a plan please", KindGeneratePlan, "", ""},
		{"yes", KindConfirm, "", ""},
		{"Sure!", KindConfirm, "", ""},
		{"edit pain_points", KindEditSection, "", "pain_points"},
		{"edit the pain points section", KindEditSection, "", "pain_points"},
		{"update key stakeholders", KindEditSection, "", "key_stakeholders"},
		{"regenerate the value proposition", KindRegenerate, "", "value_proposition"},
		{"rewrite next steps with shorter timelines", KindRegenerate, "", "next_steps"},
		{"export the plan", KindExport, "", ""},
		{"download it", KindExport, "", ""},
		{"load Tesla", KindLoadPlan, "Tesla", ""},
		{"open acme", KindLoadPlan, "acme", ""},
		{"reset", KindReset, "", ""},
		{"start over", KindReset, "", ""},
		{"how does this work?", KindChat, "", ""},
		{"hello there", KindChat, "", ""},
	}

	for _, tc := range cases {
		got := Classify(tc.utterance)
		if got.Kind != tc.kind {
			t.Fatalf("Classify(%q).Kind = %v, want %v", tc.utterance, got.Kind, tc.kind)
		}
		if got.Company != tc.company {
			t.Fatalf("Classify(%q).Company = %q, want %q", tc.utterance, got.Company, tc.company)
		}
		if got.Section != tc.section {
			t.Fatalf("Classify(%q).Section = %q, want %q", tc.utterance, got.Section, tc.section)
		}
	}
}

func TestExtractCompanyPreservesCase(t *testing.T) {
	cases := map[string]string{
		"Research Tesla":                        "Tesla",
		"research tesla":                        "tesla",
		"Tell me about Tesla, Inc.":             "Tesla, Inc",
		"Could you please look up Acme Corp?":   "Acme Corp",
		"find information on General Electric":  "General Electric",
		"what do you know about Rivian":         "Rivian",
		"Please research research-agent-tools!": "research-agent-tools",
	}
	for in, want := range cases {
		if got := ExtractCompany(in); got != want {
			t.Fatalf("ExtractCompany(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractCompanyEmptyWhenOnlyKeywords(t *testing.T) {
	if got := ExtractCompany("research"); got != "" {
		t.Fatalf("expected empty company, got %q", got)
	}
}
