package research

import (
	"fmt"
	"strings"
)

// regenerateContextLimit caps how much research context rides along with a
// single-section regeneration request.
const regenerateContextLimit = 1000

// ResearchPrompt builds the company research prompt.
func ResearchPrompt(company string) string {
	return fmt.Sprintf(`You are a professional company research analyst. Conduct comprehensive research on %s and provide a detailed analysis.

Please structure your research report with the following sections:

1. **Company Overview & Business Model**
   - What does the company do?
   - What industry are they in?
   - What's their market position?

2. **Recent News & Developments**
   - What are the latest developments (last 6-12 months)?
   - Any major announcements or changes?

3. **Financial Performance**
   - Revenue trends
   - Profitability
   - Market cap or valuation (if public)

4. **Products & Services**
   - Main product lines
   - Key offerings
   - Innovation areas

5. **Key Competitors & Market Position**
   - Who are their main competitors?
   - What's their competitive advantage?
   - Market share position

6. **Leadership Team**
   - CEO and key executives
   - Notable board members
   - Leadership changes

7. **Challenges & Pain Points**
   - Current business challenges
   - Industry headwinds
   - Operational issues

8. **Growth Initiatives & Strategic Priorities**
   - Expansion plans
   - New market entries
   - Strategic partnerships

Provide specific, factual information based on your knowledge. If certain information is not available in your training data, clearly state that recent data may need to be verified. Be professional, detailed, and actionable.`, company)
}

// PlanPrompt builds the account-plan generation prompt. The model is asked
// for strict JSON with exactly the fixed section keys.
func PlanPrompt(findings string) string {
	return fmt.Sprintf(`Based on the following research data, generate a comprehensive account plan in JSON format.

Research Data:
%s

Generate ONLY valid JSON with these exact keys (no additional text, explanation, or markdown):

{
  "company_overview": "Brief 2-3 sentence overview of the company, their industry, and current market position",
  "key_stakeholders": "List of decision makers, influencers, and key contacts with their roles and relevance. Include names if available from research.",
  "pain_points": "3-5 major business challenges or pain points the company is facing based on the research",
  "value_proposition": "How we can help address their pain points and add value to their business. Be specific and actionable.",
  "engagement_strategy": "Recommended approach for engaging with this account, including timing, channels, and key messaging",
  "success_metrics": "Key performance indicators and metrics to track success of the engagement. Include specific, measurable goals.",
  "next_steps": "Specific action items with timeline for next 30-60-90 days. Be concrete and actionable."
}

CRITICAL: Respond with ONLY the JSON object. No markdown code blocks, no explanations, just pure JSON.`, findings)
}

// RegeneratePrompt builds the prompt for rewriting a single plan section.
func RegeneratePrompt(section, current, instruction, researchContext string) string {
	truncated := researchContext
	if runes := []rune(truncated); len(runes) > regenerateContextLimit {
		truncated = string(runes[:regenerateContextLimit]) + "..."
	}
	return fmt.Sprintf(`Update this section of an account plan.

Section Name: %s
Current Content: %s

User's Instruction: %s

Research Context: %s

Provide ONLY the updated section content, no formatting or explanation.`, section, current, instruction, truncated)
}

// ChatPrompt wraps a general conversational message with the assistant's
// role preamble.
func ChatPrompt(message string) string {
	system := strings.Join([]string{
		"You are a helpful company research assistant. Your role is to:",
		"1. Help users research companies",
		"2. Generate comprehensive account plans",
		"3. Answer questions about the research process",
		"4. Guide users through using the system",
		"",
		"Be friendly, professional, and concise.",
	}, "\n")
	return fmt.Sprintf("%s\n\nUser: %s\n\nAssistant:", system, message)
}
