package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dikshacr123/research-agent/internal/logger"
	"github.com/dikshacr123/research-agent/internal/persist"
	"github.com/dikshacr123/research-agent/internal/plan"
	"github.com/dikshacr123/research-agent/internal/research"
)

var (
	// ErrNoResearchData means plan generation was requested before any
	// research.
	ErrNoResearchData = errors.New("no research data available")

	// ErrNoPlanData means an edit/regenerate/export was requested before a
	// plan exists.
	ErrNoPlanData = errors.New("no account plan available")
)

// DocumentStore is the persistence surface the controller needs.
type DocumentStore interface {
	LoadDocument(key string) (plan.AccountPlan, error)
	SaveDocument(key string, p plan.AccountPlan) error
	ListCompanies() ([]string, error)
	AppendHistory(e persist.Entry) error
	WriteSnapshot(snap persist.Snapshot) (string, error)
}

// ResearchStore caches research records across restarts. Optional; a nil
// cache disables crash recovery but nothing else.
type ResearchStore interface {
	Put(rec research.Findings) error
	Latest(company string) (*research.Findings, error)
}

// Controller drives one conversational session. It owns its State
// exclusively and processes one utterance to completion before the next;
// there is no internal concurrency.
type Controller struct {
	provider research.Provider
	store    DocumentStore
	cache    ResearchStore
	state    State
}

// Reply is what a processed utterance produces for the presentation layer.
type Reply struct {
	Text       string
	Plan       *plan.AccountPlan // snapshot, set when the plan changed
	ExportPath string            // set on export
	History    []persist.Entry   // entries appended to the transcript this turn
}

// New creates a session controller. cache may be nil.
func New(provider research.Provider, store DocumentStore, cache ResearchStore) *Controller {
	return &Controller{
		provider: provider,
		store:    store,
		cache:    cache,
		state:    NewState(),
	}
}

// State returns a copy of the current session state. The plan and research
// pointers are deep-copied so callers cannot mutate session internals.
func (c *Controller) State() State {
	snapshot := c.state
	if c.state.Plan != nil {
		p := c.state.Plan.Clone()
		snapshot.Plan = &p
	}
	if c.state.Research != nil {
		r := *c.state.Research
		snapshot.Research = &r
	}
	return snapshot
}

// Submit processes one utterance and returns the assistant's reply. Errors
// never propagate: every failure becomes a user-facing message and leaves
// the session state unchanged (persistence failures after a successful
// mutation are the one spec'd exception: the in-memory change survives and
// the failure is reported).
func (c *Controller) Submit(ctx context.Context, utterance string) Reply {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return Reply{Text: "Say something like \"Research Tesla\" to get started."}
	}

	// A pending section edit consumes the next utterance wholesale.
	if c.state.Phase == PhaseEditing {
		asked := c.appendHistory("user", text, "edit")
		reply := c.commitEdit(text)
		answered := c.appendHistory("assistant", reply.Text, "edit")
		reply.History = []persist.Entry{asked, answered}
		return reply
	}

	intent := Classify(text)
	if intent.Kind == KindConfirm && c.state.Pending != nil {
		intent = *c.state.Pending
	}
	// Any resolved intent invalidates an outstanding confirmation.
	c.state.Pending = nil
	if c.state.Phase == PhaseAwaitingConfirmation {
		c.state.Phase = PhaseIdle
	}

	asked := c.appendHistory("user", text, intent.Kind.String())

	var reply Reply
	switch intent.Kind {
	case KindResearch:
		reply = c.handleResearch(ctx, intent)
	case KindGeneratePlan:
		reply = c.handleGenerate(ctx)
	case KindEditSection:
		reply = c.handleEdit(intent)
	case KindRegenerate:
		reply = c.handleRegenerate(ctx, intent)
	case KindExport:
		reply = c.handleExport()
	case KindLoadPlan:
		reply = c.handleLoad(intent)
	case KindReset:
		reply = c.handleReset()
	default:
		// KindConfirm with nothing pending falls through to chat.
		reply = c.handleChat(ctx, text)
	}

	answered := c.appendHistory("assistant", reply.Text, intent.Kind.String())
	reply.History = []persist.Entry{asked, answered}
	return reply
}

func (c *Controller) handleResearch(ctx context.Context, intent Intent) Reply {
	company := strings.TrimSpace(intent.Company)
	if company == "" {
		return Reply{Text: "Which company should I research?"}
	}

	findings, err := c.provider.Search(ctx, company)
	if err != nil {
		return Reply{Text: c.messageFor(err)}
	}

	c.state.Research = &findings
	c.state.Company = company
	c.state.Phase = PhaseAwaitingConfirmation
	c.state.Pending = &Intent{Kind: KindGeneratePlan}

	if c.cache != nil {
		if err := c.cache.Put(findings); err != nil {
			logger.Warn("cache research for %s: %v", company, err)
		}
	}

	return Reply{Text: fmt.Sprintf(
		"%s\n\nWould you like me to generate an account plan for %s? (yes/no)",
		findings.Content, company)}
}

func (c *Controller) handleGenerate(ctx context.Context) Reply {
	if c.state.Research == nil {
		return Reply{Text: c.messageFor(ErrNoResearchData)}
	}

	raw, err := c.provider.Complete(ctx, research.PlanPrompt(c.state.Research.Content), "")
	if err != nil {
		return Reply{Text: c.messageFor(err)}
	}

	sections := plan.ParseSections(raw)
	newPlan := plan.NewEmpty()
	for name, content := range sections {
		newPlan.Sections[name] = content
	}

	result := plan.Validate(newPlan)
	if len(result.Incomplete) == len(plan.SectionNames) {
		// Nothing in the output mapped onto any section.
		return Reply{Text: c.messageFor(research.ErrEmptyResult)}
	}

	newPlan.CreatedAt = time.Now()
	if c.state.Plan != nil && !c.state.Plan.CreatedAt.IsZero() {
		newPlan.CreatedAt = c.state.Plan.CreatedAt
	}

	c.state.Plan = &newPlan
	c.state.Phase = PhasePlanReady

	text := fmt.Sprintf("Here is the account plan for %s:\n\n%s",
		c.state.Company, newPlan.Markdown())
	if len(result.Incomplete) > 0 {
		text += fmt.Sprintf("\nSections still needing content: %s.",
			strings.Join(result.Incomplete, ", "))
	}
	if err := c.persistPlan(); err != nil {
		text += "\n\n" + c.messageFor(err)
	}

	return Reply{Text: text, Plan: c.planSnapshot()}
}

func (c *Controller) handleEdit(intent Intent) Reply {
	if c.state.Plan == nil {
		return Reply{Text: c.messageFor(ErrNoPlanData)}
	}
	if intent.Section == "" {
		return Reply{Text: "Which section? One of: " + strings.Join(plan.SectionNames, ", ") + "."}
	}

	c.state.Phase = PhaseEditing
	c.state.Editing = intent.Section

	return Reply{Text: fmt.Sprintf(
		"Current %s:\n%s\n\nSend the new text for this section, or \"cancel\" to keep it.",
		plan.Title(intent.Section), c.state.Plan.Sections[intent.Section])}
}

// commitEdit finishes a pending section edit with the utterance as the new
// text.
func (c *Controller) commitEdit(text string) Reply {
	section := c.state.Editing
	c.state.Phase = PhasePlanReady
	c.state.Editing = ""

	if strings.EqualFold(strings.TrimSpace(text), "cancel") {
		return Reply{Text: fmt.Sprintf("Left %s unchanged.", plan.Title(section))}
	}

	updated, err := c.SaveSection(section, text)
	if err != nil && !errors.Is(err, persist.ErrPersistence) {
		return Reply{Text: c.messageFor(err)}
	}

	reply := Reply{
		Text: fmt.Sprintf("Updated %s:\n%s", plan.Title(section), text),
		Plan: &updated,
	}
	if err != nil {
		reply.Text += "\n\n" + c.messageFor(err)
	}
	return reply
}

// SaveSection replaces one section's text, revalidates, and persists. This
// is the session-facing edit API; on a persistence failure the in-memory
// plan still reflects the change and the error is returned for reporting.
func (c *Controller) SaveSection(name, text string) (plan.AccountPlan, error) {
	if c.state.Plan == nil {
		return plan.AccountPlan{}, ErrNoPlanData
	}

	updated := c.state.Plan.Clone()
	if err := updated.SetSection(name, text); err != nil {
		return plan.AccountPlan{}, err
	}
	if result := plan.Validate(updated); !result.Valid() {
		return plan.AccountPlan{}, fmt.Errorf("plan invalid after edit: missing %s",
			strings.Join(result.Missing, ", "))
	}

	c.state.Plan = &updated
	if c.state.Phase != PhaseEditing {
		c.state.Phase = PhasePlanReady
	}

	err := c.persistPlan()
	return updated.Clone(), err
}

func (c *Controller) handleRegenerate(ctx context.Context, intent Intent) Reply {
	if c.state.Plan == nil {
		return Reply{Text: c.messageFor(ErrNoPlanData)}
	}
	if intent.Section == "" {
		return Reply{Text: "Which section should I regenerate? One of: " +
			strings.Join(plan.SectionNames, ", ") + "."}
	}

	researchContext := ""
	if c.state.Research != nil {
		researchContext = c.state.Research.Content
	}
	prompt := research.RegeneratePrompt(
		intent.Section, c.state.Plan.Sections[intent.Section], intent.Raw, researchContext)

	content, err := c.provider.Complete(ctx, prompt, "")
	if err != nil {
		return Reply{Text: c.messageFor(err)}
	}

	updated := c.state.Plan.Clone()
	if err := updated.SetSection(intent.Section, strings.TrimSpace(content)); err != nil {
		return Reply{Text: c.messageFor(err)}
	}
	c.state.Plan = &updated
	c.state.Phase = PhasePlanReady

	text := fmt.Sprintf("Regenerated %s:\n%s", plan.Title(intent.Section), strings.TrimSpace(content))
	if err := c.persistPlan(); err != nil {
		text += "\n\n" + c.messageFor(err)
	}

	return Reply{Text: text, Plan: c.planSnapshot()}
}

func (c *Controller) handleExport() Reply {
	snap, path, err := c.ExportPlan()
	if err != nil {
		return Reply{Text: c.messageFor(err)}
	}
	return Reply{
		Text:       fmt.Sprintf("Exported the account plan to %s (generated %s).", path, snap.Timestamp.Format(time.RFC3339)),
		ExportPath: path,
	}
}

// ExportPlan writes a snapshot of the current plan and returns it with the
// file path. No file is written when no plan exists.
func (c *Controller) ExportPlan() (persist.Snapshot, string, error) {
	if c.state.Plan == nil {
		return persist.Snapshot{}, "", ErrNoPlanData
	}
	snap := persist.NewSnapshot(*c.state.Plan)
	path, err := c.store.WriteSnapshot(snap)
	if err != nil {
		return persist.Snapshot{}, "", err
	}
	return snap, path, nil
}

func (c *Controller) handleLoad(intent Intent) Reply {
	company := strings.TrimSpace(intent.Company)
	if company == "" {
		return Reply{Text: "Which saved plan should I open?"}
	}

	loaded, err := c.store.LoadDocument(persist.Key(company))
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			return Reply{Text: c.noSuchPlanMessage(company)}
		}
		return Reply{Text: c.messageFor(err)}
	}

	c.state.Plan = &loaded
	c.state.Company = company
	c.state.Phase = PhasePlanReady
	if c.cache != nil {
		if rec, err := c.cache.Latest(company); err == nil && rec != nil {
			c.state.Research = rec
		}
	}

	return Reply{
		Text: fmt.Sprintf("Loaded the saved plan for %s:\n\n%s", company, loaded.Markdown()),
		Plan: c.planSnapshot(),
	}
}

func (c *Controller) handleReset() Reply {
	c.state = NewState()
	return Reply{Text: "Session cleared. Saved plans on disk are untouched."}
}

func (c *Controller) handleChat(ctx context.Context, text string) Reply {
	content, err := c.provider.Complete(ctx, research.ChatPrompt(text), "")
	if err != nil {
		return Reply{Text: c.messageFor(err)}
	}
	return Reply{Text: content}
}

// persistPlan saves the current plan under the session's company key.
func (c *Controller) persistPlan() error {
	key := persist.Key(c.state.Company)
	if key == "" {
		key = "account_plan"
	}
	return c.store.SaveDocument(key, *c.state.Plan)
}

func (c *Controller) planSnapshot() *plan.AccountPlan {
	if c.state.Plan == nil {
		return nil
	}
	p := c.state.Plan.Clone()
	return &p
}

// appendHistory records one transcript entry and returns it so the reply can
// carry the turn's history. A store failure is logged, not surfaced.
func (c *Controller) appendHistory(role, content, tag string) persist.Entry {
	entry := persist.Entry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Type:      tag,
	}
	if err := c.store.AppendHistory(entry); err != nil {
		logger.Warn("append history: %v", err)
	}
	return entry
}

func (c *Controller) noSuchPlanMessage(company string) string {
	msg := fmt.Sprintf("I don't have a saved plan for %s.", company)
	if keys, err := c.store.ListCompanies(); err == nil && len(keys) > 0 {
		msg += " Saved plans: " + strings.Join(keys, ", ") + "."
	}
	return msg
}

// messageFor converts a capability or store failure into a user-facing
// response. Nothing propagates past the controller.
func (c *Controller) messageFor(err error) string {
	switch {
	case errors.Is(err, research.ErrBackendUnavailable):
		return fmt.Sprintf("The research backend is unavailable (%v). Check your API key and try again.", err)
	case errors.Is(err, research.ErrEmptyResult):
		return "The backend returned no usable content. Try rephrasing your request."
	case errors.Is(err, ErrNoResearchData):
		return "I don't have research for a company yet. Ask me to research one first, e.g. \"Research Tesla\"."
	case errors.Is(err, ErrNoPlanData):
		return "There's no account plan yet. Research a company and generate a plan first."
	case errors.Is(err, persist.ErrNotFound):
		return "I couldn't find that document."
	case errors.Is(err, persist.ErrPersistence):
		return fmt.Sprintf("I couldn't write to local storage (%v). Your changes are kept in memory; try again.", err)
	}
	return fmt.Sprintf("Something went wrong: %v", err)
}
