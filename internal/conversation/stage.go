package conversation

import (
	"regexp"
	"strings"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// ============================================================
// Stage resolver — the conversation state machine
// ============================================================
//
// There is no stored state: the "machine" is a priority-ordered
// decision list recomputed from the caller-supplied history on every
// turn. First matching rule wins. Identical inputs always yield
// identical output.

// PromptTemplate selects the instruction handed to the generation
// service for this turn.
type PromptTemplate string

const (
	TemplateGreeting          PromptTemplate = "greeting"
	TemplateNoMatch           PromptTemplate = "no_match"
	TemplatePricingNoData     PromptTemplate = "pricing_no_data"
	TemplatePresentProjects   PromptTemplate = "present_projects"
	TemplatePresentPricing    PromptTemplate = "present_pricing"
	TemplatePresentTeam       PromptTemplate = "present_team"
	TemplateContactConfirmed  PromptTemplate = "contact_confirmed"
	TemplateContactDetails    PromptTemplate = "contact_details"
	TemplateAwaitConfirmation PromptTemplate = "await_confirmation"
	TemplateAskPermission     PromptTemplate = "ask_permission"
	TemplateAskProjectType    PromptTemplate = "ask_project_type"
	TemplateAskFeatures       PromptTemplate = "ask_features"
	TemplateAskBudgetTimeline PromptTemplate = "ask_budget_timeline"
	TemplateKeepDiscovery     PromptTemplate = "keep_discovery"
)

// Options tune the policies the two observed product variants disagreed
// on. Zero values fall back to defaults.
type Options struct {
	// DetailsThreshold is how many discovery signals must be collected
	// before the assistant asks permission to take contact details.
	DetailsThreshold int
	// GreetingMaxWords caps how long a first message can be and still
	// count as a bare greeting.
	GreetingMaxWords int
	// HistoryWindow bounds how far back the previous-assistant-turn
	// scan looks.
	HistoryWindow int
}

const (
	defaultDetailsThreshold = 2
	defaultGreetingMaxWords = 4
	defaultHistoryWindow    = 8
)

// Resolver derives the per-turn stage, prompt template and fetch
// decision. It is a pure function of its inputs and cannot fail.
type Resolver struct {
	opts Options
}

// NewResolver creates a resolver, applying defaults for unset options.
func NewResolver(opts Options) *Resolver {
	if opts.DetailsThreshold <= 0 {
		opts.DetailsThreshold = defaultDetailsThreshold
	}
	if opts.GreetingMaxWords <= 0 {
		opts.GreetingMaxWords = defaultGreetingMaxWords
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = defaultHistoryWindow
	}
	return &Resolver{opts: opts}
}

// Input carries everything the resolver needs for one turn.
type Input struct {
	History  []domain.Message
	Message  string
	Language domain.Language
	Intent   domain.Intent
	Service  domain.ServiceType
	Signals  domain.Signals

	// Fetch outcome. FetchAttempted is true once the orchestrator has
	// tried the content store, even if the call failed (failure is
	// treated as fetched-but-empty, never propagated here).
	FetchAttempted bool
	ProjectsFound  int
	HasPricingData bool
	HasTeamData    bool
}

// Resolution is the resolver's verdict for the turn.
type Resolution struct {
	NeedsContentFetch  bool
	Template           PromptTemplate
	Stage              domain.Stage
	UserAgreed         bool
	AskedForPermission bool
}

var (
	greetingRe = regexp.MustCompile(`(?i)^\s*(hi+|hey+|hello+|yo|good (morning|afternoon|evening)|salut|bonjour|bonsoir|coucou|مرحبا|مرحباً|أهلا|اهلا|أهلاً|السلام عليكم|صباح الخير|مساء الخير)\b`)

	// Loose secondary scan for rule 2: free-text requests often carry a
	// recognizable noun without matching any structured intent pattern.
	looseDataRe = regexp.MustCompile(`(?i)show|display|example|portfolio|projects?|built|made for|your work|services?|team|pricing|prices?|cost|montrez|voir|exemple|projets?|réalisations?|équipe|tarifs?|prix|مشاريع|أعمال|خدمات|فريق|أسعار|سعر`)

	affirmationRe = regexp.MustCompile(`(?i)^\s*(yes+|yeah|yep|sure|ok(ay)?|sounds good|of course|absolutely|definitely|let'?s (do it|go)|go ahead|please do|why not|oui|d'accord|bien sûr|volontiers|avec plaisir|allons[- ]y|نعم|أجل|اجل|طبعا|طبعاً|تمام|موافق|أكيد|اكيد|حسنا|حسناً)\b`)

	solicitationRe = regexp.MustCompile(`(?i)contact|email|phone|reach|connect|proposal|quote|coordonnées|contacter|joindre|téléphone|devis|proposition|تواصل|اتصال|بريد|هاتف|عرض`)

	askContactRe = regexp.MustCompile(`(?i)how (can|do) (i|we) (contact|reach)|contact (you|your team)|get in touch|reach (you|out)|talk to (someone|a human|your team)|comment vous (contacter|joindre)|prendre contact|entrer en contact|كيف (أتواصل|اتواصل)|التواصل معكم|أتصل بكم|اتصل بكم`)
)

// dataIntents are the intents that always warrant a content fetch.
var dataIntents = map[domain.Intent]struct{}{
	domain.IntentListAll:  {},
	domain.IntentFeatured: {},
	domain.IntentCategory: {},
	domain.IntentDetails:  {},
	domain.IntentSearch:   {},
	domain.IntentServices: {},
	domain.IntentExamples: {},
	domain.IntentPricing:  {},
	domain.IntentTeam:     {},
}

// NeedsContentFetch decides, before any I/O, whether this turn needs
// content-store data. The greeting guard suppresses fetching even when
// a loose keyword happens to overlap.
func (r *Resolver) NeedsContentFetch(history []domain.Message, message string, intent domain.Intent) bool {
	if r.isBareGreeting(history, message) {
		return false
	}
	if _, ok := dataIntents[intent]; ok {
		return true
	}
	return looseDataRe.MatchString(message)
}

// Resolve runs the priority decision list and returns the stage label,
// prompt template and agreement flags for the turn.
func (r *Resolver) Resolve(in Input) Resolution {
	needsFetch := r.NeedsContentFetch(in.History, in.Message, in.Intent)

	// Rule 1 — greeting guard: never dump a catalog in response to "hi".
	if r.isBareGreeting(in.History, in.Message) {
		return Resolution{Template: TemplateGreeting, Stage: domain.StageGreeting}
	}

	// Rules 3/4 — fetch outcome. A failed fetch was already mapped to
	// "attempted, nothing found" by the orchestrator.
	hasData := in.ProjectsFound > 0 || in.HasPricingData || in.HasTeamData
	if in.FetchAttempted && !hasData {
		if in.Intent == domain.IntentPricing {
			// Hard business rule: with no pricing data the generator
			// must never produce numbers, only offer to follow up.
			return Resolution{NeedsContentFetch: needsFetch, Template: TemplatePricingNoData, Stage: domain.StagePricingInfo}
		}
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateNoMatch, Stage: domain.StageDiscovery}
	}
	if in.FetchAttempted && hasData {
		switch in.Intent {
		case domain.IntentPricing:
			return Resolution{NeedsContentFetch: needsFetch, Template: TemplatePresentPricing, Stage: domain.StagePricingInfo}
		case domain.IntentTeam:
			return Resolution{NeedsContentFetch: needsFetch, Template: TemplatePresentTeam, Stage: domain.StageTeamInfo}
		default:
			return Resolution{NeedsContentFetch: needsFetch, Template: TemplatePresentProjects, Stage: domain.StageShowingProjects}
		}
	}

	// Rule 5 — contact agreement: the previous assistant turn solicited
	// contact details and the user just affirmed.
	prevSolicited := r.assistantSolicitedContact(in.History)
	affirmed := affirmationRe.MatchString(in.Message)
	if prevSolicited && affirmed {
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateContactConfirmed, Stage: domain.StageReadyForContact, UserAgreed: true}
	}

	// Rule 6 — the user explicitly asked how to get in touch, and we
	// know at least one thing about their project.
	if askContactRe.MatchString(in.Message) && in.Signals.Count() >= 1 {
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateContactDetails, Stage: domain.StageReadyForContact, UserAgreed: true}
	}

	// Permission was asked and not (yet) granted: hold the stage rather
	// than re-asking every turn.
	if prevSolicited && in.Signals.Count() >= r.opts.DetailsThreshold {
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateAwaitConfirmation, Stage: domain.StageAwaitingConfirmation}
	}

	// Rule 7 — enough details collected: summarize and ASK permission.
	// The contact form is never shown without an explicit affirmative.
	if in.Signals.Count() >= r.opts.DetailsThreshold {
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateAskPermission, Stage: domain.StageAskContactPermission, AskedForPermission: true}
	}

	// Rule 8 — progressive discovery: exactly one clarifying question
	// per turn, picked by which signal is still missing.
	switch {
	case !in.Signals.ProjectType:
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateAskProjectType, Stage: domain.StageDiscovery}
	case !in.Signals.Features:
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateAskFeatures, Stage: domain.StageDiscovery}
	case !in.Signals.Budget || !in.Signals.Timeline:
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateAskBudgetTimeline, Stage: domain.StageDiscovery}
	default:
		return Resolution{NeedsContentFetch: needsFetch, Template: TemplateKeepDiscovery, Stage: domain.StageDiscovery}
	}
}

// isBareGreeting is true only for a short greeting opening the
// conversation.
func (r *Resolver) isBareGreeting(history []domain.Message, message string) bool {
	if len(history) != 0 {
		return false
	}
	trimmed := strings.TrimSpace(message)
	if !greetingRe.MatchString(trimmed) {
		return false
	}
	return len(strings.Fields(trimmed)) <= r.opts.GreetingMaxWords
}

// assistantSolicitedContact scans the recent window for the last
// assistant turn and checks it for contact-solicitation language.
func (r *Resolver) assistantSolicitedContact(history []domain.Message) bool {
	start := len(history) - r.opts.HistoryWindow
	if start < 0 {
		start = 0
	}
	for i := len(history) - 1; i >= start; i-- {
		if history[i].Role != "assistant" {
			continue
		}
		return solicitationRe.MatchString(history[i].Content)
	}
	return false
}
