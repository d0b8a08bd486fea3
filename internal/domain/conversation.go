package domain

// ============================================================
// Conversation model — languages, intents, services, stages
// ============================================================

// Language is the detected natural language of a message.
type Language string

const (
	LangEnglish Language = "en"
	LangFrench  Language = "fr"
	LangArabic  Language = "ar"
)

// Intent classifies what the user is asking for. At most one intent is
// attached per message; the extractor's priority order decides ties.
type Intent string

const (
	IntentListAll  Intent = "listAll"
	IntentFeatured Intent = "featured"
	IntentCategory Intent = "category"
	IntentDetails  Intent = "details"
	IntentSearch   Intent = "search"
	IntentServices Intent = "services"
	IntentPricing  Intent = "pricing"
	IntentTeam     Intent = "team"
	IntentExamples Intent = "examples"
	IntentGeneral  Intent = "general"
)

// ServiceType is the business offering a message references, independent
// of the intent. Empty string means no service was detected.
type ServiceType string

const (
	ServiceNone      ServiceType = ""
	ServiceWebsites  ServiceType = "Professional Websites"
	ServiceMobile    ServiceType = "Mobile App Development"
	ServiceSoftware  ServiceType = "Custom Software"
	ServiceEcommerce ServiceType = "E-commerce"
	ServiceAI        ServiceType = "Artificial Intelligence & Automation"
	ServiceDesign    ServiceType = "UI/UX Design"
)

// Stage labels where the conversation sits in the discovery → contact
// funnel. It is derived fresh every turn and never stored server-side;
// the caller-resent history is the source of truth.
type Stage string

const (
	StageGreeting             Stage = "greeting"
	StageDiscovery            Stage = "discovery"
	StageShowingProjects      Stage = "showing_projects"
	StagePricingInfo          Stage = "pricing_info"
	StageTeamInfo             Stage = "team_info"
	StageAskContactPermission Stage = "ask_for_contact_permission"
	StageAwaitingConfirmation Stage = "awaiting_confirmation"
	StageReadyForContact      Stage = "ready_for_contact"
)

// Signals are sticky booleans derived from scanning the whole history:
// once a past message matched, the signal stays true for the rest of
// the conversation.
type Signals struct {
	ProjectType bool
	Features    bool
	Budget      bool
	Timeline    bool
	Goals       bool
}

// Count returns how many discovery details have been collected.
func (s Signals) Count() int {
	n := 0
	for _, b := range []bool{s.ProjectType, s.Features, s.Budget, s.Timeline, s.Goals} {
		if b {
			n++
		}
	}
	return n
}
