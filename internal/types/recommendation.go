package types

// Recommendation sources
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// Importance tiers for skill gaps
const (
	ImportanceCritical  = "critical"
	ImportanceImportant = "important"
	ImportanceHelpful   = "helpful"
)

// Priorities for action items
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Action item categories
const (
	CategoryAcademic      = "academic"
	CategoryExperience    = "experience"
	CategoryCertification = "certification"
	CategoryNetworking    = "networking"
	CategoryExploration   = "exploration"
)

// Relevance tiers for course suggestions
const (
	RelevanceHigh   = "high"
	RelevanceMedium = "medium"
	RelevanceLow    = "low"
)

// PathwayStep is one ordered step toward a career
type PathwayStep struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// SkillGap is a skill the student should build for a career
type SkillGap struct {
	Skill       string `json:"skill"`
	Importance  string `json:"importance"`
	Acquisition string `json:"acquisition"`
}

// ActionItem is a concrete next step
type ActionItem struct {
	Priority    string `json:"priority"`
	Timeline    string `json:"timeline"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// CourseSuggestion is an academic course tagged by relevance to top careers
type CourseSuggestion struct {
	Course    string   `json:"course"`
	Subject   string   `json:"subject"`
	Relevance string   `json:"relevance"`
	CareerIDs []string `json:"career_ids"`
	Reason    string   `json:"reason"`
}

// Recommendation is the narrative guidance for one top career
type Recommendation struct {
	CareerID    string             `json:"career_id"`
	CareerTitle string             `json:"career_title"`
	Sector      Sector             `json:"sector"`
	Pathway     []PathwayStep      `json:"pathway"`
	Timeline    string             `json:"timeline"`
	SkillGaps   []SkillGap         `json:"skill_gaps"`
	ActionItems []ActionItem       `json:"action_items"`
	Courses     []CourseSuggestion `json:"courses"`
	Source      string             `json:"source"`
}

// RecommendationSet is the augmenter output for a whole submission
type RecommendationSet struct {
	Recommendations []Recommendation   `json:"recommendations"`
	CoursePlan      []CourseSuggestion `json:"course_plan"`
}
