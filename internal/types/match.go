package types

// DemandTier describes local labor demand for a career
type DemandTier string

// Demand tiers
const (
	DemandHigh     DemandTier = "high"
	DemandModerate DemandTier = "moderate"
	DemandLow      DemandTier = "low"
	DemandUnknown  DemandTier = "unknown"
)

// CareerMatch is one ranked career for a student
type CareerMatch struct {
	CareerID         string     `json:"career_id"`
	Title            string     `json:"title"`
	Sector           Sector     `json:"sector"`
	MatchScore       int        `json:"match_score"`
	ReasoningFactors []string   `json:"reasoning_factors"`
	LocalDemand      DemandTier `json:"local_demand"`
	// EstimatedLocalSalary is zero when no local estimate is available.
	EstimatedLocalSalary int `json:"estimated_local_salary,omitempty"`
	// Explicit marks a career the student named directly.
	Explicit bool `json:"explicit,omitempty"`
}
