package types

// Sector is a coarse career grouping
type Sector string

// Career sectors
const (
	SectorHealthcare     Sector = "healthcare"
	SectorInfrastructure Sector = "infrastructure"
	SectorTechnology     Sector = "technology"
	SectorCreative       Sector = "creative"
	SectorBusiness       Sector = "business"
	SectorPublicService  Sector = "public-service"
	SectorEducation      Sector = "education"
)

// Sectors lists every sector in a fixed order.
func Sectors() []Sector {
	return []Sector{
		SectorHealthcare,
		SectorInfrastructure,
		SectorTechnology,
		SectorCreative,
		SectorBusiness,
		SectorPublicService,
		SectorEducation,
	}
}

// Education tiers, lowest first
const (
	EducationHighSchool  = "high_school"
	EducationCertificate = "certificate"
	EducationAssociate   = "associate"
	EducationBachelor    = "bachelor"
	EducationMaster      = "master"
	EducationDoctorate   = "doctorate"
	EducationUndecided   = "undecided"
)

// educationRank maps education tiers to numeric ranks for comparison
var educationRank = map[string]int{
	EducationHighSchool:  0,
	EducationCertificate: 1,
	EducationAssociate:   2,
	EducationBachelor:    3,
	EducationMaster:      4,
	EducationDoctorate:   5,
}

// EducationRank returns the rank of an education tier and whether it is known.
func EducationRank(tier string) (int, bool) {
	r, ok := educationRank[tier]
	return r, ok
}

// Career is an immutable catalog entry
type Career struct {
	ID                string   `json:"id" validate:"required"`
	Title             string   `json:"title" validate:"required"`
	Sector            Sector   `json:"sector" validate:"required,oneof=healthcare infrastructure technology creative business public-service education"`
	RequiredEducation string   `json:"required_education" validate:"required,oneof=high_school certificate associate bachelor master doctorate"`
	AverageSalary     int      `json:"average_salary" validate:"gte=0"`
	Certifications    []string `json:"certifications,omitempty"`
	GrowthOutlook     string   `json:"growth_outlook" validate:"required,oneof=high moderate low"`
	Keywords          []string `json:"keywords" validate:"required,min=1"`
	Traits            []string `json:"traits,omitempty"`
	Aliases           []string `json:"aliases,omitempty"`
	MonthsToEntry     int      `json:"months_to_entry" validate:"gte=0"`
	WorkEnvironments  []string `json:"work_environments,omitempty"`
}
