package recommend

import "github.com/jonathan/career-compass/internal/types"

// skillEntry is one fallback skill gap. Covers lists the assessment skill
// values that mean the student already has it.
type skillEntry struct {
	Skill       string
	Importance  string
	Acquisition string
	Covers      []string
}

// actionEntry is one fallback action item. When is a timeline key resolved
// against the student's grade.
type actionEntry struct {
	Priority    string
	When        string
	Category    string
	Description string
}

// courseEntry is one fallback course. Subject matches an academic
// performance row.
type courseEntry struct {
	Course  string
	Subject string
}

// sectorLibrary holds fallback content that belongs to exactly one sector.
// Nothing in one sector's library may name tools, credentials, or
// terminology from another.
type sectorLibrary struct {
	Skills  []skillEntry
	Actions []actionEntry
	Courses []courseEntry
}

// Timeline keys for action items
const (
	whenNow      = "now"
	whenSummer   = "summer"
	whenSchool   = "school"
	whenPostHigh = "post_high"
)

var libraries = map[types.Sector]sectorLibrary{
	types.SectorHealthcare: {
		Skills: []skillEntry{
			{"Human anatomy and physiology", types.ImportanceCritical, "Take biology and anatomy classes and review with flashcards", nil},
			{"Patient communication", types.ImportanceCritical, "Volunteer at a hospital, clinic, or care home", []string{"communication"}},
			{"Medical terminology", types.ImportanceImportant, "Complete a free online medical terminology course", nil},
			{"Basic life support and CPR", types.ImportanceImportant, "Earn a CPR certification through a local training center", nil},
			{"Compassionate care", types.ImportanceHelpful, "Help care for family members or volunteer with seniors", []string{"caregiving"}},
			{"Accurate clinical record keeping", types.ImportanceHelpful, "Practice detailed note taking in science labs", []string{"organization"}},
		},
		Actions: []actionEntry{
			{types.PriorityHigh, whenNow, types.CategoryAcademic, "Sign up for biology and chemistry with a lab component"},
			{types.PriorityMedium, whenSummer, types.CategoryExperience, "Volunteer at a hospital or clinic to see patient care up close"},
			{types.PriorityMedium, whenSchool, types.CategoryNetworking, "Shadow a nurse or medical technician for a day"},
			{types.PriorityLow, whenSchool, types.CategoryExploration, "Join a health occupations student club"},
		},
		Courses: []courseEntry{
			{"Biology", "science"},
			{"Anatomy and Physiology", "science"},
			{"Chemistry", "science"},
			{"Statistics", "math"},
		},
	},
	types.SectorInfrastructure: {
		Skills: []skillEntry{
			{"Reading blueprints and technical drawings", types.ImportanceCritical, "Take a drafting or shop class", nil},
			{"Safe use of hand tools and power tools", types.ImportanceCritical, "Complete OSHA 10 safety training and practice in a school shop", []string{"mechanical_repair"}},
			{"Applied measurement and geometry", types.ImportanceImportant, "Practice measuring and estimating materials on home projects", []string{"math"}},
			{"Troubleshooting equipment", types.ImportanceImportant, "Repair bikes, small engines, or appliances with supervision", []string{"mechanical_repair", "problem_solving"}},
			{"Job site teamwork", types.ImportanceHelpful, "Work on a Habitat for Humanity build or a school stage crew", []string{"teamwork"}},
		},
		Actions: []actionEntry{
			{types.PriorityHigh, whenNow, types.CategoryAcademic, "Enroll in a shop, construction, or engineering technology class"},
			{types.PriorityHigh, whenSchool, types.CategoryExploration, "Visit a trade school or union apprenticeship open house"},
			{types.PriorityMedium, whenSummer, types.CategoryExperience, "Find a summer helper job with a local contractor"},
			{types.PriorityLow, whenSchool, types.CategoryNetworking, "Ask a licensed tradesperson how they got started"},
		},
		Courses: []courseEntry{
			{"Geometry", "math"},
			{"Physics", "science"},
			{"Construction Technology", "technology"},
			{"Technical Drafting", "arts"},
		},
	},
	types.SectorTechnology: {
		Skills: []skillEntry{
			{"Programming fundamentals", types.ImportanceCritical, "Work through a free Python or JavaScript course", []string{"coding"}},
			{"Computer networking basics", types.ImportanceImportant, "Set up a home network and study for an entry-level IT exam", nil},
			{"Logical problem solving", types.ImportanceImportant, "Practice coding puzzles each week", []string{"problem_solving", "math"}},
			{"Working with data and SQL", types.ImportanceHelpful, "Build a small database project for a club or hobby", nil},
			{"Technical writing", types.ImportanceHelpful, "Document a software project you build", []string{"writing"}},
		},
		Actions: []actionEntry{
			{types.PriorityHigh, whenNow, types.CategoryAcademic, "Take a computer science or programming class"},
			{types.PriorityMedium, whenSummer, types.CategoryExperience, "Build and publish a small software project"},
			{types.PriorityMedium, whenSchool, types.CategoryExploration, "Join a robotics, coding, or cyber defense club"},
			{types.PriorityLow, whenSchool, types.CategoryNetworking, "Attend a local tech meetup or hackathon"},
		},
		Courses: []courseEntry{
			{"Computer Science Principles", "technology"},
			{"Algebra II", "math"},
			{"Programming", "technology"},
			{"Statistics", "math"},
		},
	},
	types.SectorCreative: {
		Skills: []skillEntry{
			{"Visual design and color theory", types.ImportanceCritical, "Take an art or design class and study design books", []string{"drawing"}},
			{"Creative software such as Adobe tools", types.ImportanceImportant, "Follow free tutorials for photo and layout editing apps", nil},
			{"Building a portfolio", types.ImportanceCritical, "Collect your best pieces and share them online", nil},
			{"Taking creative feedback", types.ImportanceHelpful, "Join an art critique group or yearbook staff", []string{"communication", "teamwork"}},
			{"Visual storytelling", types.ImportanceHelpful, "Create a short photo essay or video about your community", []string{"writing"}},
		},
		Actions: []actionEntry{
			{types.PriorityHigh, whenNow, types.CategoryAcademic, "Sign up for art, photography, or media production classes"},
			{types.PriorityHigh, whenSchool, types.CategoryExperience, "Start a portfolio with at least five finished pieces"},
			{types.PriorityMedium, whenSummer, types.CategoryExploration, "Attend a summer arts program or design camp"},
			{types.PriorityLow, whenSchool, types.CategoryNetworking, "Enter a student art or film competition"},
		},
		Courses: []courseEntry{
			{"Studio Art", "arts"},
			{"Digital Media Production", "arts"},
			{"Photography", "arts"},
			{"English Composition", "english"},
		},
	},
	types.SectorBusiness: {
		Skills: []skillEntry{
			{"Spreadsheets and Excel", types.ImportanceCritical, "Track a personal budget or club finances in a spreadsheet", nil},
			{"Persuasive communication", types.ImportanceImportant, "Join a debate team or present in class", []string{"communication", "public_speaking"}},
			{"Accounting basics", types.ImportanceImportant, "Take an accounting or personal finance class", []string{"math"}},
			{"Marketing fundamentals", types.ImportanceHelpful, "Promote a school event or small side business", nil},
			{"Time and project management", types.ImportanceHelpful, "Plan and run a fundraiser from start to finish", []string{"organization"}},
		},
		Actions: []actionEntry{
			{types.PriorityHigh, whenNow, types.CategoryAcademic, "Take an accounting, economics, or business class"},
			{types.PriorityMedium, whenSchool, types.CategoryExploration, "Join DECA, FBLA, or a business club"},
			{types.PriorityMedium, whenSummer, types.CategoryExperience, "Get a part-time job in retail or customer service"},
			{types.PriorityLow, whenSchool, types.CategoryNetworking, "Interview a local small business owner"},
		},
		Courses: []courseEntry{
			{"Accounting", "math"},
			{"Economics", "social_studies"},
			{"Business Communication", "english"},
			{"Personal Finance", "math"},
		},
	},
	types.SectorPublicService: {
		Skills: []skillEntry{
			{"Emergency response", types.ImportanceCritical, "Complete a first responder or community emergency response course", nil},
			{"Conflict de-escalation", types.ImportanceImportant, "Train as a peer mediator at school", []string{"communication"}},
			{"Physical fitness", types.ImportanceImportant, "Follow a regular strength and endurance routine", nil},
			{"Clear report writing", types.ImportanceHelpful, "Practice writing short factual summaries of events", []string{"writing"}},
			{"Working under pressure as a team", types.ImportanceHelpful, "Play a team sport or join a search and rescue youth group", []string{"teamwork"}},
		},
		Actions: []actionEntry{
			{types.PriorityHigh, whenNow, types.CategoryAcademic, "Take government and criminal justice or civics classes"},
			{types.PriorityMedium, whenSchool, types.CategoryExploration, "Join a police explorer, fire cadet, or civil service youth program"},
			{types.PriorityMedium, whenSummer, types.CategoryExperience, "Volunteer with a community service organization"},
			{types.PriorityLow, whenSchool, types.CategoryNetworking, "Attend a public safety open house or ride-along"},
		},
		Courses: []courseEntry{
			{"Government and Civics", "social_studies"},
			{"Psychology", "social_studies"},
			{"Physical Education", ""},
			{"English Composition", "english"},
		},
	},
	types.SectorEducation: {
		Skills: []skillEntry{
			{"Explaining ideas clearly", types.ImportanceCritical, "Tutor younger students in a subject you know well", []string{"communication", "public_speaking"}},
			{"Child development", types.ImportanceImportant, "Take a child development or psychology class", nil},
			{"Lesson planning", types.ImportanceImportant, "Help a teacher prepare a lesson or lead a club activity", []string{"organization"}},
			{"Patience with different learners", types.ImportanceHelpful, "Volunteer at an after-school or summer reading program", []string{"caregiving"}},
			{"Classroom leadership", types.ImportanceHelpful, "Coach a youth team or lead a camp group", []string{"teamwork"}},
		},
		Actions: []actionEntry{
			{types.PriorityHigh, whenNow, types.CategoryAcademic, "Take psychology or child development as an elective"},
			{types.PriorityHigh, whenSchool, types.CategoryExperience, "Start tutoring classmates or younger students"},
			{types.PriorityMedium, whenSummer, types.CategoryExperience, "Work as a summer camp counselor or reading buddy"},
			{types.PriorityLow, whenSchool, types.CategoryNetworking, "Join Educators Rising or a future teachers club"},
		},
		Courses: []courseEntry{
			{"Psychology", "social_studies"},
			{"Child Development", "social_studies"},
			{"English Composition", "english"},
			{"Public Speaking", "english"},
		},
	},
}

// pathwayStep is a title and description template for one pathway step.
// %s is replaced by the career title.
type pathwayStep struct {
	Title       string
	Description string
	Duration    string
}

var (
	stepPrepare = pathwayStep{
		"Prepare in high school for %s",
		"Choose classes and activities that point toward becoming a %s.",
		"Now until graduation",
	}
	stepEntryJob = pathwayStep{
		"Land an entry-level %s role",
		"Apply for trainee or helper positions that lead to working as a %s.",
		"0-6 months",
	}
	stepCertificate = pathwayStep{
		"Complete %s training",
		"Finish a certificate, apprenticeship, or academy program approved for %s work.",
		"6-18 months",
	}
	stepAssociate = pathwayStep{
		"Earn a two-year degree for %s",
		"Complete an associate program that prepares graduates to work as a %s.",
		"2 years",
	}
	stepBachelor = pathwayStep{
		"Earn a bachelor's degree toward %s",
		"Complete a four-year degree in a field that employers hiring a %s expect.",
		"4 years",
	}
	stepMaster = pathwayStep{
		"Earn a master's degree for %s",
		"Complete the graduate program required to practice as a %s.",
		"2 years",
	}
	stepDoctorate = pathwayStep{
		"Complete a doctoral program for %s",
		"Finish the professional doctorate required to practice as a %s.",
		"3-4 years",
	}
	stepExperience = pathwayStep{
		"Gain hands-on %s experience",
		"Use internships or supervised practice to work alongside an experienced %s.",
		"During training",
	}
	stepCredential = pathwayStep{
		"Earn your %s credential",
		"Pass the licensing or certification exam expected of every new %s.",
		"1-3 months",
	}
	stepLaunch = pathwayStep{
		"Start working as a %s",
		"Apply for your first full %s position and keep building skills on the job.",
		"Ongoing",
	}
)

// pathwayTemplates lists the steps for each required education tier.
// stepCredential is dropped when the career lists no certification.
var pathwayTemplates = map[string][]pathwayStep{
	types.EducationHighSchool:  {stepPrepare, stepEntryJob, stepCredential, stepLaunch},
	types.EducationCertificate: {stepPrepare, stepCertificate, stepCredential, stepLaunch},
	types.EducationAssociate:   {stepPrepare, stepAssociate, stepExperience, stepCredential, stepLaunch},
	types.EducationBachelor:    {stepPrepare, stepBachelor, stepExperience, stepCredential, stepLaunch},
	types.EducationMaster:      {stepPrepare, stepBachelor, stepMaster, stepExperience, stepCredential, stepLaunch},
	types.EducationDoctorate:   {stepPrepare, stepBachelor, stepDoctorate, stepExperience, stepCredential, stepLaunch},
}
