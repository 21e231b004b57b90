package bank

// defaultRoles is the role list used for domains without a bespoke
// track, and for the Computer / IT track itself.
var defaultRoles = []string{
	"Frontend Developer",
	"Backend Developer",
	"Full-Stack Engineer",
	"Data Scientist",
	"Machine Learning Engineer",
	"DevOps / Cloud Engineer",
	"Mobile App Developer",
	"UI/UX Engineer",
	"Product Manager",
	"System Design Architect",
}

// tracks maps each practice domain to its role list, in display order.
var tracks = []struct {
	domain string
	roles  []string
}{
	{"Computer / IT", defaultRoles},
	{AptitudeDomain, []string{
		"General Aptitude Practice",
		"Campus Placement Aptitude",
		"Government Exam Aptitude",
		"Behavioural Interview Prep",
	}},
	{"Electronics & Communication", []string{
		"Embedded Systems Engineer",
		"VLSI / Chip Design Engineer",
		"Signal Processing Engineer",
		"Telecommunication Engineer",
		"IoT Systems Engineer",
	}},
	{"Electrical Engineering", []string{
		"Power Systems Engineer",
		"Electrical Design Engineer",
		"Control Systems Engineer",
		"Instrumentation Engineer",
		"Renewable Energy Engineer",
	}},
	{"Mechanical Engineering", []string{
		"Mechanical Design Engineer",
		"Automotive Engineer",
		"Thermal / HVAC Engineer",
		"Manufacturing / Production Engineer",
		"CAD / CAM Engineer",
	}},
	{"Civil Engineering", []string{
		"Structural Design Engineer",
		"Site Engineer",
		"Transportation Engineer",
		"Geotechnical Engineer",
		"Construction Project Engineer",
	}},
	{"Chemical Engineering", []string{
		"Process Design Engineer",
		"Plant Operations Engineer",
		"Safety & HAZOP Engineer",
		"Petrochemical Engineer",
	}},
	{"Aerospace Engineering", []string{
		"Aerodynamics Engineer",
		"Flight Structures Engineer",
		"Avionics Engineer",
		"Propulsion Engineer",
	}},
	{"Biotechnology", []string{
		"Bioprocess Engineer",
		"Research Associate (Bio)",
		"Quality Control Engineer (Bio / Pharma)",
	}},
	{"Industrial / Production", []string{
		"Industrial Engineer",
		"Operations Excellence Engineer",
		"Supply Chain Analyst",
		"Quality / Reliability Engineer",
	}},
}

// Domains returns all practice domains in display order. Domains
// without a dedicated bank fall back to the default bank at
// selection time.
func Domains() []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.domain
	}
	return out
}

// RolesFor returns the role list for a domain, falling back to the
// default roles for unknown domains.
func RolesFor(domain string) []string {
	for _, t := range tracks {
		if t.domain == domain {
			return t.roles
		}
	}
	return defaultRoles
}

// Positions returns the selectable position levels in display order.
func Positions() []string {
	return []string{
		"Study Practice",
		"Internship",
		"Entry-Level Job",
		"Mid-Level Job",
		"Senior Role",
	}
}

// AptitudeCategories returns the category filters available for the
// aptitude domain.
func AptitudeCategories() []string {
	return []string{
		"Behavioral",
		"Logical Reasoning",
		"Quantitative Aptitude",
		"Mathematics",
		"Verbal Ability",
		"Puzzles",
		"Data Interpretation",
	}
}

// Language is a supported interview narration language.
type Language struct {
	Code  string
	Label string
}

// Languages returns the supported interview languages.
func Languages() []Language {
	return []Language{
		{"en-US", "English (US)"},
		{"en-GB", "English (UK)"},
		{"hi-IN", "Hindi (India)"},
		{"mr-IN", "Marathi (India)"},
		{"bn-IN", "Bengali (India)"},
		{"ta-IN", "Tamil (India)"},
		{"te-IN", "Telugu (India)"},
		{"kn-IN", "Kannada (India)"},
		{"ml-IN", "Malayalam (India)"},
		{"gu-IN", "Gujarati (India)"},
		{"pa-IN", "Punjabi (India)"},
		{"fr-FR", "French"},
		{"de-DE", "German"},
		{"es-ES", "Spanish"},
		{"pt-BR", "Portuguese (Brazil)"},
		{"it-IT", "Italian"},
		{"ru-RU", "Russian"},
		{"ja-JP", "Japanese"},
		{"ko-KR", "Korean"},
		{"zh-CN", "Chinese (Mandarin)"},
		{"ar-SA", "Arabic"},
	}
}
