package domain

import "sort"

// Category is one of the fixed groups badges are rendered under.
type Category int

const (
	Languages Category = iota
	Frontend
	Backend
	AIML
	Databases
	CloudDevOps
)

// Categories lists every category in rendering order.
var Categories = []Category{Languages, Frontend, Backend, AIML, Databases, CloudDevOps}

// Title is the subheading the category is rendered under.
func (c Category) Title() string {
	switch c {
	case Languages:
		return "🔥 Languages"
	case Frontend:
		return "⚡ Frontend"
	case Backend:
		return "🔧 Backend"
	case AIML:
		return "🤖 AI/ML"
	case Databases:
		return "🗄️ Databases"
	case CloudDevOps:
		return "☁️ Cloud & DevOps"
	}
	return "Other"
}

// Key is the stable identifier used in JSON output.
func (c Category) Key() string {
	switch c {
	case Languages:
		return "languages"
	case Frontend:
		return "frontend"
	case Backend:
		return "backend"
	case AIML:
		return "ai_ml"
	case Databases:
		return "databases"
	case CloudDevOps:
		return "cloud_devops"
	}
	return "other"
}

// Badge is the display badge of a recognized technology.
type Badge struct {
	Category Category
	Markdown string
}

func shield(alt, label, color, logo, logoColor string) string {
	s := "![" + alt + "](https://img.shields.io/badge/" + label + "-" + color + "?style=for-the-badge"
	if logo != "" {
		s += "&logo=" + logo
	}
	if logoColor != "" {
		s += "&logoColor=" + logoColor
	}
	return s + ")"
}

// badges maps technology names, exactly as the detector counts them, to their badge.
// A technology belongs to a single category by construction.
var badges = map[string]Badge{
	"Python":     {Languages, shield("Python", "Python", "3776AB", "python", "white")},
	"JavaScript": {Languages, shield("JavaScript", "JavaScript", "F7DF1E", "javascript", "black")},
	"TypeScript": {Languages, shield("TypeScript", "TypeScript", "007ACC", "typescript", "white")},
	"Java":       {Languages, shield("Java", "Java", "ED8B00", "openjdk", "white")},
	"Go":         {Languages, shield("Go", "Go", "00ADD8", "go", "white")},
	"Rust":       {Languages, shield("Rust", "Rust", "000000", "rust", "white")},
	"C++":        {Languages, shield("C++", "C++", "00599C", "c%2B%2B", "white")},
	"C":          {Languages, shield("C", "C", "00599C", "c", "white")},
	"PHP":        {Languages, shield("PHP", "PHP", "777BB4", "php", "white")},
	"Ruby":       {Languages, shield("Ruby", "Ruby", "CC342D", "ruby", "white")},
	"Swift":      {Languages, shield("Swift", "Swift", "FA7343", "swift", "white")},
	"Kotlin":     {Languages, shield("Kotlin", "Kotlin", "0095D5", "kotlin", "white")},
	"Dart":       {Languages, shield("Dart", "Dart", "0175C2", "dart", "white")},
	"Shell":      {Languages, shield("Shell Script", "Shell_Script", "121011", "gnu-bash", "white")},

	"React":   {Frontend, shield("React", "React", "20232A", "react", "61DAFB")},
	"Next.js": {Frontend, shield("Next.js", "Next.js", "000000", "next.js", "white")},
	"Vue":     {Frontend, shield("Vue.js", "Vue.js", "35495E", "vue.js", "4FC08D")},
	"Angular": {Frontend, shield("Angular", "Angular", "DD0031", "angular", "white")},
	"Svelte":  {Frontend, shield("Svelte", "Svelte", "4A4A55", "svelte", "FF3E00")},

	"Django":  {Backend, shield("Django", "Django", "092E20", "django", "white")},
	"FastAPI": {Backend, shield("FastAPI", "FastAPI", "005571", "fastapi", "")},
	"Flask":   {Backend, shield("Flask", "Flask", "000000", "flask", "white")},
	"Express": {Backend, shield("Express.js", "Express.js", "404D59", "", "")},
	"Node.js": {Backend, shield("Node.js", "Node.js", "43853D", "node.js", "white")},
	"Spring":  {Backend, shield("Spring", "Spring", "6DB33F", "spring", "white")},

	"TensorFlow":   {AIML, shield("TensorFlow", "TensorFlow", "FF6F00", "tensorflow", "white")},
	"PyTorch":      {AIML, shield("PyTorch", "PyTorch", "EE4C2C", "pytorch", "white")},
	"OpenAI":       {AIML, shield("OpenAI", "OpenAI", "74aa9c", "openai", "white")},
	"Transformers": {AIML, shield("Hugging Face", "Hugging%20Face", "FFD21E", "huggingface", "black")},

	"PostgreSQL": {Databases, shield("PostgreSQL", "PostgreSQL", "316192", "postgresql", "white")},
	"MongoDB":    {Databases, shield("MongoDB", "MongoDB", "4EA94B", "mongodb", "white")},
	"Redis":      {Databases, shield("Redis", "Redis", "DC382D", "redis", "white")},
	"MySQL":      {Databases, shield("MySQL", "MySQL", "00000F", "mysql", "white")},
	"SQLite":     {Databases, shield("SQLite", "SQLite", "07405E", "sqlite", "white")},

	"Docker":     {CloudDevOps, shield("Docker", "Docker", "2496ED", "docker", "white")},
	"Kubernetes": {CloudDevOps, shield("Kubernetes", "Kubernetes", "326ce5", "kubernetes", "white")},
	"AWS":        {CloudDevOps, shield("AWS", "AWS", "232F3E", "amazon-aws", "white")},
	"GCP":        {CloudDevOps, shield("Google Cloud", "Google_Cloud", "4285F4", "google-cloud", "white")},
	"Azure":      {CloudDevOps, shield("Azure", "Microsoft_Azure", "0089D0", "microsoft-azure", "white")},
}

// LookupBadge returns the badge for a technology name. Unknown names have no badge.
func LookupBadge(tech string) (Badge, bool) {
	b, ok := badges[tech]
	return b, ok
}

// Technologies returns every technology name that has a badge, sorted.
func Technologies() []string {
	names := make([]string, 0, len(badges))
	for name := range badges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
