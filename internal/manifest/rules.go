package manifest

import "strings"

const (
	// frameworkWeight is credited for a framework or library dependency.
	frameworkWeight = 5
	// infraWeight is credited for a datastore, container or cloud marker.
	infraWeight = 3
)

// rule credits a technology when a lower-cased name contains any of its markers
// and none of its exclusions.
type rule struct {
	technology string
	weight     int
	markers    []string
	excludes   []string
}

func (r rule) matches(s string) bool {
	for _, ex := range r.excludes {
		if strings.Contains(s, ex) {
			return false
		}
	}
	for _, m := range r.markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func (r rule) hit() Hit {
	return Hit{Technology: r.technology, Weight: r.weight}
}

// firstMatch returns the hit of the first rule matching name. Rules are tried in order.
func firstMatch(rules []rule, name string) (Hit, bool) {
	name = strings.ToLower(name)
	for _, r := range rules {
		if r.matches(name) {
			return r.hit(), true
		}
	}
	return Hit{}, false
}

// allMatches returns a hit for every rule matching text.
func allMatches(rules []rule, text string) []Hit {
	text = strings.ToLower(text)
	var hits []Hit
	for _, r := range rules {
		if r.matches(text) {
			hits = append(hits, r.hit())
		}
	}
	return hits
}

// javascriptRules classify package.json dependency names.
var javascriptRules = []rule{
	{technology: "React", weight: frameworkWeight, markers: []string{"react"}, excludes: []string{"native"}},
	{technology: "Next.js", weight: frameworkWeight, markers: []string{"next"}},
	{technology: "Vue", weight: frameworkWeight, markers: []string{"vue"}},
	{technology: "Angular", weight: frameworkWeight, markers: []string{"angular"}},
	{technology: "Svelte", weight: frameworkWeight, markers: []string{"svelte"}},
	{technology: "Express", weight: frameworkWeight, markers: []string{"express"}},
}

// pythonRules scan Python dependency lists and project files.
var pythonRules = []rule{
	{technology: "Django", weight: frameworkWeight, markers: []string{"django"}},
	{technology: "FastAPI", weight: frameworkWeight, markers: []string{"fastapi"}},
	{technology: "Flask", weight: frameworkWeight, markers: []string{"flask"}},
	{technology: "TensorFlow", weight: frameworkWeight, markers: []string{"tensorflow"}},
	{technology: "PyTorch", weight: frameworkWeight, markers: []string{"torch", "pytorch"}},
	{technology: "Transformers", weight: frameworkWeight, markers: []string{"transformers"}},
	{technology: "OpenAI", weight: frameworkWeight, markers: []string{"openai"}},
}

// datastoreRules scan container definitions for database images.
var datastoreRules = []rule{
	{technology: "PostgreSQL", weight: infraWeight, markers: []string{"postgres"}},
	{technology: "MongoDB", weight: infraWeight, markers: []string{"mongo"}},
	{technology: "Redis", weight: infraWeight, markers: []string{"redis"}},
	{technology: "MySQL", weight: infraWeight, markers: []string{"mysql"}},
}

// infraRules classify module, crate and artifact names of compiled ecosystems.
var infraRules = []rule{
	{technology: "PostgreSQL", weight: infraWeight, markers: []string{"postgres", "pgx", "lib/pq"}},
	{technology: "MongoDB", weight: infraWeight, markers: []string{"mongo"}},
	{technology: "Redis", weight: infraWeight, markers: []string{"redis", "redigo", "jedis"}},
	{technology: "MySQL", weight: infraWeight, markers: []string{"mysql"}},
	{technology: "SQLite", weight: infraWeight, markers: []string{"sqlite"}},
	{technology: "OpenAI", weight: frameworkWeight, markers: []string{"openai"}},
	{technology: "TensorFlow", weight: frameworkWeight, markers: []string{"tensorflow"}},
	{technology: "AWS", weight: infraWeight, markers: []string{"aws-sdk", "awssdk", "amazonaws"}},
	{technology: "GCP", weight: infraWeight, markers: []string{"cloud.google.com", "google-cloud", "com.google.cloud"}},
	{technology: "Azure", weight: infraWeight, markers: []string{"azure"}},
	{technology: "Kubernetes", weight: infraWeight, markers: []string{"k8s.io", "kube"}},
}

// springRule takes precedence over infraRules for Maven artifacts.
var springRule = rule{technology: "Spring", weight: frameworkWeight, markers: []string{"spring"}}
