// Package manifest recognizes technologies in dependency manifests and
// container definitions fetched from a repository's root directory.
//
// Every supported file has an [Analyzer]. Structured manifests are parsed and
// each dependency is attributed to at most one technology, the first rule it
// matches. Plain-text files are lower-cased and tested against every rule
// independently, so one file may credit several technologies.
package manifest

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// Hit credits a technology with a weight.
type Hit struct {
	Technology string
	Weight     int
}

// Analyzer extracts technology hits from the content of one well-known file.
type Analyzer interface {
	// Filename is the file name looked up at the repository root.
	Filename() string
	// Analyze returns the hits found in content. A parse failure returns an
	// error and no hits.
	Analyze(content string) ([]Hit, error)
}

// Analyzers returns the analyzers of every supported file, in lookup order.
func Analyzers() []Analyzer {
	return []Analyzer{
		PackageJSON{},
		PythonDeps{Name: "requirements.txt"},
		CargoToml{},
		POM{},
		GoMod{},
		PythonDeps{Name: "Pipfile"},
		PythonDeps{Name: "pyproject.toml"},
		Dockerfile{},
		Compose{},
	}
}

// PackageJSON analyzes npm manifests. dependencies and devDependencies are merged.
type PackageJSON struct{}

func (PackageJSON) Filename() string { return "package.json" }

func (PackageJSON) Analyze(content string) ([]Hit, error) {
	var pkg struct {
		Dependencies    map[string]any `json:"dependencies"`
		DevDependencies map[string]any `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil, fmt.Errorf("parse package.json: %w", err)
	}
	return matchEach(javascriptRules, keys(pkg.Dependencies, pkg.DevDependencies)), nil
}

// PythonDeps scans Python dependency lists and project files as plain text.
type PythonDeps struct {
	Name string
}

func (p PythonDeps) Filename() string { return p.Name }

func (p PythonDeps) Analyze(content string) ([]Hit, error) {
	return allMatches(pythonRules, content), nil
}

// Dockerfile credits Docker and any datastore its text mentions.
type Dockerfile struct{}

func (Dockerfile) Filename() string { return "Dockerfile" }

func (Dockerfile) Analyze(content string) ([]Hit, error) {
	hits := []Hit{{Technology: "Docker", Weight: infraWeight}}
	return append(hits, allMatches(datastoreRules, content)...), nil
}

// Compose analyzes docker-compose service images.
type Compose struct{}

func (Compose) Filename() string { return "docker-compose.yml" }

func (Compose) Analyze(content string) ([]Hit, error) {
	var compose struct {
		Services map[string]struct {
			Image string `yaml:"image"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal([]byte(content), &compose); err != nil {
		return nil, fmt.Errorf("parse docker-compose.yml: %w", err)
	}
	names := make([]string, 0, len(compose.Services))
	for name := range compose.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	images := make([]string, 0, len(names))
	for _, name := range names {
		if image := compose.Services[name].Image; image != "" {
			images = append(images, image)
		}
	}
	hits := []Hit{{Technology: "Docker", Weight: infraWeight}}
	return append(hits, matchEach(datastoreRules, images)...), nil
}

// GoMod analyzes the direct requirements of a Go module.
type GoMod struct{}

func (GoMod) Filename() string { return "go.mod" }

func (GoMod) Analyze(content string) ([]Hit, error) {
	f, err := modfile.ParseLax("go.mod", []byte(content), nil)
	if err != nil {
		return nil, fmt.Errorf("parse go.mod: %w", err)
	}
	var paths []string
	for _, req := range f.Require {
		if req.Indirect {
			continue
		}
		paths = append(paths, req.Mod.Path)
	}
	return matchEach(infraRules, paths), nil
}

// CargoToml analyzes Rust crate dependencies of every kind.
type CargoToml struct{}

func (CargoToml) Filename() string { return "Cargo.toml" }

func (CargoToml) Analyze(content string) ([]Hit, error) {
	var cargo struct {
		Dependencies      map[string]any `toml:"dependencies"`
		DevDependencies   map[string]any `toml:"dev-dependencies"`
		BuildDependencies map[string]any `toml:"build-dependencies"`
	}
	if err := toml.Unmarshal([]byte(content), &cargo); err != nil {
		return nil, fmt.Errorf("parse Cargo.toml: %w", err)
	}
	return matchEach(infraRules, keys(cargo.Dependencies, cargo.DevDependencies, cargo.BuildDependencies)), nil
}

// POM analyzes Maven dependencies, including the parent and managed ones.
type POM struct{}

func (POM) Filename() string { return "pom.xml" }

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

func (POM) Analyze(content string) ([]Hit, error) {
	var pom struct {
		Parent               pomDependency   `xml:"parent"`
		Dependencies         []pomDependency `xml:"dependencies>dependency"`
		DependencyManagement struct {
			Dependencies []pomDependency `xml:"dependencies>dependency"`
		} `xml:"dependencyManagement"`
	}
	if err := xml.Unmarshal([]byte(content), &pom); err != nil {
		return nil, fmt.Errorf("parse pom.xml: %w", err)
	}

	all := append([]pomDependency{pom.Parent}, pom.Dependencies...)
	all = append(all, pom.DependencyManagement.Dependencies...)

	rules := append([]rule{springRule}, infraRules...)
	var ids []string
	for _, dep := range all {
		if dep.GroupID == "" && dep.ArtifactID == "" {
			continue
		}
		ids = append(ids, dep.GroupID+":"+dep.ArtifactID)
	}
	return matchEach(rules, ids), nil
}

// matchEach attributes every name to its first matching rule.
func matchEach(rules []rule, names []string) []Hit {
	var hits []Hit
	for _, name := range names {
		if hit, ok := firstMatch(rules, name); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// keys merges the keys of several tables, sorted and without duplicates.
func keys(tables ...map[string]any) []string {
	seen := make(map[string]bool)
	var names []string
	for _, table := range tables {
		for name := range table {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
