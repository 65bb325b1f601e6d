// Package readme keeps the generated sections of a profile README up to date.
//
// The document is treated as plain text. Only the two managed sections are
// touched; every other byte is written back unchanged.
package readme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/profile-readme/internal/domain"
)

// ErrDocumentNotFound is returned when the README to update does not exist.
var ErrDocumentNotFound = errors.New("document not found")

var (
	// boundary ends a managed section: a level 1 or 2 heading, or a horizontal rule.
	boundary = regexp.MustCompile(`(?m)^(?:#{1,2} |---[ \t\r]*$)`)
	hrLine   = regexp.MustCompile(`(?m)^---[ \t\r]*$`)
)

func headingLine(heading string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(heading) + `[ \t\r]*$`)
}

// ReplaceBlock replaces the section starting at heading with block.
// The section runs up to the next boundary line or the end of the document;
// whitespace before the boundary is kept, so replacing a section with the
// same block twice yields the same document. It reports false, leaving the
// document unchanged, when heading is not present.
func ReplaceBlock(document, heading, block string) (string, bool) {
	loc := headingLine(heading).FindStringIndex(document)
	if loc == nil {
		return document, false
	}
	start := loc[0]

	searchFrom := len(document)
	if nl := strings.IndexByte(document[loc[1]:], '\n'); nl >= 0 {
		searchFrom = loc[1] + nl + 1
	}
	end := len(document)
	if m := boundary.FindStringIndex(document[searchFrom:]); m != nil {
		end = searchFrom + m[0]
	}

	regionEnd := start + len(strings.TrimRightFunc(document[start:end], unicode.IsSpace))
	return document[:start] + strings.TrimSpace(block) + document[regionEnd:], true
}

// Splice updates or inserts both managed sections.
// A missing technology section goes right after the first horizontal rule,
// closed by another rule when no heading follows; a
// missing featured section goes, followed by a rule, before the analytics
// section. Without those anchors the section is appended.
func Splice(document, techStack, featured string) string {
	if updated, ok := ReplaceBlock(document, TechStackHeading, techStack); ok {
		document = updated
	} else {
		document = insertAfterRule(document, techStack)
	}

	if updated, ok := ReplaceBlock(document, FeaturedHeading, featured); ok {
		document = updated
	} else {
		document = insertBefore(document, analyticsHeading, strings.TrimSpace(featured)+"\n\n---\n\n")
	}
	return document
}

func insertAfterRule(document, block string) string {
	loc := hrLine.FindStringIndex(document)
	if loc == nil {
		return appendBlock(document, block)
	}
	at := loc[1]
	block = strings.TrimSpace(block)
	// Close the section unless the following text already starts with a boundary.
	if rest := strings.TrimLeft(document[at:], " \t\r\n"); rest != "" {
		if m := boundary.FindStringIndex(rest); m == nil || m[0] != 0 {
			block += "\n\n---"
		}
	}
	return document[:at] + "\n\n" + block + "\n" + document[at:]
}

func insertBefore(document, heading, block string) string {
	loc := headingLine(heading).FindStringIndex(document)
	if loc == nil {
		return appendBlock(document, block)
	}
	return document[:loc[0]] + block + document[loc[0]:]
}

func appendBlock(document, block string) string {
	block = strings.TrimSpace(block) + "\n"
	if document == "" {
		return block
	}
	if !strings.HasSuffix(document, "\n") {
		document += "\n"
	}
	return document + "\n" + block
}

// Updater rewrites the managed sections of a README file in place.
type Updater struct {
	path   string
	logger *log.Logger
}

// NewUpdater creates an Updater for the document at path.
func NewUpdater(path string, logger *log.Logger) *Updater {
	return &Updater{path: path, logger: logger}
}

// Update renders badges and the featured projects into the document.
// It reports whether the file content changed; an unchanged file is not rewritten.
func (u *Updater) Update(badges domain.BadgeSet, top []domain.ScoredRepository) (bool, error) {
	info, err := os.Stat(u.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("%w: %s", ErrDocumentNotFound, u.path)
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", u.path, err)
	}

	content, err := os.ReadFile(u.path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", u.path, err)
	}

	original := string(content)
	updated := Splice(original, RenderTechStack(badges), RenderFeatured(top))
	if updated == original {
		u.logger.Debug("README already up to date", "path", u.path)
		return false, nil
	}

	if err := os.WriteFile(u.path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", u.path, err)
	}
	u.logger.Info("README updated", "path", u.path, "bytes", len(updated))
	return true, nil
}
