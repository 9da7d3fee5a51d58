package entities

import (
	"regexp"
	"strings"
)

// Requirement represents a single dependency record from a pip
// requirements manifest.
type Requirement struct {
	Name            string   // Package name as written in the file
	Extras          []string // Bracketed sub-feature list, e.g. [pyav,ffmpeg]
	Operator        string   // Version operator ("==", ">=", ...); empty for bare names
	Version         string   // Pinned version; empty for bare names ("any version")
	Marker          string   // Environment marker after ";", if any
	Comment         string   // Trailing comment on the record line
	LeadingComments []string // Standalone comment lines attached to this record
	Line            int      // 1-based line number in the source file
}

// normalizePattern collapses runs of "-", "_" and "." — PEP 503 name
// normalization, so "opencv_python" and "opencv-python" identify the
// same package.
var normalizePattern = regexp.MustCompile(`[-_.]+`)

// NormalizeName returns the PEP 503 normalized form of a package name.
func NormalizeName(name string) string {
	return strings.ToLower(normalizePattern.ReplaceAllString(name, "-"))
}

// NormalizedName returns the normalized package name of this requirement.
func (r Requirement) NormalizedName() string {
	return NormalizeName(r.Name)
}

// IsPinned returns true when the requirement carries an exact version pin.
func (r Requirement) IsPinned() bool {
	return r.Operator == "==" && r.Version != ""
}

// HasConstraint returns true when the requirement carries any version
// constraint at all.
func (r Requirement) HasConstraint() bool {
	return r.Operator != "" && r.Version != ""
}

// String renders the requirement in canonical record form:
//
//	name[extra1,extra2]==1.2.3 ; marker  # comment
func (r Requirement) String() string {
	var sb strings.Builder

	sb.WriteString(r.Name)
	if len(r.Extras) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(r.Extras, ","))
		sb.WriteString("]")
	}
	if r.HasConstraint() {
		sb.WriteString(r.Operator)
		sb.WriteString(r.Version)
	}
	if r.Marker != "" {
		sb.WriteString(" ; ")
		sb.WriteString(r.Marker)
	}
	if r.Comment != "" {
		sb.WriteString("  # ")
		sb.WriteString(r.Comment)
	}

	return sb.String()
}

// ConflictsWith returns true when the other requirement names the same
// package but the two records cannot both be satisfied as written:
// either the pins differ, or one record is pinned and the other is not.
func (r Requirement) ConflictsWith(other Requirement) bool {
	if r.NormalizedName() != other.NormalizedName() {
		return false
	}
	return r.Operator != other.Operator || r.Version != other.Version
}
