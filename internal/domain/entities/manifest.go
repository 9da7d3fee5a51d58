package entities

import (
	"fmt"
	"sort"
	"strings"
)

// Option represents a pip option line ("-r base.txt", "--hash=...",
// "-e ./pkg"). Option lines are preserved verbatim so that rendering a
// manifest never destroys installer directives the linter does not model.
type Option struct {
	Raw  string
	Line int
}

// Manifest represents a parsed requirements file.
type Manifest struct {
	Path         string
	Header       []string // Leading comment/blank block, preserved verbatim
	Options      []Option
	Requirements []Requirement
	Footer       []string // Trailing comment lines after the last record
}

// Render serializes the manifest in its stored order: header verbatim,
// option lines, then one record per line. The output of Render on a
// canonical manifest reproduces the file byte-for-byte.
func (m Manifest) Render() string {
	var sb strings.Builder

	for _, line := range m.Header {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	for _, opt := range m.Options {
		sb.WriteString(opt.Raw)
		sb.WriteString("\n")
	}
	for _, req := range m.Requirements {
		for _, comment := range req.LeadingComments {
			sb.WriteString(comment)
			sb.WriteString("\n")
		}
		sb.WriteString(req.String())
		sb.WriteString("\n")
	}
	for _, line := range m.Footer {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// IsSorted returns true when the record list is sorted case-insensitively
// by normalized package name.
func (m Manifest) IsSorted() bool {
	return sort.SliceIsSorted(m.Requirements, func(i, j int) bool {
		return m.Requirements[i].NormalizedName() < m.Requirements[j].NormalizedName()
	})
}

// Canonical returns a copy of the manifest with duplicates merged and
// records sorted case-insensitively by normalized name. Merging follows
// the resolution policy for the known duplicate defect: a pinned record
// wins over a bare one; two records with different constraints on the
// same package are a conflict the caller must resolve by hand.
func (m Manifest) Canonical() (Manifest, error) {
	merged, err := mergeDuplicates(m.Requirements)
	if err != nil {
		return Manifest{}, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].NormalizedName() < merged[j].NormalizedName()
	})

	out := m
	out.Requirements = merged
	return out, nil
}

// mergeDuplicates collapses records sharing a normalized name into one.
func mergeDuplicates(reqs []Requirement) ([]Requirement, error) {
	seen := make(map[string]int, len(reqs))
	merged := make([]Requirement, 0, len(reqs))

	for _, req := range reqs {
		idx, exists := seen[req.NormalizedName()]
		if !exists {
			seen[req.NormalizedName()] = len(merged)
			merged = append(merged, req)
			continue
		}

		kept, err := mergePair(merged[idx], req)
		if err != nil {
			return nil, err
		}
		merged[idx] = kept
	}

	return merged, nil
}

// mergePair resolves two records for the same package.
func mergePair(a, b Requirement) (Requirement, error) {
	switch {
	case a.HasConstraint() && !b.HasConstraint():
		return a, nil
	case !a.HasConstraint() && b.HasConstraint():
		return b, nil
	case a.Operator == b.Operator && a.Version == b.Version:
		return a, nil
	default:
		return Requirement{}, fmt.Errorf(
			"conflicting records for %q: %q (line %d) vs %q (line %d)",
			a.NormalizedName(), a.String(), a.Line, b.String(), b.Line,
		)
	}
}

// FindByName returns the first requirement matching the given package
// name (normalized comparison) and true when found.
func (m Manifest) FindByName(name string) (Requirement, bool) {
	normalized := NormalizeName(name)
	for _, req := range m.Requirements {
		if req.NormalizedName() == normalized {
			return req, true
		}
	}
	return Requirement{}, false
}
