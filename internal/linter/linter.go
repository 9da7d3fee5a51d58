package linter

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/version"
)

// Linter runs the rule set against a parsed manifest. Which rules run is
// controlled by the settings; parse findings are produced by the parser
// and merged in by the caller.
type Linter struct {
	settings *entities.Settings
	policy   entities.Policy
}

// New creates a linter for the given settings and version policy.
func New(settings *entities.Settings, policy entities.Policy) *Linter {
	return &Linter{settings: settings, policy: policy}
}

// Run evaluates every enabled rule and returns the findings in rule
// order. When strict mode is on, warnings are promoted to errors.
func (l *Linter) Run(manifest entities.Manifest) []entities.Finding {
	var findings []entities.Finding

	if l.settings.RuleEnabled(entities.RuleDuplicate) {
		findings = append(findings, l.checkDuplicates(manifest)...)
	}
	if l.settings.RuleEnabled(entities.RuleSorted) {
		findings = append(findings, l.checkSorted(manifest)...)
	}
	if l.settings.RuleEnabled(entities.RuleUnpinned) {
		findings = append(findings, l.checkUnpinned(manifest)...)
	}
	if l.settings.RuleEnabled(entities.RulePolicy) && !l.policy.IsEmpty() {
		findings = append(findings, l.checkPolicy(manifest)...)
	}

	if l.settings.Strict {
		findings = lo.Map(findings, func(f entities.Finding, _ int) entities.Finding {
			if f.Severity == entities.SeverityWarning {
				f.Severity = entities.SeverityError
			}
			return f
		})
	}

	return findings
}

// checkDuplicates flags records sharing a normalized name. Records that
// additionally disagree on their constraint ("pillow" vs
// "Pillow==11.2.1") are reported as conflicts requiring resolution.
func (l *Linter) checkDuplicates(manifest entities.Manifest) []entities.Finding {
	var findings []entities.Finding

	groups := lo.GroupBy(manifest.Requirements, func(req entities.Requirement) string {
		return req.NormalizedName()
	})

	for _, reqs := range groups {
		if len(reqs) < 2 || l.settings.IsIgnored(reqs[0].Name) {
			continue
		}

		first := reqs[0]
		for _, dup := range reqs[1:] {
			message := fmt.Sprintf(
				"duplicate record for %q (first declared at line %d)",
				dup.NormalizedName(), first.Line,
			)
			if dup.ConflictsWith(first) {
				message = fmt.Sprintf(
					"conflicting records for %q: %q (line %d) vs %q — resolve to a single pin",
					dup.NormalizedName(), first.String(), first.Line, dup.String(),
				)
			}
			findings = append(findings, entities.Finding{
				Rule:     entities.RuleDuplicate,
				Severity: entities.SeverityError,
				Path:     manifest.Path,
				Line:     dup.Line,
				Message:  message,
			})
		}
	}

	return findings
}

// checkSorted flags every record that breaks the case-insensitive
// alphabetical order the manifest's own header comment asks for.
func (l *Linter) checkSorted(manifest entities.Manifest) []entities.Finding {
	var findings []entities.Finding

	for i := 1; i < len(manifest.Requirements); i++ {
		prev, cur := manifest.Requirements[i-1], manifest.Requirements[i]
		if cur.NormalizedName() < prev.NormalizedName() {
			findings = append(findings, entities.Finding{
				Rule:     entities.RuleSorted,
				Severity: entities.SeverityWarning,
				Path:     manifest.Path,
				Line:     cur.Line,
				Message: fmt.Sprintf(
					"%q sorts before %q — keep records sorted case-insensitively",
					cur.Name, prev.Name,
				),
			})
		}
	}

	return findings
}

// checkUnpinned flags records without an exact == pin.
func (l *Linter) checkUnpinned(manifest entities.Manifest) []entities.Finding {
	unpinned := lo.Filter(manifest.Requirements, func(req entities.Requirement, _ int) bool {
		return !req.IsPinned() && !l.settings.IsIgnored(req.Name)
	})

	return lo.Map(unpinned, func(req entities.Requirement, _ int) entities.Finding {
		message := fmt.Sprintf("%q has no exact version pin", req.Name)
		if req.HasConstraint() {
			message = fmt.Sprintf(
				"%q uses range constraint %q instead of an exact pin",
				req.Name, req.Operator+req.Version,
			)
		}
		return entities.Finding{
			Rule:     entities.RuleUnpinned,
			Severity: entities.SeverityWarning,
			Path:     manifest.Path,
			Line:     req.Line,
			Message:  message,
		}
	})
}

// checkPolicy evaluates the per-package constraints from the policy file.
func (l *Linter) checkPolicy(manifest entities.Manifest) []entities.Finding {
	var findings []entities.Finding

	for _, req := range manifest.Requirements {
		pol, ok := l.policy.ForPackage(req.Name)
		if !ok || l.settings.IsIgnored(req.Name) {
			continue
		}
		findings = append(findings, l.evaluatePolicy(manifest.Path, req, pol)...)
	}

	return findings
}

func (l *Linter) evaluatePolicy(
	path string,
	req entities.Requirement,
	pol entities.PackagePolicy,
) []entities.Finding {
	var findings []entities.Finding

	finding := func(message string) entities.Finding {
		return entities.Finding{
			Rule:     entities.RulePolicy,
			Severity: entities.SeverityError,
			Path:     path,
			Line:     req.Line,
			Message:  message,
		}
	}

	if pol.RequirePin && !req.IsPinned() {
		findings = append(findings, finding(fmt.Sprintf(
			"policy requires an exact pin for %q", req.Name,
		)))
	}

	if req.Version == "" {
		return findings
	}

	if pol.Minimum != "" && version.IsNewerVersion(req.Version, pol.Minimum) {
		findings = append(findings, finding(fmt.Sprintf(
			"%q pinned at %s, below the policy minimum %s",
			req.Name, req.Version, pol.Minimum,
		)))
	}
	if pol.Maximum != "" && !version.IsNewerVersion(req.Version, pol.Maximum) {
		findings = append(findings, finding(fmt.Sprintf(
			"%q pinned at %s, at or above the policy maximum %s",
			req.Name, req.Version, pol.Maximum,
		)))
	}

	return findings
}
