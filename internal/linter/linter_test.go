package linter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/linter"
)

func findingsForRule(findings []entities.Finding, rule string) []entities.Finding {
	var matched []entities.Finding
	for _, f := range findings {
		if f.Rule == rule {
			matched = append(matched, f)
		}
	}
	return matched
}

func TestLinter_Duplicates(t *testing.T) {
	t.Parallel()

	t.Run("should flag a pinned and a bare record as a conflict", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Path: "requirements.txt",
			Requirements: []entities.Requirement{
				{Name: "Pillow", Operator: "==", Version: "11.2.1", Line: 22},
				{Name: "pillow", Line: 31},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), entities.Policy{}).Run(manifest)

		// then
		duplicates := findingsForRule(findings, entities.RuleDuplicate)
		require.Len(t, duplicates, 1)
		assert.Equal(t, entities.SeverityError, duplicates[0].Severity)
		assert.Equal(t, 31, duplicates[0].Line)
		assert.Contains(t, duplicates[0].Message, "conflicting records")
		assert.Contains(t, duplicates[0].Message, "resolve to a single pin")
	})

	t.Run("should flag identical duplicates without the conflict wording", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "loguru", Operator: "==", Version: "0.7.2", Line: 3},
				{Name: "loguru", Operator: "==", Version: "0.7.2", Line: 9},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), entities.Policy{}).Run(manifest)

		// then
		duplicates := findingsForRule(findings, entities.RuleDuplicate)
		require.Len(t, duplicates, 1)
		assert.Contains(t, duplicates[0].Message, "duplicate record")
		assert.NotContains(t, duplicates[0].Message, "conflicting")
	})

	t.Run("should not flag distinct normalized names", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "opencv_python", Operator: "==", Version: "4.10.0.84"},
				{Name: "opencv_python_headless", Operator: "==", Version: "4.10.0.84"},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), entities.Policy{}).Run(manifest)

		// then
		assert.Empty(t, findingsForRule(findings, entities.RuleDuplicate))
	})

	t.Run("should respect the rule toggle", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Rules[entities.RuleDuplicate] = false
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "pillow"},
				{Name: "Pillow", Operator: "==", Version: "11.2.1"},
			},
		}

		// when
		findings := linter.New(settings, entities.Policy{}).Run(manifest)

		// then
		assert.Empty(t, findingsForRule(findings, entities.RuleDuplicate))
	})
}

func TestLinter_Sorted(t *testing.T) {
	t.Parallel()

	t.Run("should flag the case-sensitive sort defect", func(t *testing.T) {
		t.Parallel()

		// given: PyYAML placed before pillow, as in the source manifest
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "Pillow", Operator: "==", Version: "11.2.1", Line: 20},
				{Name: "PyYAML", Operator: "==", Version: "6.0.2", Line: 21},
				{Name: "pillow", Line: 22},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), entities.Policy{}).Run(manifest)

		// then
		sorted := findingsForRule(findings, entities.RuleSorted)
		require.Len(t, sorted, 1)
		assert.Equal(t, entities.SeverityWarning, sorted[0].Severity)
		assert.Equal(t, 22, sorted[0].Line)
		assert.Contains(t, sorted[0].Message, "sorted case-insensitively")
	})

	t.Run("should accept case-insensitive order", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "attrs", Operator: "==", Version: "25.3.0"},
				{Name: "Pillow", Operator: "==", Version: "11.2.1"},
				{Name: "PyYAML", Operator: "==", Version: "6.0.2"},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), entities.Policy{}).Run(manifest)

		// then
		assert.Empty(t, findingsForRule(findings, entities.RuleSorted))
	})
}

func TestLinter_Unpinned(t *testing.T) {
	t.Parallel()

	t.Run("should flag bare names and range constraints", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "numpy", Operator: ">=", Version: "1.26.0", Line: 1},
				{Name: "Pillow", Operator: "==", Version: "11.2.1", Line: 2},
				{Name: "python-magic", Line: 3},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), entities.Policy{}).Run(manifest)

		// then
		unpinned := findingsForRule(findings, entities.RuleUnpinned)
		require.Len(t, unpinned, 2)
		assert.Contains(t, unpinned[0].Message, "range constraint")
		assert.Contains(t, unpinned[1].Message, "no exact version pin")
	})

	t.Run("should skip ignored packages", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Ignore = []string{"python-magic"}
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{{Name: "python-magic"}},
		}

		// when
		findings := linter.New(settings, entities.Policy{}).Run(manifest)

		// then
		assert.Empty(t, findingsForRule(findings, entities.RuleUnpinned))
	})
}

func TestLinter_Policy(t *testing.T) {
	t.Parallel()

	policy := entities.Policy{Packages: map[string]entities.PackagePolicy{
		"numpy": {Name: "numpy", RequirePin: true, Maximum: "2.0.0"},
		"torch": {Name: "torch", Minimum: "2.5.0"},
	}}

	t.Run("should flag a missing required pin", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{{Name: "numpy", Line: 4}},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), policy).Run(manifest)

		// then
		policyFindings := findingsForRule(findings, entities.RulePolicy)
		require.Len(t, policyFindings, 1)
		assert.Contains(t, policyFindings[0].Message, "requires an exact pin")
	})

	t.Run("should flag a pin at or above the maximum", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "numpy", Operator: "==", Version: "2.0.0", Line: 4},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), policy).Run(manifest)

		// then
		policyFindings := findingsForRule(findings, entities.RulePolicy)
		require.Len(t, policyFindings, 1)
		assert.Contains(t, policyFindings[0].Message, "policy maximum")
	})

	t.Run("should flag a pin below the minimum", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "torch", Operator: "==", Version: "2.4.1", Line: 9},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), policy).Run(manifest)

		// then
		policyFindings := findingsForRule(findings, entities.RulePolicy)
		require.Len(t, policyFindings, 1)
		assert.Contains(t, policyFindings[0].Message, "policy minimum")
	})

	t.Run("should accept a pin inside the policy window", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{
				{Name: "numpy", Operator: "==", Version: "1.26.4"},
				{Name: "torch", Operator: "==", Version: "2.7.0"},
			},
		}

		// when
		findings := linter.New(entities.DefaultSettings(), policy).Run(manifest)

		// then
		assert.Empty(t, findingsForRule(findings, entities.RulePolicy))
	})
}

func TestLinter_Strict(t *testing.T) {
	t.Parallel()

	t.Run("should promote warnings to errors in strict mode", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Strict = true
		manifest := entities.Manifest{
			Requirements: []entities.Requirement{{Name: "python-magic", Line: 1}},
		}

		// when
		findings := linter.New(settings, entities.Policy{}).Run(manifest)

		// then
		unpinned := findingsForRule(findings, entities.RuleUnpinned)
		require.Len(t, unpinned, 1)
		assert.Equal(t, entities.SeverityError, unpinned[0].Severity)
	})
}
