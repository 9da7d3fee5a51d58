package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reqlint/internal/domain/repositories"
	"github.com/rios0rios0/reqlint/internal/linter"
)

const defaultPolicyFileName = "requirements-policy.hcl"

// Lint is the interface for the lint command.
type Lint interface {
	Execute(ctx context.Context, settings *entities.Settings, opts LintOptions) ([]entities.Finding, error)
}

// LintOptions holds runtime options for the lint command.
type LintOptions struct {
	Path   string
	Strict bool
}

// LintCommand parses a manifest and evaluates the rule set against it.
type LintCommand struct {
	manifests domainRepos.ManifestRepository
	policies  domainRepos.PolicyRepository
}

// NewLintCommand creates a new LintCommand.
func NewLintCommand(
	manifests domainRepos.ManifestRepository,
	policies domainRepos.PolicyRepository,
) *LintCommand {
	return &LintCommand{manifests: manifests, policies: policies}
}

// Execute runs every enabled rule and returns the findings ordered by
// line. Parse findings come first from the parser; rule findings are
// appended by the linter.
func (it *LintCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts LintOptions,
) ([]entities.Finding, error) {
	path, err := it.manifests.Resolve(opts.Path)
	if err != nil {
		return nil, err
	}
	logger.Infof("[lint] Checking %s", path)

	result, loadErr := it.manifests.Load(path)
	if loadErr != nil {
		return nil, loadErr
	}

	policy, policyErr := it.loadPolicy(settings, path)
	if policyErr != nil {
		return nil, policyErr
	}

	effective := *settings
	effective.Strict = settings.Strict || opts.Strict

	findings := result.Findings
	if !effective.RuleEnabled(entities.RuleParse) {
		findings = withoutRule(findings, entities.RuleParse)
	}
	if !effective.RuleEnabled(entities.RuleOption) {
		findings = withoutRule(findings, entities.RuleOption)
	}

	findings = append(findings, linter.New(&effective, policy).Run(result.Manifest)...)

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})

	return findings, nil
}

// loadPolicy reads the version policy file: the configured path, or the
// default file name next to the manifest.
func (it *LintCommand) loadPolicy(
	settings *entities.Settings,
	manifestPath string,
) (entities.Policy, error) {
	policyPath := settings.PolicyFile
	if policyPath == "" {
		policyPath = filepath.Join(filepath.Dir(manifestPath), defaultPolicyFileName)
	}

	policy, err := it.policies.Load(policyPath)
	if err != nil {
		return entities.Policy{}, fmt.Errorf("failed to load policy: %w", err)
	}
	if !policy.IsEmpty() {
		logger.Debugf("[lint] Loaded policy for %d packages from %s", len(policy.Packages), policyPath)
	}

	return policy, nil
}

// withoutRule filters findings produced by the given rule.
func withoutRule(findings []entities.Finding, rule string) []entities.Finding {
	kept := make([]entities.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Rule != rule {
			kept = append(kept, f)
		}
	}
	return kept
}
