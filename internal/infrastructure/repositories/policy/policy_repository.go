package policy

import (
	"fmt"
	"os"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/domain/repositories"
)

// HCLPolicyRepository implements repositories.PolicyRepository by
// parsing requirements-policy.hcl files:
//
//	package "numpy" {
//	  pin     = "required"
//	  minimum = "1.26.0"
//	  maximum = "2.0.0"
//	}
type HCLPolicyRepository struct{}

// NewHCLPolicyRepository creates a new HCL policy repository.
func NewHCLPolicyRepository() repositories.PolicyRepository {
	return &HCLPolicyRepository{}
}

// Load reads the policy at the given path. A missing file yields an
// empty policy.
func (r *HCLPolicyRepository) Load(path string) (entities.Policy, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return entities.Policy{}, nil
	}
	if err != nil {
		return entities.Policy{}, fmt.Errorf("failed to read policy file %q: %w", path, err)
	}

	return parsePolicy(data, path)
}

// parsePolicy parses policy content, falling back to regex extraction
// when strict HCL parsing fails.
func parsePolicy(data []byte, path string) (entities.Policy, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		logger.Debugf("[policy] HCL parse failed for %s, falling back to regex: %v", path, diags)
		return parseWithRegex(string(data))
	}

	bodyContent, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "package", LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return parseWithRegex(string(data))
	}

	policy := entities.Policy{Packages: map[string]entities.PackagePolicy{}}

	for _, block := range bodyContent.Blocks {
		if block.Type != "package" || len(block.Labels) == 0 {
			continue
		}

		pkg := entities.PackagePolicy{Name: block.Labels[0]}
		attrs, _ := block.Body.JustAttributes()

		pkg.RequirePin = stringAttr(attrs, "pin") == "required"
		pkg.Minimum = stringAttr(attrs, "minimum")
		pkg.Maximum = stringAttr(attrs, "maximum")

		policy.Packages[entities.NormalizeName(pkg.Name)] = pkg
	}

	return policy, nil
}

// stringAttr evaluates a block attribute and returns its string value,
// or "" when absent or not a string.
func stringAttr(attrs hcl.Attributes, name string) string {
	attr, ok := attrs[name]
	if !ok {
		return ""
	}

	val, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() || val.Type() != cty.String {
		return ""
	}

	return val.AsString()
}

// blockPattern matches package blocks for the regex fallback parser.
var (
	blockPattern = regexp.MustCompile(`(?s)package\s+"([^"]+)"\s*\{(.*?)\}`)
	attrPattern  = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

// parseWithRegex is a fallback parser for policy files that fail strict
// HCL parsing.
func parseWithRegex(content string) (entities.Policy, error) {
	policy := entities.Policy{Packages: map[string]entities.PackagePolicy{}}

	for _, match := range blockPattern.FindAllStringSubmatch(content, -1) {
		pkg := entities.PackagePolicy{Name: match[1]}

		for _, attr := range attrPattern.FindAllStringSubmatch(match[2], -1) {
			switch attr[1] {
			case "pin":
				pkg.RequirePin = attr[2] == "required"
			case "minimum":
				pkg.Minimum = attr[2]
			case "maximum":
				pkg.Maximum = attr[2]
			}
		}

		policy.Packages[entities.NormalizeName(pkg.Name)] = pkg
	}

	return policy, nil
}
