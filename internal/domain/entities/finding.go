package entities

import "fmt"

// Severity classifies lint findings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rule identifiers. Each maps to one checkable property of a manifest.
const (
	RuleParse     = "parse"     // line does not match the record grammar
	RuleDuplicate = "duplicate" // two records share a normalized name
	RuleSorted    = "sorted"    // record list is not sorted case-insensitively
	RuleUnpinned  = "unpinned"  // record carries no exact version pin
	RulePolicy    = "policy"    // record violates the version policy file
	RuleOption    = "option"    // pip option line the linter does not model
)

// Finding is a single lint result tied to a manifest location.
type Finding struct {
	Rule     string
	Severity Severity
	Path     string
	Line     int
	Message  string
}

// String renders the finding in the usual file:line tool format.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s: %s [%s]", f.Path, f.Line, f.Severity, f.Message, f.Rule)
}

// HasErrors returns true when any finding has error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
