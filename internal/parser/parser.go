package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
)

// recordPattern matches a single requirement record:
//
//	<name>[<extras>]<op><version> ; <marker>  # comment
//
// Everything after the name is optional. An operator without a version
// is left to the validation step so the error message can say so.
var recordPattern = regexp.MustCompile(
	`^(?P<name>[A-Za-z0-9][A-Za-z0-9._-]*)` +
		`(?:\[(?P<extras>[^\]]*)\])?` +
		`\s*(?:(?P<op>===|==|~=|!=|>=|<=|>|<)\s*(?P<version>[^\s;#]*))?` +
		`\s*(?:;(?P<marker>[^#]*))?` +
		`\s*(?:#\s?(?P<comment>.*))?$`,
)

// Result holds the outcome of parsing one manifest. Malformed lines are
// reported as findings instead of aborting the parse, so one bad line
// never hides the rest of the report.
type Result struct {
	Manifest entities.Manifest
	Findings []entities.Finding
}

// Parse parses requirements file content. The path is only used to
// annotate findings.
func Parse(content, path string) Result {
	result := Result{Manifest: entities.Manifest{Path: path}}

	lines := joinContinuations(strings.Split(content, "\n"))
	if strings.HasSuffix(content, "\n") && len(lines) > 0 && lines[len(lines)-1].text == "" {
		lines = lines[:len(lines)-1] // drop the phantom line after the final newline
	}

	inHeader := true
	var pendingComments []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line.text)

		switch {
		case inHeader && (trimmed == "" || strings.HasPrefix(trimmed, "#")):
			result.Manifest.Header = append(result.Manifest.Header, line.text)

		case trimmed == "":
			// Interior blank lines carry no record information.

		case strings.HasPrefix(trimmed, "#"):
			pendingComments = append(pendingComments, line.text)

		case strings.HasPrefix(trimmed, "-"):
			inHeader = false
			result.Manifest.Options = append(result.Manifest.Options, entities.Option{
				Raw:  line.text,
				Line: line.number,
			})
			result.Findings = append(result.Findings, entities.Finding{
				Rule:     entities.RuleOption,
				Severity: entities.SeverityInfo,
				Path:     path,
				Line:     line.number,
				Message:  fmt.Sprintf("pip option line preserved verbatim: %q", trimmed),
			})

		default:
			inHeader = false
			req, err := parseRecord(trimmed, line.number)
			if err != nil {
				result.Findings = append(result.Findings, entities.Finding{
					Rule:     entities.RuleParse,
					Severity: entities.SeverityError,
					Path:     path,
					Line:     line.number,
					Message:  err.Error(),
				})
				pendingComments = nil
				continue
			}
			req.LeadingComments = pendingComments
			pendingComments = nil
			result.Manifest.Requirements = append(result.Manifest.Requirements, req)
		}
	}

	// Comment lines with no record after them belong to the footer.
	result.Manifest.Footer = pendingComments

	return result
}

// parseRecord parses one logical record line into a Requirement.
func parseRecord(line string, lineNum int) (entities.Requirement, error) {
	match := recordPattern.FindStringSubmatch(line)
	if match == nil {
		return entities.Requirement{}, fmt.Errorf("malformed record: %q", line)
	}

	groups := map[string]string{}
	for i, name := range recordPattern.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}

	if groups["op"] != "" && groups["version"] == "" {
		return entities.Requirement{}, fmt.Errorf(
			"operator %q without a version: %q", groups["op"], line,
		)
	}

	req := entities.Requirement{
		Name:     groups["name"],
		Operator: groups["op"],
		Version:  groups["version"],
		Marker:   strings.TrimSpace(groups["marker"]),
		Comment:  strings.TrimSpace(groups["comment"]),
		Line:     lineNum,
	}

	if raw := groups["extras"]; raw != "" {
		for _, extra := range strings.Split(raw, ",") {
			extra = strings.TrimSpace(extra)
			if extra != "" {
				req.Extras = append(req.Extras, extra)
			}
		}
	}

	return req, nil
}

// logicalLine is a physical line, or several joined by trailing
// backslashes, with the number of its first physical line.
type logicalLine struct {
	text   string
	number int
}

// joinContinuations merges lines ending with "\" into the following
// line, as pip does.
func joinContinuations(raw []string) []logicalLine {
	lines := make([]logicalLine, 0, len(raw))

	for i := 0; i < len(raw); i++ {
		text := raw[i]
		number := i + 1
		for strings.HasSuffix(text, `\`) && i+1 < len(raw) {
			text = strings.TrimSuffix(text, `\`) + strings.TrimSpace(raw[i+1])
			i++
		}
		lines = append(lines, logicalLine{text: text, number: number})
	}

	return lines
}
