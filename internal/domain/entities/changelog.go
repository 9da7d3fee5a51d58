package entities

import "strings"

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	h2Prefix          = "## ["
	bulletPrefix      = "- "
)

// InsertChangelogEntry inserts bullet entries into the "## [Unreleased]"
// / "### Changed" section of a Keep-a-Changelog formatted string. The
// content is returned unchanged when no Unreleased section exists; a
// missing "### Changed" subsection is created right after the
// Unreleased heading.
func InsertChangelogEntry(content string, entries []string) string {
	if len(entries) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")

	unreleasedIdx := findLine(lines, 0, len(lines), func(line string) bool {
		return line == unreleasedHeading
	})
	if unreleasedIdx < 0 {
		return content // no Unreleased section
	}

	// The Unreleased section ends at the next version heading or EOF.
	sectionEnd := findLine(lines, unreleasedIdx+1, len(lines), func(line string) bool {
		return strings.HasPrefix(line, h2Prefix)
	})
	if sectionEnd < 0 {
		sectionEnd = len(lines)
	}

	changedIdx := findLine(lines, unreleasedIdx+1, sectionEnd, func(line string) bool {
		return line == changedSubheading
	})

	if changedIdx >= 0 {
		insertAfter := lastBulletIndex(lines, changedIdx, sectionEnd)
		return strings.Join(insertLines(lines, insertAfter+1, entries), "\n")
	}

	// No ### Changed subsection yet.
	block := append([]string{"", changedSubheading, ""}, entries...)
	return strings.Join(insertLines(lines, unreleasedIdx+1, block), "\n")
}

// findLine returns the index of the first line in [start, end) whose
// trimmed content satisfies match, or -1.
func findLine(lines []string, start, end int, match func(string) bool) int {
	for i := start; i < end; i++ {
		if match(strings.TrimSpace(lines[i])) {
			return i
		}
	}
	return -1
}

// lastBulletIndex returns the index of the last bullet line in the
// subsection starting at changedIdx.
func lastBulletIndex(lines []string, changedIdx, end int) int {
	insertAfter := changedIdx
	for i := changedIdx + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue // blank lines between bullets
		}
		if !strings.HasPrefix(trimmed, bulletPrefix) {
			break // another subsection heading or prose
		}
		insertAfter = i
	}
	return insertAfter
}

// insertLines inserts extra lines into the slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
