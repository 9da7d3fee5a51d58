package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/reqlint/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RequirementBuilder helps create test requirements with a fluent interface.
type RequirementBuilder struct {
	*testkit.BaseBuilder
	name     string
	extras   []string
	operator string
	version  string
	marker   string
	comment  string
	line     int
}

// NewRequirementBuilder creates a new requirement builder with sensible defaults.
func NewRequirementBuilder() *RequirementBuilder {
	return &RequirementBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "attrs",
		operator:    "==",
		version:     "25.3.0",
		line:        1,
	}
}

// WithName sets the package name.
func (b *RequirementBuilder) WithName(name string) *RequirementBuilder {
	b.name = name
	return b
}

// WithExtras sets the extras list.
func (b *RequirementBuilder) WithExtras(extras ...string) *RequirementBuilder {
	b.extras = extras
	return b
}

// WithPin sets an exact version pin.
func (b *RequirementBuilder) WithPin(version string) *RequirementBuilder {
	b.operator = "=="
	b.version = version
	return b
}

// WithConstraint sets an arbitrary operator and version.
func (b *RequirementBuilder) WithConstraint(operator, version string) *RequirementBuilder {
	b.operator = operator
	b.version = version
	return b
}

// Bare clears the constraint, producing a bare-name record.
func (b *RequirementBuilder) Bare() *RequirementBuilder {
	b.operator = ""
	b.version = ""
	return b
}

// WithMarker sets the environment marker.
func (b *RequirementBuilder) WithMarker(marker string) *RequirementBuilder {
	b.marker = marker
	return b
}

// WithComment sets the trailing comment.
func (b *RequirementBuilder) WithComment(comment string) *RequirementBuilder {
	b.comment = comment
	return b
}

// WithLine sets the line number.
func (b *RequirementBuilder) WithLine(line int) *RequirementBuilder {
	b.line = line
	return b
}

// Build creates the requirement (satisfies testkit.Builder interface).
func (b *RequirementBuilder) Build() interface{} {
	return b.BuildRequirement()
}

// BuildRequirement creates the requirement with a concrete return type.
func (b *RequirementBuilder) BuildRequirement() entities.Requirement {
	return entities.Requirement{
		Name:     b.name,
		Extras:   b.extras,
		Operator: b.operator,
		Version:  b.version,
		Marker:   b.marker,
		Comment:  b.comment,
		Line:     b.line,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RequirementBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "attrs"
	b.extras = nil
	b.operator = "=="
	b.version = "25.3.0"
	b.marker = ""
	b.comment = ""
	b.line = 1
	return b
}

// Clone creates a deep copy of the RequirementBuilder.
func (b *RequirementBuilder) Clone() testkit.Builder {
	extras := make([]string, len(b.extras))
	copy(extras, b.extras)
	return &RequirementBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		extras:      extras,
		operator:    b.operator,
		version:     b.version,
		marker:      b.marker,
		comment:     b.comment,
		line:        b.line,
	}
}
