package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reqlint/internal/domain/commands"
	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/parser"
	testdoubles "github.com/rios0rios0/reqlint/test"
	"github.com/rios0rios0/reqlint/test/domain/entitybuilders"
)

// unsortedResult returns a parsed manifest whose records are out of
// order, so canonical rendering always differs from the raw content.
func unsortedResult(path string) parser.Result {
	return parser.Result{
		Manifest: entities.Manifest{
			Path: path,
			Requirements: []entities.Requirement{
				entitybuilders.NewRequirementBuilder().
					WithName("numpy").WithPin("1.26.4").WithLine(1).
					BuildRequirement(),
				entitybuilders.NewRequirementBuilder().
					WithName("attrs").WithPin("25.3.0").WithLine(2).
					BuildRequirement(),
			},
		},
	}
}

func TestFormatCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should render the canonical form without touching the file", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult:   unsortedResult("/work/requirements.txt"),
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		result, err := command.Execute(t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: "."})

		// then
		require.NoError(t, err)
		assert.Equal(t, "attrs==25.3.0\nnumpy==1.26.4\n", result.Rendered)
		assert.True(t, result.Changed)
		assert.Empty(t, manifests.SavedManifests)
	})

	t.Run("should write the canonical form in write mode", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult:   unsortedResult("/work/requirements.txt"),
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		result, err := command.Execute(
			t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: ".", Write: true},
		)

		// then
		require.NoError(t, err)
		assert.True(t, result.Changed)
		require.Len(t, manifests.SavedManifests, 1)
		assert.Equal(t, "attrs==25.3.0\nnumpy==1.26.4\n", manifests.SavedManifests[0].Render())
	})

	t.Run("should not write an already canonical manifest", func(t *testing.T) {
		t.Parallel()

		// given
		canonical := parser.Parse("attrs==25.3.0\nnumpy==1.26.4\n", "/work/requirements.txt")
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult:   canonical,
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		result, err := command.Execute(
			t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: ".", Write: true},
		)

		// then
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, manifests.SavedManifests)
	})

	t.Run("should fail check mode on a non-canonical manifest", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult:   unsortedResult("/work/requirements.txt"),
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		_, err := command.Execute(
			t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: ".", Check: true},
		)

		// then
		require.ErrorIs(t, err, commands.ErrNotCanonical)
		assert.Empty(t, manifests.SavedManifests)
	})

	t.Run("should pass check mode on a canonical manifest", func(t *testing.T) {
		t.Parallel()

		// given
		canonical := parser.Parse("attrs==25.3.0\nnumpy==1.26.4\n", "/work/requirements.txt")
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult:   canonical,
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		_, err := command.Execute(
			t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: ".", Check: true},
		)

		// then
		require.NoError(t, err)
	})

	t.Run("should change nothing in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult:   unsortedResult("/work/requirements.txt"),
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		result, err := command.Execute(
			t.Context(),
			entities.DefaultSettings(),
			commands.FormatOptions{Path: ".", Write: true, DryRun: true},
		)

		// then
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Empty(t, manifests.SavedManifests)
	})

	t.Run("should refuse to format a manifest with parse errors", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult: parser.Result{
				Findings: []entities.Finding{
					{Rule: entities.RuleParse, Severity: entities.SeverityError, Line: 2},
				},
			},
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		_, err := command.Execute(t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: "."})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "run lint first")
	})

	t.Run("should abort on conflicting pins", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: "/work/requirements.txt",
			LoadResult: parser.Result{
				Manifest: entities.Manifest{
					Requirements: []entities.Requirement{
						entitybuilders.NewRequirementBuilder().WithName("numpy").WithPin("1.26.4").BuildRequirement(),
						entitybuilders.NewRequirementBuilder().WithName("numpy").WithPin("2.0.0").BuildRequirement(),
					},
				},
			},
		}
		command := commands.NewFormatCommand(manifests, &testdoubles.DummyVCSRepository{})

		// when
		_, err := command.Execute(t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: "."})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "conflicting records")
	})

	t.Run("should commit the manifest and the changelog in commit mode", func(t *testing.T) {
		t.Parallel()

		// given: a real directory so the changelog next to the manifest
		// can be rewritten
		dir := t.TempDir()
		manifestPath := filepath.Join(dir, "requirements.txt")
		changelogPath := filepath.Join(dir, "CHANGELOG.md")
		require.NoError(t, os.WriteFile(
			changelogPath,
			[]byte("# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2026-01-01\n"),
			0o600,
		))

		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: manifestPath,
			LoadResult:   unsortedResult(manifestPath),
		}
		vcs := &testdoubles.SpyVCSRepository{Hash: "abc123"}
		command := commands.NewFormatCommand(manifests, vcs)

		// when
		result, err := command.Execute(
			t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: dir, Commit: true},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, "abc123", result.CommitHash)
		require.Len(t, vcs.CommittedFiles, 1)
		assert.Equal(t, []string{manifestPath, changelogPath}, vcs.CommittedFiles[0])
		assert.Equal(t, []string{"chore: canonicalized requirements manifest"}, vcs.CommitMessages)

		changelog, readErr := os.ReadFile(changelogPath)
		require.NoError(t, readErr)
		assert.Contains(t, string(changelog), "### Changed")
		assert.Contains(t, string(changelog), "canonical form")
	})

	t.Run("should commit only the manifest when no changelog exists", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		manifestPath := filepath.Join(dir, "requirements.txt")
		manifests := &testdoubles.SpyManifestRepository{
			ResolvedPath: manifestPath,
			LoadResult:   unsortedResult(manifestPath),
		}
		vcs := &testdoubles.SpyVCSRepository{}
		command := commands.NewFormatCommand(manifests, vcs)

		// when
		_, err := command.Execute(
			t.Context(), entities.DefaultSettings(), commands.FormatOptions{Path: dir, Commit: true},
		)

		// then
		require.NoError(t, err)
		require.Len(t, vcs.CommittedFiles, 1)
		assert.Equal(t, []string{manifestPath}, vcs.CommittedFiles[0])
	})
}
