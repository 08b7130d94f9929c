//go:build unit

package entities_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

func TestTransformFileOptionToTestGlob(t *testing.T) {
	t.Parallel()

	modules := filepath.Join(workDir, "node_modules")
	tests := []struct {
		name   string
		option string
		manual bool
		want   string
	}{
		{
			name:   "whole package",
			option: "engine",
			want:   filepath.Join(modules, "ckeditor5-engine", "tests", "**", "*.js"),
		},
		{
			name:   "package subdirectory",
			option: "engine/view",
			want:   filepath.Join(modules, "ckeditor5-engine", "tests", "view", "**", "*.js"),
		},
		{
			name:   "single file",
			option: "engine/view/node.js",
			want:   filepath.Join(modules, "ckeditor5-engine", "tests", "view", "node.js"),
		},
		{
			name:   "current package",
			option: "/",
			want:   filepath.Join(workDir, "tests", "**", "*.js"),
		},
		{
			name:   "every package",
			option: "*",
			want:   filepath.Join(modules, "ckeditor5-*", "tests", "**", "*.js"),
		},
		{
			name:   "manual tests of a package",
			option: "engine",
			manual: true,
			want:   filepath.Join(modules, "ckeditor5-engine", "tests", "manual", "**", "*.js"),
		},
		{
			name:   "manual tests of the current package",
			option: "/",
			manual: true,
			want:   filepath.Join(workDir, "tests", "manual", "**", "*.js"),
		},
		{
			name:   "absolute path",
			option: "/tmp/custom/tests/a.js",
			want:   "/tmp/custom/tests/a.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given / when
			got := entities.TransformFileOptionToTestGlob(tt.option, workDir, "ckeditor5", tt.manual)

			// then
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceDirectoryForGlob(t *testing.T) {
	t.Parallel()

	t.Run("should point at the src directory next to tests", func(t *testing.T) {
		t.Parallel()

		// given
		glob := filepath.Join(workDir, "node_modules", "ckeditor5-engine", "tests", "view", "**", "*.js")

		// when
		dir := entities.SourceDirectoryForGlob(glob)

		// then
		assert.Equal(t, filepath.Join(workDir, "node_modules", "ckeditor5-engine", "src"), dir)
	})

	t.Run("should fall back to the glob directory", func(t *testing.T) {
		t.Parallel()

		// given
		glob := "/tmp/custom/a.js"

		// when
		dir := entities.SourceDirectoryForGlob(glob)

		// then
		assert.Equal(t, "/tmp/custom/src", dir)
	})
}

func TestWatchRootsForGlob(t *testing.T) {
	t.Parallel()

	enginePackage := filepath.Join(workDir, "node_modules", "ckeditor5-engine")

	tests := []struct {
		name string
		glob string
		want []string
	}{
		{
			name: "should watch the sources and manual tests of a package",
			glob: entities.TransformFileOptionToTestGlob("engine", workDir, "ckeditor5", true),
			want: []string{filepath.Join(enginePackage, "src"), filepath.Join(enginePackage, "tests", "manual")},
		},
		{
			name: "should keep the package wildcard",
			glob: entities.TransformFileOptionToTestGlob("*", workDir, "ckeditor5", true),
			want: []string{
				filepath.Join(workDir, "node_modules", "ckeditor5-*", "src"),
				filepath.Join(workDir, "node_modules", "ckeditor5-*", "tests", "manual"),
			},
		},
		{
			name: "should watch the static part of a custom glob",
			glob: "/tmp/custom/**/*.js",
			want: []string{"/tmp/custom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			got := entities.WatchRootsForGlob(tt.glob)

			// then
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasGlobMeta(t *testing.T) {
	t.Parallel()

	t.Run("should detect wildcards", func(t *testing.T) {
		t.Parallel()

		// when / then
		assert.True(t, entities.HasGlobMeta("/w/node_modules/ckeditor5-*/src"))
		assert.False(t, entities.HasGlobMeta("/w/node_modules/ckeditor5-engine/src"))
	})
}
