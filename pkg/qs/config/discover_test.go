package config_test

import (
	"testing"

	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	getenv := func(k string) string {
		if k == "HOME" {
			return "/home/me"
		}
		return ""
	}

	tests := []struct {
		name  string
		files []string
		dirs  []string
		cwd   string
		want  []string
	}{
		{
			name: "nothing",
			cwd:  "/work",
		},
		{
			name:  "cwd only",
			files: []string{"/work/.qs.cfg"},
			cwd:   "/work",
			want:  []string{"/work/.qs.cfg"},
		},
		{
			name:  "all three in priority order",
			files: []string{"/home/me/.config/qs/default.cfg", "/repo/.qs.cfg", "/repo/sub/.qs.cfg"},
			dirs:  []string{"/repo/.git"},
			cwd:   "/repo/sub",
			want:  []string{"/repo/sub/.qs.cfg", "/repo/.qs.cfg", "/home/me/.config/qs/default.cfg"},
		},
		{
			name:  "cwd is the source root",
			files: []string{"/repo/.qs.cfg"},
			dirs:  []string{"/repo/.git"},
			cwd:   "/repo",
			want:  []string{"/repo/.qs.cfg"},
		},
		{
			name: "directory named like a config is skipped",
			dirs: []string{"/work/.qs.cfg"},
			cwd:  "/work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			for _, d := range tt.dirs {
				require.NoError(t, fsys.MkdirAll(d, 0o755))
			}
			for _, f := range tt.files {
				writeFile(t, fsys, f, "a = echo a\n")
			}
			require.NoError(t, fsys.MkdirAll(tt.cwd, 0o755))

			assert.Equal(t, tt.want, config.Discover(fsys, getenv, tt.cwd))
		})
	}
}

func TestDiscover_XDG(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/xdg/qs/default.cfg", "a = echo a\n")
	writeFile(t, fsys, "/home/me/.config/qs/default.cfg", "a = echo a\n")

	getenv := func(k string) string {
		return map[string]string{"XDG_CONFIG_HOME": "/xdg", "HOME": "/home/me"}[k]
	}
	assert.Equal(t, []string{"/xdg/qs/default.cfg"}, config.Discover(fsys, getenv, "/"))
}

func TestSourceRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/repo/.git", 0o755))
	require.NoError(t, fsys.MkdirAll("/repo/a/b", 0o755))

	root, ok := config.SourceRoot(fsys, "/repo/a/b")
	require.True(t, ok)
	assert.Equal(t, "/repo", root)

	_, ok = config.SourceRoot(fsys, "/elsewhere")
	assert.False(t, ok)
}

func TestIsReadable(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/a.cfg", "")
	require.NoError(t, fsys.MkdirAll("/dir", 0o755))

	assert.True(t, config.IsReadable(fsys, "/a.cfg"))
	assert.False(t, config.IsReadable(fsys, "/dir"))
	assert.False(t, config.IsReadable(fsys, "/none"))
}
