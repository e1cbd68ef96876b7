package config

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// LocalConfigName is the per-directory config file name.
const LocalConfigName = ".qs.cfg"

// Discover returns the default config files that exist, highest priority first:
//
//  1. <cwd>/.qs.cfg
//  2. <git source root>/.qs.cfg, when the source root is not cwd
//  3. $XDG_CONFIG_HOME/qs/default.cfg, or $HOME/.config/qs/default.cfg
//
// cwd must be absolute. Only regular files are returned.
func Discover(fsys afero.Fs, getenv func(string) string, cwd string) []string {
	var found []string
	add := func(path string) {
		if isRegularFile(fsys, path) {
			found = append(found, path)
		}
	}

	add(filepath.Join(cwd, LocalConfigName))

	if root, ok := SourceRoot(fsys, cwd); ok && root != filepath.Clean(cwd) {
		add(filepath.Join(root, LocalConfigName))
	}

	if dir := configHome(getenv); dir != "" {
		add(filepath.Join(dir, "qs", "default.cfg"))
	}
	return found
}

// SourceRoot walks up from dir looking for a directory containing .git.
func SourceRoot(fsys afero.Fs, dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		if isDir(fsys, filepath.Join(dir, ".git")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// configHome resolves the XDG config directory.
func configHome(getenv func(string) string) string {
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

func isRegularFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}

// IsReadable reports whether path names an existing regular file.
func IsReadable(fsys afero.Fs, path string) bool {
	return isRegularFile(fsys, path)
}
