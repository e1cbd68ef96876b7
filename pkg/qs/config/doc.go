/*
Package config loads qs action files and user settings.

# Action Files

The native format is the line-oriented .qs.cfg:

	# Opens Google in a browser
	engine := google
	search = xdg-open https://www.${engine}.com/${0?}?q=${0}${end}

Lines of the form "name = template" declare actions; "name := value"
declares a default value for a template variable. Comments start with '#'.
Structured equivalents are accepted by extension (.yaml, .yml, .json, .toml):

	vars:
	  engine: google
	actions:
	  search: xdg-open https://www.${engine}.com/${0?}?q=${0}${end}

	cfg, err := config.FromFile(afero.NewOsFs(), "/home/me/.qs.cfg")

# Discovery

Discover lists the default config files in priority order: the current
directory, the enclosing git source root, then the XDG config home.
All filesystem access goes through afero so tests can use an in-memory fs.

# Settings

Settings for qs itself live in $XDG_CONFIG_HOME/qs/settings.yaml:

	shell: zsh
	max_depth: 16
	history: /home/me/.local/state/qs/history.db
	timeout: 5m

Values provides typed access with defaults over the decoded map.
*/
package config
