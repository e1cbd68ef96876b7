package config_test

import (
	"errors"
	"testing"

	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCfg(t *testing.T) {
	data := []byte(`
# Opens Google in a browser
engine := google
search = xdg-open https://www.${engine}.com/${0?}?q=${0}${end}

    indented = echo "indented"
	tabbed=echo tabbed
greet   =   echo "Hello ${name}!"
`)

	f, err := config.ParseCfg("/cfg/.qs.cfg", data)
	require.NoError(t, err)

	assert.Equal(t, "/cfg/.qs.cfg", f.Path)
	assert.Equal(t, []string{"search", "indented", "tabbed", "greet"}, f.Names())

	search, ok := f.Lookup("search")
	require.True(t, ok)
	assert.Equal(t, "xdg-open https://www.${engine}.com/${0?}?q=${0}${end}", search.Template)
	assert.Equal(t, 4, search.Line)

	greet, _ := f.Lookup("greet")
	assert.Equal(t, `echo "Hello ${name}!"`, greet.Template)

	v, ok := f.Vars.Get("engine")
	require.True(t, ok)
	assert.Equal(t, "google", v)

	_, ok = f.Lookup("engine")
	assert.False(t, ok)
	assert.Empty(t, f.Warnings)
}

func TestParseCfg_CRLF(t *testing.T) {
	f, err := config.ParseCfg("win.cfg", []byte("a = echo a\r\nb := 1\r\n"))
	require.NoError(t, err)

	a, _ := f.Lookup("a")
	assert.Equal(t, "echo a", a.Template)
	v, _ := f.Vars.Get("b")
	assert.Equal(t, "1", v)
}

func TestParseCfg_Duplicates(t *testing.T) {
	f, err := config.ParseCfg("dup.cfg", []byte("cmd = echo first\ncmd = echo second\n"))
	require.NoError(t, err)

	cmd, _ := f.Lookup("cmd")
	assert.Equal(t, "echo first", cmd.Template)
	assert.Len(t, f.Actions, 1)
	assert.Equal(t, []string{"duplicate action name: cmd (in dup.cfg)"}, f.Warnings)
}

func TestParseCfg_VarOverwrite(t *testing.T) {
	f, err := config.ParseCfg("v.cfg", []byte("x := 1\nx := 2\n"))
	require.NoError(t, err)

	v, _ := f.Vars.Get("x")
	assert.Equal(t, "2", v)
}

func TestParseCfg_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"incomplete", "action", "Expected '=' or ':='"},
		{"missing action value", "action=", "No value after '='"},
		{"missing arg value", "arg:=", "No value after ':='"},
		{"misplaced comment action", "action = # comment", "Action template cannot start with '#'"},
		{"misplaced comment arg", "arg := # comment", "Argument value cannot start with '#'"},
		{"weird char", "!foo = bar", "Unexpected character '!' (33)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := config.ParseCfg("/root/"+tt.name, []byte(tt.content))
			require.Error(t, err)
			assert.Nil(t, f)

			var lerr *config.LineError
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.message, lerr.Message)
			assert.Equal(t, 1, lerr.Line)
			assert.Equal(t, "Error in /root/"+tt.name+": "+tt.message, lerr.Error())
		})
	}
}

func TestParseCfg_ReportsEveryBadLine(t *testing.T) {
	_, err := config.ParseCfg("bad.cfg", []byte("ok = echo\nbad\n# fine\nalsobad =\n"))
	require.Error(t, err)
	assert.Equal(t,
		"Error in bad.cfg: Expected '=' or ':='\nError in bad.cfg: No value after '='",
		err.Error())
}
