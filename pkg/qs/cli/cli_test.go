package cli_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/quickscripts/pkg/qs/cli"
)

func TestParse_NoArgs(t *testing.T) {
	opts, err := cli.Parse(nil)
	require.NoError(t, err)
	assert.True(t, opts.NoArgs)
}

func TestParse_ActionAndArguments(t *testing.T) {
	opts, err := cli.Parse([]string{"--dry-run", "search", "cats", "--engine", "duck", "dogs", "--verbose"})
	require.NoError(t, err)

	assert.Equal(t, "search", opts.Action)
	assert.True(t, opts.DryRun)
	assert.True(t, opts.Verbose)
	assert.False(t, opts.HasTemplate)
	assert.Equal(t, []string{"0", "engine", "1"}, opts.Vars.Names())

	v, _ := opts.Vars.Get("0")
	assert.Equal(t, "cats", v)
	v, _ = opts.Vars.Get("1")
	assert.Equal(t, "dogs", v)
	v, _ = opts.Vars.Get("engine")
	assert.Equal(t, "duck", v)
}

func TestParse_Template(t *testing.T) {
	opts, err := cli.Parse([]string{"--template", `echo "Hello ${name}!"`, "--name", "Christoffer"})
	require.NoError(t, err)

	assert.True(t, opts.HasTemplate)
	assert.Equal(t, `echo "Hello ${name}!"`, opts.Template)
	assert.Empty(t, opts.Action)
	v, _ := opts.Vars.Get("name")
	assert.Equal(t, "Christoffer", v)
}

func TestParse_TemplateWithEqualsAndDashes(t *testing.T) {
	opts, err := cli.Parse([]string{"--template", "--x=1 ${a}", "--template", "FOO=bar env"})
	require.NoError(t, err)
	assert.Equal(t, "FOO=bar env", opts.Template, "last --template wins")

	opts, err = cli.Parse([]string{"--template", ""})
	require.NoError(t, err)
	assert.True(t, opts.HasTemplate)
	assert.Empty(t, opts.Template)
}

func TestParse_ConfigPriority(t *testing.T) {
	opts, err := cli.Parse([]string{"cmd", "--config", "a", "--config", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, opts.ConfigFiles)
}

func TestParse_Help(t *testing.T) {
	t.Run("before action is global help", func(t *testing.T) {
		opts, err := cli.Parse([]string{"--help", "foo", "--bogus"})
		require.NoError(t, err)
		assert.True(t, opts.ShowHelp)
		assert.False(t, opts.ActionHelp)
		assert.Empty(t, opts.Action)
	})

	t.Run("after action is action help and keeps parsing", func(t *testing.T) {
		opts, err := cli.Parse([]string{"foo", "--help", "--config", "mixed.cfg"})
		require.NoError(t, err)
		assert.False(t, opts.ShowHelp)
		assert.True(t, opts.ActionHelp)
		assert.Equal(t, "foo", opts.Action)
		assert.Equal(t, []string{"mixed.cfg"}, opts.ConfigFiles)
	})
}

func TestParse_VersionStopsParsing(t *testing.T) {
	opts, err := cli.Parse([]string{"--version", "--missing"})
	require.NoError(t, err)
	assert.True(t, opts.ShowVersion)
}

func TestParse_Flags(t *testing.T) {
	opts, err := cli.Parse([]string{"--actions", "--history", "--no-color"})
	require.NoError(t, err)
	assert.True(t, opts.ListActions)
	assert.True(t, opts.ShowHistory)
	assert.True(t, opts.NoColor)
}

func TestParse_NamedVarWithoutAction(t *testing.T) {
	opts, err := cli.Parse([]string{"--foo", "bar"})
	require.NoError(t, err)
	assert.Empty(t, opts.Action)
	assert.False(t, opts.HasTemplate)
	v, _ := opts.Vars.Get("foo")
	assert.Equal(t, "bar", v)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{
			name:    "missing variable value",
			args:    []string{"dummy", "--missing"},
			message: "Missing value for variable 'missing'",
		},
		{
			name:    "missing template",
			args:    []string{"--template"},
			message: "--template should be followed by a template string.",
		},
		{
			name:    "missing config path",
			args:    []string{"cmd", "--config"},
			message: "Argument --config should be followed by a file path.",
		},
		{
			name:    "invalid variable name",
			args:    []string{"cmd", "--1abc", "x"},
			message: "Variable name '1abc' is not a valid name. Variables must start with a letter, and consist only of letters, numbers and '-' and '_' (e.g. --some-variable_1, --NAME1).",
		},
		{
			name:    "invalid action name",
			args:    []string{"do.it"},
			message: "'do.it' is not a valid action name. Action names must start with a letter, followed by letters, numbers, a dash (-) or an underscore (_)",
		},
		{
			name:    "too many positional arguments",
			args:    []string{"cmd", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
			message: `At most 10 positional arguments can be given. Wrap arguments containing spaces in double quotes (").`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := cli.Parse(tt.args)
			assert.Nil(t, opts)

			var uerr *cli.UsageError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, tt.message, uerr.Message)
		})
	}
}

func TestParse_TenPositionalArguments(t *testing.T) {
	opts, err := cli.Parse([]string{"cmd", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j"})
	require.NoError(t, err)
	v, ok := opts.Vars.Get("9")
	require.True(t, ok)
	assert.Equal(t, "j", v)
}
