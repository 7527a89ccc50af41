package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/regexpr/syntax"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTestCommand(t *testing.T) {
	out, err := run(t, "", "test", "(abc|def)", "abc", "xyz", "xxdefxx")
	require.NoError(t, err)
	assert.Equal(t, "true\nfalse\ntrue\n", out)
}

func TestTestCommandStdin(t *testing.T) {
	out, err := run(t, "abccccdefg\nabcfg\n", "test", "ab(c.*de)fg")
	require.NoError(t, err)
	assert.Equal(t, "true\nfalse\n", out)
}

func TestTestCommandQuiet(t *testing.T) {
	out, err := run(t, "", "test", "-q", "abc", "abd")
	assert.ErrorIs(t, err, errNoMatch)
	assert.Empty(t, out)

	out, err = run(t, "", "test", "-q", "abc", "abd", "abc")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCompileErrorReported(t *testing.T) {
	_, err := run(t, "", "test", "a{2,1}", "aa")
	require.Error(t, err)
	assert.ErrorIs(t, err, syntax.ErrInvalidRepeatSize)
	assert.Contains(t, err.Error(), `compiling "a{2,1}"`)

	_, err = run(t, "", "test", "--max_nesting", "1", "a", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxNesting")
}

func TestFindCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "spans",
			args: []string{"find", "(abc|def)", "abcdefabc", "xyz"},
			want: "Matches of abcdefabc\n[0:3] abc\n[3:6] def\n[6:9] abc\n",
		},
		{
			name: "groups",
			args: []string{"find", "-g", "(a|b)(x)?", "axb"},
			want: "Matches of axb\n[0:2] ax\n  1) \"a\"\n  2) \"x\"\n[2:3] b\n  1) \"b\"\n  2) <unset>\n",
		},
		{
			name: "count",
			args: []string{"find", "-c", "a", "banana", "xyz"},
			want: "3\tbanana\n0\txyz\n",
		},
		{
			name: "limit",
			args: []string{"find", "-n", "1", "a", "banana"},
			want: "Matches of banana\n[1:2] a\n",
		},
		{
			name: "no prefilter",
			args: []string{"find", "--prefilter=false", "ab(c.*){2,3}", "abcc"},
			want: "Matches of abcc\n[0:4] abcc\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestIgnoreCase(t *testing.T) {
	out, err := run(t, "", "test", "abc", "ABC")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, "", "test", "-i", "abc", "ABC")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestIgnoreCaseFromEnv(t *testing.T) {
	t.Setenv("REGEXPR_IGNORE_CASE", "true")
	out, err := run(t, "", "test", "abc", "ABC")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("ignore_case: true\n"), 0o600))

	out, err := run(t, "", "test", "--config", path, "abc", "ABC")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	// Flags take precedence over the file.
	out, err = run(t, "", "test", "--config", path, "--ignore_case=false", "abc", "ABC")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, err = run(t, "", "test", "--config", filepath.Join(t.TempDir(), "missing.yml"), "abc", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestDumpCommand(t *testing.T) {
	out, err := run(t, "", "dump", "abc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pattern: abc\nprefilter: memmem(\"abc\")\n"), out)
}

func TestVersionCommand(t *testing.T) {
	Version = "v9.9.9"
	defer func() { Version = "" }()

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "regexpr v9.9.9 "), out)
}

func TestReplCommand(t *testing.T) {
	input := strings.Join([]string{
		"a(b|c)",
		"xabyac",
		"zzz",
		":pattern",
		"(",
		"d+",
		"ddd",
	}, "\n") + "\n"

	out, err := run(t, input, "repl")
	require.NoError(t, err)

	want := "Enter a regular expression: " +
		"> " +
		"=== Matches ===\n1) ab\n2) ac\n===== Groups ======\n1) \"c\"\n===================\n" +
		"> " +
		"No matches\n" +
		"> " +
		"Enter a regular expression: "
	assert.True(t, strings.HasPrefix(out, want), out)

	assert.Contains(t, out, `Invalid regex: compiling "("`)
	assert.True(t, strings.HasSuffix(out, "> === Matches ===\n1) ddd\n===================\n> \n"), out)
}

func TestEachText(t *testing.T) {
	var got []string
	collect := func(s string) error {
		got = append(got, s)
		return nil
	}

	require.NoError(t, eachText(strings.NewReader("ignored"), []string{"a", "b"}, collect))
	assert.Equal(t, []string{"a", "b"}, got)

	got = nil
	require.NoError(t, eachText(strings.NewReader("x\ny\n\nz"), nil, collect))
	assert.Equal(t, []string{"x", "y", "", "z"}, got)
}
