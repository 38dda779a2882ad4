package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	root := NewRootCmd("1.2.3")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCreatesSkeleton(t *testing.T) {
	base := t.TempDir()

	out, err := execute(t, "--dir", base)
	require.NoError(t, err)
	assert.Contains(t, out, "Creating app structure in: "+base)
	assert.Contains(t, out, "App structure setup complete!")

	for _, p := range []string{
		"app/utils/kite_window_calculator.py",
		"app/routers/kitespots.py",
		"app/__init__.py",
	} {
		info, err := os.Stat(filepath.Join(base, p))
		require.NoError(t, err, p)
		assert.True(t, info.Mode().IsRegular(), p)
	}
}

func TestRootFilePermFlag(t *testing.T) {
	base := t.TempDir()

	_, err := execute(t, "-C", base, "-q", "--file-perm", "600")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(base, "app", "__init__.py"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRootDryRun(t *testing.T) {
	base := t.TempDir()

	out, err := execute(t, "-C", base, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would create file: "+filepath.Join(base, "app", "__init__.py"))

	_, err = os.Stat(filepath.Join(base, "app"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootRejectsArgsAndBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "positional arg", args: []string{"somewhere"}},
		{name: "bad dir perm", args: []string{"--dir-perm", "rwx"}},
		{name: "perm too wide", args: []string{"--file-perm", "07777"}},
		{name: "zero file perm", args: []string{"--file-perm", "0"}},
		{name: "zero dir perm", args: []string{"--dir-perm", "000"}},
		{name: "verbose and quiet", args: []string{"-v", "-q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-C", t.TempDir()}, tt.args...)
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestParsePerm(t *testing.T) {
	tests := []struct {
		in       string
		expected os.FileMode
		wantErr  bool
	}{
		{in: "", expected: 0o755},
		{in: "0755", expected: 0o755},
		{in: "755", expected: 0o755},
		{in: "0o700", expected: 0o700},
		{in: " 0644 ", expected: 0o644},
		{in: "9", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1777", wantErr: true},
		{in: "0", wantErr: true},
		{in: "000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePerm(tt.in, 0o755)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
