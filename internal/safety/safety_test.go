package safety

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "app"},
		{name: "dunder file", input: "__init__.py"},
		{name: "dotfile", input: ".gitignore"},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "dotdot", input: "..", wantErr: true},
		{name: "slash", input: "app/utils", wantErr: true},
		{name: "backslash", input: `app\utils`, wantErr: true},
		{name: "absolute", input: "/etc", wantErr: true},
		{name: "nul", input: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSafeJoin(t *testing.T) {
	got, err := SafeJoin("", "app", "utils")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("app", "utils"), got)

	got, err = SafeJoin("/base", "app", "__init__.py")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/base", "app", "__init__.py"), got)

	_, err = SafeJoin("/base", "..", "etc")
	assert.ErrorIs(t, err, ErrEscapesRoot)

	_, err = SafeJoin("app", "..", "..")
	assert.ErrorIs(t, err, ErrEscapesRoot)
}
