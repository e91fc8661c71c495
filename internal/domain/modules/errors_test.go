package modules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "not found",
			err:      &NotFoundError{Specifier: "lodash"},
			contains: []string{"module not found", "lodash"},
		},
		{
			name:     "resolution with cause",
			err:      &ResolutionError{Specifier: "/a.js", Err: errors.New("read failed")},
			contains: []string{"/a.js", "read failed"},
		},
		{
			name:     "parse",
			err:      &ParseError{Reason: "invalid import map JSON"},
			contains: []string{"parse error", "invalid import map JSON"},
		},
		{
			name:     "permission denied reason only",
			err:      &PermissionDeniedError{Reason: "remote modules are disabled"},
			contains: []string{"permission denied", "remote modules are disabled"},
		},
		{
			name:     "network",
			err:      &NetworkError{URL: "https://x.test/m.js", Err: errors.New("timeout")},
			contains: []string{"network error", "https://x.test/m.js", "timeout"},
		},
		{
			name:     "circular",
			err:      &CircularDependencyError{Specifier: "/a.js"},
			contains: []string{"circular dependency", "/a.js"},
		},
		{
			name:     "invalid specifier",
			err:      &InvalidSpecifierError{Specifier: "http://%zz"},
			contains: []string{"invalid module specifier"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("underlying")

	var resolution *ResolutionError
	err := error(&ResolutionError{Specifier: "/a.js", Err: cause})
	require.True(t, errors.As(err, &resolution))
	assert.ErrorIs(t, err, cause)

	err = &PermissionDeniedError{Err: cause}
	assert.ErrorIs(t, err, cause)

	err = &NetworkError{URL: "u", Err: cause}
	assert.ErrorIs(t, err, cause)

	err = &ParseError{Reason: "r", Err: cause}
	assert.ErrorIs(t, err, cause)
}
