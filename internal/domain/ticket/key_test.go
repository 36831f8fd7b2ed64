package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKey(t *testing.T) {
	assert.Equal(t, "PROJ-001", FormatKey("PROJ", 1))
	assert.Equal(t, "PROJ-042", FormatKey("PROJ", 42))
	assert.Equal(t, "PROJ-1000", FormatKey("PROJ", 1000))
}

func TestParseKeyNumber(t *testing.T) {
	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"PROJ-007", 7, true},
		{"PROJ-1200", 1200, true},
		{"PROJX-007", 0, false},
		{"PRO-007", 0, false},
		{"PROJ-", 0, false},
		{"PROJ-12a", 0, false},
		{"OPS-003", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			n, ok := ParseKeyNumber("PROJ", tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNextKeyNumber(t *testing.T) {
	assert.Equal(t, 1, NextKeyNumber("PROJ", nil))
	assert.Equal(t, 13, NextKeyNumber("PROJ", []string{"PROJ-002", "PROJ-012", "PROJ-9x", "OPS-400"}))
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("PROJ"))
	assert.NoError(t, ValidatePrefix("AB"))
	assert.Error(t, ValidatePrefix("A"))
	assert.Error(t, ValidatePrefix("proj"))
	assert.Error(t, ValidatePrefix("ABCDEFGHIJK"))
}
