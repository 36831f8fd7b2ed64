package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  John@Example.COM ", "john@example.com", false},
		{"a.b+c@sub.example.io", "a.b+c@sub.example.io", false},
		{"", "", true},
		{"no-at-sign", "", true},
		{"user@host", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := NewEmail(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
		})
	}

	e, _ := NewEmail("x@example.com")
	assert.Equal(t, "example.com", e.Domain())
}

func TestNewName(t *testing.T) {
	n, err := NewName(" marie ", "curie")
	require.NoError(t, err)
	assert.Equal(t, "marie curie", n.Full())
	assert.Equal(t, "Marie Curie", n.DisplayName())
	assert.Equal(t, "MC", n.Initials())

	_, err = NewName("M", "Curie")
	assert.Error(t, err)
	_, err = NewName("Marie", strings.Repeat("c", 101))
	assert.Error(t, err)
}

func TestPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"strong", "Abcdef1!", ""},
		{"too short", "Ab1!", "at least 8"},
		{"no upper", "abcdef1!", "uppercase"},
		{"no lower", "ABCDEF1!", "lowercase"},
		{"no digit", "Abcdefg!", "number"},
		{"no special", "Abcdefg1", "special"},
		{"too long", "Aa1!" + strings.Repeat("x", 70), "exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPassword(tt.password, nil)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
