package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		in          string
		contains    []string
		notContains []string
	}{
		{
			name:     "emphasis and lists",
			in:       "Steps:\n\n- **open** the page\n- click `save`",
			contains: []string{"<strong>open</strong>", "<code>save</code>", "<li>"},
		},
		{
			name:        "script is stripped",
			in:          "hello <script>alert(1)</script>",
			contains:    []string{"hello"},
			notContains: []string{"<script>"},
		},
		{
			name:        "javascript links are dropped",
			in:          "[x](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.in)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderer_Empty(t *testing.T) {
	out, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
