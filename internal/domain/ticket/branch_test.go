package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitleForBranch(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fix login page", "fix-login-page"},
		{"Créer l'écran d'accueil", "creer-l-ecran-d-accueil"},
		{"  --Leading and trailing..  ", "leading-and-trailing"},
		{"feature/api//v2 ~ refs^", "feature-api-v2-refs"},
		{"Release 1..2 @{now}", "release-1.2-now"},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := NormalizeTitleForBranch(tt.title)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.True(t, IsValidBranchName(got))
			}
		})
	}
}

func TestBranchName(t *testing.T) {
	assert.Equal(t, "proj-007-fix-login-page", BranchName("PROJ-007", "Fix login page"))
	assert.Equal(t, "proj-008", BranchName("PROJ-008", "!!!"))
}

func TestBranchHashAndTestLink(t *testing.T) {
	hash := BranchHash("proj-007-fix-login-page")
	assert.Len(t, hash, 30)
	assert.Equal(t, hash, BranchHash("proj-007-fix-login-page\n"))

	sub := TestSubdomain("proj-007-fix-login-page")
	assert.Equal(t, "r"+hash, sub)
	assert.LessOrEqual(t, len(sub), 63)

	link := TestLink("proj-007-fix-login-page", "test.example.com")
	assert.Equal(t, "https://"+sub+".test.example.com/", link)
	assert.True(t, strings.HasPrefix(link, "https://r"))
}

func TestIsValidBranchName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"proj-001-fix", true},
		{"feature/login", true},
		{"", false},
		{"@", false},
		{"has space", false},
		{"tilde~", false},
		{"ref@{1}", false},
		{"/leading", false},
		{"trailing/", false},
		{"double//slash", false},
		{"dots..here", false},
		{"ends.", false},
		{"ctrl\x07char", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidBranchName(tt.name))
		})
	}
}
