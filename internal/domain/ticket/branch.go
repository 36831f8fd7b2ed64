package ticket

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const branchHashLength = 30

var (
	branchForbiddenChars = regexp.MustCompile(`[\s~^:?*\[\\]`)
	branchRepeatedDots   = regexp.MustCompile(`\.{2,}`)
	branchRepeatedSlash  = regexp.MustCompile(`/{2,}`)
	branchUnsafeChars    = regexp.MustCompile(`[^a-z0-9.-]`)
	branchRepeatedDashes = regexp.MustCompile(`-{2,}`)
	branchEdgeChars      = regexp.MustCompile(`^[-.]+|[-.]+$`)
	branchInvalidChars   = regexp.MustCompile(`[\x00-\x1f\x7f\s~^:?*\[\\]`)
	subdomainUnsafeChars = regexp.MustCompile(`[^a-z0-9-]`)
)

// stripAccents decomposes runes and drops the combining marks.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeTitleForBranch turns a free-text title into a git-safe branch slug.
func NormalizeTitleForBranch(title string) string {
	result := strings.ToLower(stripAccents(title))
	result = branchForbiddenChars.ReplaceAllString(result, "-")
	result = strings.ReplaceAll(result, "@{", "-")
	result = branchRepeatedDots.ReplaceAllString(result, ".")
	result = branchRepeatedSlash.ReplaceAllString(result, "/")
	result = strings.ReplaceAll(result, "/", "-")
	result = branchUnsafeChars.ReplaceAllString(result, "-")
	result = branchRepeatedDashes.ReplaceAllString(result, "-")
	return branchEdgeChars.ReplaceAllString(result, "")
}

// BranchName suggests a branch for a ticket, e.g. "proj-007-fix-login-page".
func BranchName(key, title string) string {
	slug := NormalizeTitleForBranch(title)
	if slug == "" {
		return strings.ToLower(key)
	}
	return strings.ToLower(key) + "-" + slug
}

// BranchHash returns the first 30 hex characters of the branch's SHA-256.
func BranchHash(branch string) string {
	clean := strings.NewReplacer("\r\n", "", "\n", "").Replace(branch)
	sum := sha256.Sum256([]byte(clean))
	return hex.EncodeToString(sum[:])[:branchHashLength]
}

// TestSubdomain derives a DNS label for the review environment of a branch.
func TestSubdomain(branch string) string {
	label := subdomainUnsafeChars.ReplaceAllString("r"+BranchHash(branch), "")
	label = strings.Trim(label, "-")
	if len(label) > 63 {
		label = label[:63]
	}
	return label
}

// TestLink builds the review environment URL of a branch under domain.
func TestLink(branch, domain string) string {
	return fmt.Sprintf("https://%s.%s/", TestSubdomain(branch), strings.Trim(domain, "."))
}

// IsValidBranchName applies git's ref naming rules.
func IsValidBranchName(name string) bool {
	switch {
	case name == "" || name == "@":
		return false
	case branchInvalidChars.MatchString(name):
		return false
	case strings.Contains(name, "@{"):
		return false
	case strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/"):
		return false
	case strings.Contains(name, "//") || strings.Contains(name, ".."):
		return false
	case strings.HasSuffix(name, "."):
		return false
	}
	return true
}
