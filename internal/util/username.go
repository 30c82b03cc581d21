package util

import "strings"

// maxDerivedLength caps a derived username well under the profile limit so a
// collision suffix still fits.
const maxDerivedLength = 24

// DeriveUsername builds a default username from an account email: the local
// part (before the @), stripped of any character outside [A-Za-z0-9_],
// truncated to 24 characters and lower-cased. When nothing survives the
// stripping, the fallback (the principal's id) is used instead.
func DeriveUsername(email, fallback string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	base := NormalizeUsername(local)
	if base == "" {
		base = NormalizeUsername(fallback)
	}
	if base == "" {
		base = fallback
	}
	return base
}

// NormalizeUsername maps whitespace to underscores, strips the remaining
// characters outside [A-Za-z0-9_], truncates to 24 characters and lower-cases
// the result.
func NormalizeUsername(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			b.WriteByte('_')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > maxDerivedLength {
		out = out[:maxDerivedLength]
	}
	return strings.ToLower(out)
}
