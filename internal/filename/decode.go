package filename

import (
	"regexp"
	"strings"

	"pdfmatch/internal/profile"
	"pdfmatch/internal/textutil"
)

// IdentifierResolverPrefix is prepended to registrant-relative identifiers.
const IdentifierResolverPrefix = "10.1111/"

// registrantPrefixes are filename starts that omit the registrant part of the
// identifier.
var registrantPrefixes = []string{"isj.", "j.1365-2575"}

var (
	yearInfixPattern    = regexp.MustCompile(`_\d{4}_`)
	yearSuffixPattern   = regexp.MustCompile(`_\d{4}$`)
	encodingArtifactRun = regexp.MustCompile(`#x[0-9a-fA-F]+;`)
)

// DecodeTitle returns the title portion of a filename. With hasYearPattern
// set, the text before the leftmost "_<4 digits>_" run is returned; failing
// that, the text before a trailing "_<4 digits>". Otherwise the name is
// returned unchanged.
func DecodeTitle(name string, hasYearPattern bool) string {
	if !hasYearPattern {
		return name
	}
	if loc := yearInfixPattern.FindStringIndex(name); loc != nil {
		return name[:loc[0]]
	}
	if loc := yearSuffixPattern.FindStringIndex(name); loc != nil {
		return name[:loc[0]]
	}
	return name
}

// StripEncodingArtifacts removes every "#x<hex>;" sequence from name.
func StripEncodingArtifacts(name string) string {
	return encodingArtifactRun.ReplaceAllString(name, "")
}

// DecodeIdentifier expands a filename into a full identifier. Names starting
// with a known registrant-relative prefix gain IdentifierResolverPrefix. Names
// that already start with "10." and names that look like no identifier at all
// pass through unchanged; nothing is validated.
func DecodeIdentifier(name string) string {
	for _, prefix := range registrantPrefixes {
		if strings.HasPrefix(name, prefix) {
			return IdentifierResolverPrefix + name
		}
	}
	return name
}

// MatchText returns the text of name that takes part in matching under p.
func MatchText(name string, p profile.SourceProfile) string {
	if p.UsesIdentifierMatching {
		return DecodeIdentifier(name)
	}
	processed := name
	if p.UsesSpecialEncoding {
		processed = StripEncodingArtifacts(processed)
	}
	return DecodeTitle(processed, p.HasYearPattern)
}

// Key returns the normalized matching key of a filename under p. Digits are
// retained only for identifier matching.
func Key(name string, p profile.SourceProfile) string {
	return textutil.Normalize(MatchText(name, p), p.RetainDigits())
}
