// Package profile holds the per-source filename naming conventions.
package profile

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SourceProfile describes how one source names its documents.
type SourceProfile struct {
	// HasYearPattern marks names of the form "<title>_<year>_<suffix>".
	HasYearPattern bool
	// UsesIdentifierMatching matches on a DOI-like identifier instead of the title.
	UsesIdentifierMatching bool
	// UsesSpecialEncoding marks names containing "#x<hex>;" escapes.
	UsesSpecialEncoding bool
}

// RetainDigits reports whether normalization keeps digits for this profile.
func (p SourceProfile) RetainDigits() bool {
	return p.UsesIdentifierMatching
}

// MatchColumn picks the dataset column this profile matches against.
func (p SourceProfile) MatchColumn(titleColumn, identifierColumn string) string {
	if p.UsesIdentifierMatching {
		return identifierColumn
	}
	return titleColumn
}

// Describe renders the profile as a short human-readable summary.
func (p SourceProfile) Describe() string {
	mode := "title"
	if p.UsesIdentifierMatching {
		mode = "identifier"
	}
	layout := "plain name"
	if p.HasYearPattern {
		layout = "year pattern"
	}
	out := mode + " matching, " + layout
	if p.UsesSpecialEncoding {
		out += ", encoding artifacts"
	}
	return out
}

// fallback applies to sources absent from every table.
var fallback = SourceProfile{HasYearPattern: true}

var builtins = map[string]SourceProfile{
	"DSS":  {HasYearPattern: true},
	"EJIS": {HasYearPattern: true},
	"IM":   {HasYearPattern: true},
	"IO":   {HasYearPattern: true},
	"JSIS": {HasYearPattern: true},
	"JIT":  {HasYearPattern: true},
	"ISJ":  {UsesIdentifierMatching: true},
	"ISR":  {UsesSpecialEncoding: true},
	"JAIS": {},
	"JMIS": {},
	"MISQ": {},
}

// Builtins returns a copy of the built-in profile table.
func Builtins() map[string]SourceProfile {
	out := make(map[string]SourceProfile, len(builtins))
	for name, p := range builtins {
		out[name] = p
	}
	return out
}

// Fallback returns the profile used for unknown sources.
func Fallback() SourceProfile {
	return fallback
}

// CanonicalName folds a source name for table lookups.
func CanonicalName(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}

// Overrides switches features on for named sources for a single run.
type Overrides struct {
	Identifier []string
	Encoding   []string
}

// Table resolves source names to profiles. A Table is immutable once built.
type Table struct {
	entries    map[string]SourceProfile
	identifier map[string]struct{}
	encoding   map[string]struct{}
}

// NewTable layers custom profiles over the built-ins and records the
// per-run override sets. Custom entries replace built-ins of the same name.
func NewTable(custom map[string]SourceProfile, overrides Overrides) *Table {
	entries := Builtins()
	for name, p := range custom {
		key := CanonicalName(name)
		if key == "" {
			continue
		}
		entries[key] = p
	}
	return &Table{
		entries:    entries,
		identifier: nameSet(overrides.Identifier),
		encoding:   nameSet(overrides.Encoding),
	}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if key := CanonicalName(name); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// Resolve returns the profile for source. Unknown sources get the fallback
// profile; override sets can only switch identifier matching or encoding
// stripping on, never off.
func (t *Table) Resolve(source string) SourceProfile {
	key := CanonicalName(source)
	p, ok := t.entries[key]
	if !ok {
		p = fallback
	}
	if _, ok := t.identifier[key]; ok {
		p.UsesIdentifierMatching = true
	}
	if _, ok := t.encoding[key]; ok {
		p.UsesSpecialEncoding = true
	}
	return p
}

// Known reports whether source has an explicit table entry.
func (t *Table) Known(source string) bool {
	_, ok := t.entries[CanonicalName(source)]
	return ok
}

// Names returns every explicitly configured source name, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
