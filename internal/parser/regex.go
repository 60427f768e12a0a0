package parser

import (
	"regexp"
	"sort"
	"strings"
)

// matchNothing is the sentinel for disabled matchers: `\z` only matches
// at end of input and `.` then demands one more character, so the whole
// expression can never succeed.
var matchNothing = regexp.MustCompile(`\z.`)

var (
	mentionsRe = regexp.MustCompile(`@([\w-]+)`)
	urlRe      = regexp.MustCompile(`\b[a-zA-Z][\w+.-]*://\S+`)
)

// matchers is the full regex set derived from one Options value.
type matchers struct {
	notes *regexp.Regexp

	// actions segments reference text into (action, sentence) pairs.
	// Nil means no actions are configured and whole inputs are treated
	// as single actionless sentences.
	actions *regexp.Regexp

	referenceParts *regexp.Regexp

	mentions *regexp.Regexp
	url      *regexp.Regexp
}

func newMatchers(opts *Options) *matchers {
	return &matchers{
		notes:          notesRegex(opts.NoteKeywords),
		actions:        actionsRegex(opts.ReferenceActions),
		referenceParts: referencePartsRegex(opts.IssuePrefixes, opts.IssuePrefixesCaseSensitive),
		mentions:       mentionsRe,
		url:            urlRe,
	}
}

func notesRegex(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return matchNothing
	}
	return regexp.MustCompile(`^[\s|*]*(` + alternation(keywords) + `)[:\s]+(.*)`)
}

// actionsRegex matches any configured action verb. The source grammar
// terminated sentences with a lookahead, which RE2 does not implement;
// instead the resolver slices sentences between consecutive action
// matches, so this only needs to locate the verbs themselves.
func actionsRegex(actions []string) *regexp.Regexp {
	if len(actions) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)(` + alternation(actions) + `)`)
}

func referencePartsRegex(prefixes []string, caseSensitive bool) *regexp.Regexp {
	if len(prefixes) == 0 {
		return matchNothing
	}
	flags := "(?i)"
	if caseSensitive {
		flags = ""
	}
	return regexp.MustCompile(flags + `(?:.*?)??\s*([\w\-./]*?)??(` + alternation(prefixes) + `)([\w-]+)`)
}

// alternation joins literals into a regex alternation, longest first.
// RE2 alternation is preference-ordered and does not backtrack, so
// without the sort "closes" would never win against "close".
func alternation(literals []string) string {
	quoted := make([]string, 0, len(literals))
	for _, l := range literals {
		quoted = append(quoted, regexp.QuoteMeta(l))
	}
	sort.SliceStable(quoted, func(i, j int) bool {
		return len(quoted[i]) > len(quoted[j])
	})
	return strings.Join(quoted, "|")
}
