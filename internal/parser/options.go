package parser

// Options configures every matcher the parser builds. Patterns are held
// as strings and compiled once by New; correspondence lists are resolved
// to ordered (name, capture group) bindings at the same time. The struct
// is read-only after it is handed to New.
type Options struct {
	// NoteKeywords are the phrases that open a note block, e.g.
	// "BREAKING CHANGE". Empty disables note extraction.
	NoteKeywords []string

	// IssuePrefixes are the tokens that introduce an issue id, e.g. "#"
	// or "gh-". Empty disables reference extraction.
	IssuePrefixes              []string
	IssuePrefixesCaseSensitive bool

	// ReferenceActions are the verbs that bind a reference to an action,
	// e.g. "closes". Empty makes every reference actionless.
	ReferenceActions []string

	HeaderPattern        string
	HeaderCorrespondence []string

	// BreakingHeaderPattern, when set, is tried before HeaderPattern and
	// also re-checked against the header to synthesize a breaking note.
	BreakingHeaderPattern string

	MergePattern        string
	MergeCorrespondence []string

	RevertPattern        string
	RevertCorrespondence []string

	// FieldPattern delimits meta-field blocks, default `^-(.*?)-$`.
	FieldPattern string

	// CommentChar, when non-empty, removes comment lines and truncates
	// everything below the scissor sentinel.
	CommentChar string
}

// DefaultOptions returns the conventional-commits configuration.
func DefaultOptions() *Options {
	return &Options{
		NoteKeywords:  []string{"BREAKING CHANGE", "BREAKING-CHANGE"},
		IssuePrefixes: []string{"#"},
		ReferenceActions: []string{
			"close", "closes", "closed",
			"fix", "fixes", "fixed",
			"resolve", "resolves", "resolved",
		},
		HeaderPattern:         `^(\w*)(?:\(([\w\$\.\-\* ]*)\))?\: (.*)$`,
		HeaderCorrespondence:  []string{"type", "scope", "subject"},
		BreakingHeaderPattern: `^(\w*)(?:\((.*)\))?!: (.*)$`,
		RevertPattern:         `(?i)^(?:Revert|revert:)\s"?([\s\S]+?)"?\s*This reverts commit (\w*)\.`,
		RevertCorrespondence:  []string{"header", "hash"},
		FieldPattern:          `^-(.*?)-$`,
	}
}

// fieldBinding maps one regex capture group onto one named commit field.
type fieldBinding struct {
	name  string
	group int
}

// bindFields resolves a correspondence list into positional bindings,
// group 1 for the first name and so on.
func bindFields(names []string) []fieldBinding {
	bindings := make([]fieldBinding, 0, len(names))
	for i, name := range names {
		bindings = append(bindings, fieldBinding{name: name, group: i + 1})
	}
	return bindings
}
