// Package parser turns raw commit-message text into structured Commit
// records, driven entirely by a runtime Options configuration.
package parser

import "encoding/json"

// Note is a titled annotation block extracted from the footer,
// e.g. a BREAKING CHANGE paragraph.
type Note struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Reference is a structured pointer to an external issue or PR.
type Reference struct {
	Raw        string  `json:"raw"`
	Action     *string `json:"action"`
	Owner      *string `json:"owner"`
	Repository *string `json:"repository"`
	Prefix     string  `json:"prefix"`
	Issue      string  `json:"issue"`
}

// Commit is the structured record produced by parsing one raw message.
// It is mutated only during its own parse and is not touched afterwards.
type Commit struct {
	Merge      *string
	Header     *string
	Body       *string
	Footer     *string
	Notes      []Note
	Mentions   []string
	References []Reference

	// Revert holds the configured revert correspondence fields
	// (default header, hash). Nil when the message is not a revert.
	Revert map[string]*string

	// Fields holds header/merge correspondence values and any meta
	// fields captured from delimiter blocks, keyed by field name.
	// Kept as an explicit map so configured names can never collide
	// with the fixed record fields above.
	Fields map[string]*string
}

func newCommit() *Commit {
	return &Commit{
		Notes:      []Note{},
		Mentions:   []string{},
		References: []Reference{},
		Fields:     map[string]*string{},
	}
}

// FieldValue looks up a commit value by its configured name: the fixed
// record fields first, then the dynamic field map. Returns nil for
// unknown names, which callers treat the same as an unset value.
func (c *Commit) FieldValue(name string) *string {
	switch name {
	case "merge":
		return c.Merge
	case "header":
		return c.Header
	case "body":
		return c.Body
	case "footer":
		return c.Footer
	}
	return c.Fields[name]
}

// MarshalJSON flattens the dynamic fields to top-level keys next to the
// fixed ones, matching the shape downstream consumers expect. Key order
// is the encoder's sorted map order, so output is deterministic.
func (c *Commit) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"merge":      c.Merge,
		"header":     c.Header,
		"body":       c.Body,
		"footer":     c.Footer,
		"notes":      c.Notes,
		"mentions":   c.Mentions,
		"references": c.References,
		"revert":     c.Revert,
	}
	for k, v := range c.Fields {
		m[k] = v
	}
	return json.Marshal(m)
}

func strptr(s string) *string { return &s }
