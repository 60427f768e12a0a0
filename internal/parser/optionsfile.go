package parser

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// optionsFile is the YAML shape of an options document. Pointers and
// nil-able slices distinguish "absent" from explicit zero values, so an
// explicit empty list can disable a default (e.g. `noteKeywords: []`).
type optionsFile struct {
	NoteKeywords               []string `yaml:"noteKeywords"`
	IssuePrefixes              []string `yaml:"issuePrefixes"`
	IssuePrefixesCaseSensitive *bool    `yaml:"issuePrefixesCaseSensitive"`
	ReferenceActions           []string `yaml:"referenceActions"`
	HeaderPattern              *string  `yaml:"headerPattern"`
	HeaderCorrespondence       []string `yaml:"headerCorrespondence"`
	BreakingHeaderPattern      *string  `yaml:"breakingHeaderPattern"`
	MergePattern               *string  `yaml:"mergePattern"`
	MergeCorrespondence        []string `yaml:"mergeCorrespondence"`
	RevertPattern              *string  `yaml:"revertPattern"`
	RevertCorrespondence       []string `yaml:"revertCorrespondence"`
	FieldPattern               *string  `yaml:"fieldPattern"`
	CommentChar                *string  `yaml:"commentChar"`
}

// LoadOptionsFile reads a YAML options document and merges it over the
// defaults. Unknown keys are rejected so typos fail loudly instead of
// silently parsing with defaults.
func LoadOptionsFile(path string) (*Options, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from an explicit user flag
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f optionsFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding options file %s: %w", path, err)
	}

	opts := DefaultOptions()
	if f.NoteKeywords != nil {
		opts.NoteKeywords = f.NoteKeywords
	}
	if f.IssuePrefixes != nil {
		opts.IssuePrefixes = f.IssuePrefixes
	}
	if f.IssuePrefixesCaseSensitive != nil {
		opts.IssuePrefixesCaseSensitive = *f.IssuePrefixesCaseSensitive
	}
	if f.ReferenceActions != nil {
		opts.ReferenceActions = f.ReferenceActions
	}
	if f.HeaderPattern != nil {
		opts.HeaderPattern = *f.HeaderPattern
	}
	if f.HeaderCorrespondence != nil {
		opts.HeaderCorrespondence = f.HeaderCorrespondence
	}
	if f.BreakingHeaderPattern != nil {
		opts.BreakingHeaderPattern = *f.BreakingHeaderPattern
	}
	if f.MergePattern != nil {
		opts.MergePattern = *f.MergePattern
	}
	if f.MergeCorrespondence != nil {
		opts.MergeCorrespondence = f.MergeCorrespondence
	}
	if f.RevertPattern != nil {
		opts.RevertPattern = *f.RevertPattern
	}
	if f.RevertCorrespondence != nil {
		opts.RevertCorrespondence = f.RevertCorrespondence
	}
	if f.FieldPattern != nil {
		opts.FieldPattern = *f.FieldPattern
	}
	if f.CommentChar != nil {
		opts.CommentChar = *f.CommentChar
	}
	return opts, nil
}
