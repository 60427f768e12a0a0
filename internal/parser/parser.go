package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Parser parses raw commit messages according to one fixed Options
// value. A Parser is immutable after New and safe for concurrent use;
// each Parse call works on its own state only.
type Parser struct {
	opts *Options
	re   *matchers

	header   *regexp.Regexp
	breaking *regexp.Regexp
	merge    *regexp.Regexp
	revert   *regexp.Regexp
	field    *regexp.Regexp

	headerFields []fieldBinding
	mergeFields  []fieldBinding
	revertFields []fieldBinding
}

// New compiles the configured patterns. Pattern compile failures are the
// only error; absent optional patterns simply contribute nothing.
func New(opts *Options) (*Parser, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	p := &Parser{
		opts:         opts,
		re:           newMatchers(opts),
		headerFields: bindFields(opts.HeaderCorrespondence),
		mergeFields:  bindFields(opts.MergeCorrespondence),
		revertFields: bindFields(opts.RevertCorrespondence),
	}

	var err error
	if p.header, err = compileOptional("header", opts.HeaderPattern); err != nil {
		return nil, err
	}
	if p.breaking, err = compileOptional("breaking header", opts.BreakingHeaderPattern); err != nil {
		return nil, err
	}
	if p.merge, err = compileOptional("merge", opts.MergePattern); err != nil {
		return nil, err
	}
	if p.revert, err = compileOptional("revert", opts.RevertPattern); err != nil {
		return nil, err
	}
	if p.field, err = compileOptional("field", opts.FieldPattern); err != nil {
		return nil, err
	}
	return p, nil
}

func compileOptional(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling %s pattern: %w", name, err)
	}
	return re, nil
}

// Parse turns one raw message into a Commit. The only failure is
// empty or whitespace-only input.
func (p *Parser) Parse(raw string) (*Commit, error) {
	cur, err := scanLines(raw, p.opts.CommentChar)
	if err != nil {
		return nil, err
	}

	c := newCommit()
	for _, b := range p.headerFields {
		c.Fields[b.name] = nil
	}
	for _, b := range p.mergeFields {
		c.Fields[b.name] = nil
	}

	// Merge line, if any, comes before the header and may be separated
	// from it by blank lines.
	if line, ok := cur.peek(); ok && p.merge != nil {
		if m := p.merge.FindStringSubmatch(line); m != nil {
			cur.next()
			c.Merge = strptr(line)
			assignFields(c, p.mergeFields, m)
			cur.skipBlank()
		}
	}

	if line, ok := cur.next(); ok && c.Header == nil {
		c.Header = strptr(line)
	}

	if c.Header != nil {
		var m []string
		if p.breaking != nil {
			m = p.breaking.FindStringSubmatch(*c.Header)
		}
		if m == nil && p.header != nil {
			m = p.header.FindStringSubmatch(*c.Header)
		}
		if m != nil {
			assignFields(c, p.headerFields, m)
		}
		c.References = append(c.References, p.parseReferences(*c.Header)...)
	}

	p.scanBodyFooter(c, cur)

	// A breaking header with no explicit note block still earns a note.
	if p.breaking != nil && len(c.Notes) == 0 && c.Header != nil {
		if m := p.breaking.FindStringSubmatch(*c.Header); m != nil {
			c.Notes = append(c.Notes, Note{Title: "BREAKING CHANGE", Text: m[len(m)-1]})
		}
	}

	// Mentions and revert detection run over the original raw input,
	// not the surviving lines.
	for _, m := range p.re.mentions.FindAllStringSubmatch(raw, -1) {
		c.Mentions = append(c.Mentions, m[1])
	}
	if p.revert != nil {
		if m := p.revert.FindStringSubmatch(raw); m != nil {
			c.Revert = map[string]*string{}
			for _, b := range p.revertFields {
				if b.group < len(m) && m[b.group] != "" {
					c.Revert[b.name] = strptr(m[b.group])
				} else {
					c.Revert[b.name] = nil
				}
			}
		}
	}

	c.Body = trimmedOrNil(c.Body)
	c.Footer = trimmedOrNil(c.Footer)
	for i := range c.Notes {
		c.Notes[i].Text = strings.Trim(c.Notes[i].Text, "\r\n")
	}
	return c, nil
}

// scanBodyFooter drives the per-line loop over everything below the
// header: meta-field blocks, note blocks with their continuations, and
// the body/footer split. The note-continuation recursion of the source
// grammar is flattened into loop state here, so message length never
// grows the call stack.
func (p *Parser) scanBodyFooter(c *Commit, cur *lineCursor) {
	var (
		currentField string
		continueNote bool
		isBody       = true
	)

	for {
		line, ok := cur.next()
		if !ok {
			break
		}

		// Meta fields win over everything. Once a delimiter has been
		// seen, every following non-delimiter line feeds the current
		// field until another delimiter or end of input.
		if p.field != nil {
			if m := p.field.FindStringSubmatch(line); m != nil {
				currentField = m[1]
				continue
			}
			if currentField != "" {
				appendField(c, currentField, line)
				continue
			}
		}

		if continueNote {
			if m := p.re.notes.FindStringSubmatch(line); m != nil {
				appendLine(&c.Footer, line)
				c.Notes = append(c.Notes, Note{Title: m[1], Text: m[2]})
				continue
			}
			refs := p.parseReferences(line)
			if len(refs) == 0 {
				note := &c.Notes[len(c.Notes)-1]
				note.Text = joinLine(note.Text, line)
				appendLine(&c.Footer, line)
				continue
			}
			// References close the open note.
			c.References = append(c.References, refs...)
			appendLine(&c.Footer, line)
			continueNote = false
			isBody = false
			continue
		}

		if m := p.re.notes.FindStringSubmatch(line); m != nil {
			continueNote = true
			isBody = false
			appendLine(&c.Footer, line)
			c.Notes = append(c.Notes, Note{Title: m[1], Text: m[2]})
			continue
		}

		if refs := p.parseReferences(line); len(refs) > 0 {
			// First reference permanently ends body accumulation.
			isBody = false
			c.References = append(c.References, refs...)
			appendLine(&c.Footer, line)
			continue
		}

		if isBody {
			appendLine(&c.Body, line)
		} else {
			appendLine(&c.Footer, line)
		}
	}
}

func assignFields(c *Commit, bindings []fieldBinding, m []string) {
	for _, b := range bindings {
		if b.group < len(m) && m[b.group] != "" {
			c.Fields[b.name] = strptr(m[b.group])
		} else {
			c.Fields[b.name] = nil
		}
	}
}

func appendField(c *Commit, name, line string) {
	if existing := c.Fields[name]; existing != nil {
		c.Fields[name] = strptr(*existing + "\n" + line)
		return
	}
	c.Fields[name] = strptr(line)
}

// appendLine grows a nullable multi-line value by one line.
func appendLine(dst **string, line string) {
	if *dst == nil {
		*dst = strptr(line)
		return
	}
	*dst = strptr(**dst + "\n" + line)
}

func joinLine(text, line string) string {
	if text == "" {
		return line
	}
	return text + "\n" + line
}

// trimmedOrNil strips surrounding blank lines, collapsing values that
// were nothing but blanks back to nil.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.Trim(*s, "\r\n")
	if t == "" {
		return nil
	}
	return strptr(t)
}
