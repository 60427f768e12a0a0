package parser

import (
	"regexp"
	"strings"
)

var (
	lineSplitRe = regexp.MustCompile(`\r?\n`)

	// gpgRe matches signature-tool chatter injected into messages by
	// `git commit -S` setups. Removed regardless of configuration.
	gpgRe = regexp.MustCompile(`^\s*gpg:`)
)

const scissorBody = " ------------------------ >8 ------------------------"

// lineCursor is an ordered, indexable view over the normalized lines of
// one message, with an explicit read position.
type lineCursor struct {
	lines []string
	pos   int
}

func (c *lineCursor) next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

func (c *lineCursor) peek() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos], true
}

// skipBlank advances the cursor past consecutive empty lines.
func (c *lineCursor) skipBlank() {
	for c.pos < len(c.lines) && c.lines[c.pos] == "" {
		c.pos++
	}
}

// scanLines normalizes raw message text into clean ordered lines:
// surrounding line terminators are trimmed, everything at and below the
// scissor sentinel is dropped and comment lines are removed when a
// comment character is configured, and gpg chatter always goes.
// Internal blank lines are preserved.
func scanLines(raw, commentChar string) (*lineCursor, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &InvalidInputError{}
	}

	lines := lineSplitRe.Split(strings.Trim(raw, "\r\n"), -1)

	if commentChar != "" {
		scissor := commentChar + scissorBody
		for i, line := range lines {
			if line == scissor {
				lines = lines[:i]
				break
			}
		}
		kept := lines[:0]
		for _, line := range lines {
			if !strings.HasPrefix(line, commentChar) {
				kept = append(kept, line)
			}
		}
		lines = kept
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !gpgRe.MatchString(line) {
			kept = append(kept, line)
		}
	}

	return &lineCursor{lines: kept}, nil
}
