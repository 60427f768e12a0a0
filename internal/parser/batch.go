package parser

import "fmt"

// ErrorPolicy decides what happens when one message in a batch fails to
// parse. Returning nil skips the message and continues; returning an
// error aborts the remainder of the batch with that error.
type ErrorPolicy func(index int, err error) error

// FailFast aborts the batch on the first failure.
func FailFast(index int, err error) error { return err }

// SkipInvalid silently drops messages that fail to parse.
func SkipInvalid(index int, err error) error { return nil }

// ParseBatch parses a sequence of raw messages, applying policy to each
// failure. Commits parsed before an abort are still returned.
func ParseBatch(p *Parser, messages []string, policy ErrorPolicy) ([]*Commit, error) {
	if policy == nil {
		policy = FailFast
	}
	commits := make([]*Commit, 0, len(messages))
	for i, msg := range messages {
		c, err := p.Parse(msg)
		if err != nil {
			if perr := policy(i, err); perr != nil {
				return commits, fmt.Errorf("parsing message %d: %w", i, perr)
			}
			continue
		}
		commits = append(commits, c)
	}
	return commits, nil
}
