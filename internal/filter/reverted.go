// Package filter correlates a chronological stream of parsed commits
// and suppresses revert/reverted pairs without reordering survivors.
package filter

import (
	"strings"

	"github.com/bartekus/commitlens/internal/parser"
)

// held is one buffered commit awaiting a survival decision.
type held struct {
	commit   *parser.Commit
	isRevert bool
}

// RevertFilter consumes already-parsed commits in true history order
// and drops matched revert pairs. It buffers only while an unresolved
// revert could still cancel something; everything else flows straight
// through. It never errors: anything it cannot classify is held and
// eventually flushed.
type RevertFilter struct {
	hold             []held
	holdRevertsCount int
}

func New() *RevertFilter {
	return &RevertFilter{}
}

// Process feeds one commit and returns the commits released by it, in
// arrival order. A release decision is irrevocable; a matched pair is
// never released at all.
func (f *RevertFilter) Process(c *parser.Commit) []*parser.Commit {
	// An incoming revert may target a commit still in the hold buffer.
	if c.Revert != nil {
		if i := f.findMatch(func(h held) bool {
			return descriptorMatches(h.commit, c.Revert)
		}); i >= 0 {
			f.remove(i)
			return nil
		}
	}

	// A held revert may have been waiting for this commit.
	if i := f.findMatch(func(h held) bool {
		return h.isRevert && descriptorMatches(c, h.commit.Revert)
	}); i >= 0 {
		f.remove(i)
		return nil
	}

	if c.Revert != nil {
		f.hold = append(f.hold, held{commit: c, isRevert: true})
		f.holdRevertsCount++
		return nil
	}

	// While any revert is unresolved this commit could still be its
	// target's sibling in the buffer order, so hold it speculatively.
	if f.holdRevertsCount > 0 {
		f.hold = append(f.hold, held{commit: c})
		return nil
	}

	out := f.drain()
	return append(out, c)
}

// Flush releases everything still held, in original buffering order.
// Unresolved reverts pass through verbatim.
func (f *RevertFilter) Flush() []*parser.Commit {
	return f.drain()
}

// FilterAll is the slice convenience: process every commit then flush.
func FilterAll(commits []*parser.Commit) []*parser.Commit {
	f := New()
	out := []*parser.Commit{}
	for _, c := range commits {
		out = append(out, f.Process(c)...)
	}
	return append(out, f.Flush()...)
}

func (f *RevertFilter) findMatch(pred func(held) bool) int {
	for i, h := range f.hold {
		if pred(h) {
			return i
		}
	}
	return -1
}

func (f *RevertFilter) remove(i int) {
	if f.hold[i].isRevert {
		f.holdRevertsCount--
	}
	f.hold = append(f.hold[:i], f.hold[i+1:]...)
}

func (f *RevertFilter) drain() []*parser.Commit {
	if len(f.hold) == 0 {
		return nil
	}
	out := make([]*parser.Commit, 0, len(f.hold))
	for _, h := range f.hold {
		out = append(out, h.commit)
	}
	f.hold = nil
	f.holdRevertsCount = 0
	return out
}

// descriptorMatches reports whether every field of a revert descriptor
// equals the same-named field on the candidate commit, comparing
// strings after trimming. Unset compares equal only to unset.
func descriptorMatches(c *parser.Commit, revert map[string]*string) bool {
	if revert == nil {
		return false
	}
	for name, want := range revert {
		got := c.FieldValue(name)
		if want == nil || got == nil {
			if want != got {
				return false
			}
			continue
		}
		if strings.TrimSpace(*want) != strings.TrimSpace(*got) {
			return false
		}
	}
	return true
}
