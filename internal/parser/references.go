package parser

import "strings"

// actionSegment is one (action, sentence) slice of reference text.
type actionSegment struct {
	action   *string
	sentence string
}

// segments splits text into action-introduced sentences. Each sentence
// runs from the end of its action verb to the start of the next one (or
// end of text). When no action matches anywhere, or none are configured,
// the whole text is one actionless sentence, so bare issue ids in a
// footer still resolve.
func (m *matchers) segments(text string) []actionSegment {
	if m.actions == nil {
		return []actionSegment{{sentence: text}}
	}
	locs := m.actions.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []actionSegment{{sentence: text}}
	}
	segs := make([]actionSegment, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		action := text[loc[2]:loc[3]]
		segs = append(segs, actionSegment{
			action:   &action,
			sentence: strings.TrimLeft(text[loc[1]:end], " \t"),
		})
	}
	return segs
}

// parseReferences extracts zero or more issue references from text.
// Text containing a bare URL never yields references, whatever else it
// matches. Matches are drained via FindAll index pairs, which advance
// monotonically and cannot loop on a zero-width match.
func (p *Parser) parseReferences(text string) []Reference {
	if p.re.url.MatchString(text) {
		return nil
	}

	var refs []Reference
	for _, seg := range p.re.segments(text) {
		for _, m := range p.re.referenceParts.FindAllStringSubmatchIndex(seg.sentence, -1) {
			ref := Reference{
				Raw:    seg.sentence[m[0]:m[1]],
				Action: seg.action,
				Prefix: seg.sentence[m[4]:m[5]],
				Issue:  seg.sentence[m[6]:m[7]],
			}
			if m[2] >= 0 && m[3] > m[2] {
				ownerRepo := seg.sentence[m[2]:m[3]]
				if owner, repo, ok := strings.Cut(ownerRepo, "/"); ok {
					ref.Owner = strptr(owner)
					ref.Repository = strptr(repo)
				} else {
					ref.Repository = strptr(ownerRepo)
				}
			}
			refs = append(refs, ref)
		}
	}
	return refs
}
