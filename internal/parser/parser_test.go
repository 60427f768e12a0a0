package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(t *testing.T, c *Commit, name string) string {
	t.Helper()
	v, ok := c.Fields[name]
	require.True(t, ok, "field %q not present", name)
	require.NotNil(t, v, "field %q is unset", name)
	return *v
}

func TestParseBasic(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("fix(core): patch bug\n\nCloses #123")
	require.NoError(t, err)

	require.NotNil(t, c.Header)
	assert.Equal(t, "fix(core): patch bug", *c.Header)
	assert.Equal(t, "fix", field(t, c, "type"))
	assert.Equal(t, "core", field(t, c, "scope"))
	assert.Equal(t, "patch bug", field(t, c, "subject"))

	assert.Nil(t, c.Body)
	require.NotNil(t, c.Footer)
	assert.Equal(t, "Closes #123", *c.Footer)

	require.Len(t, c.References, 1)
	assert.Equal(t, "123", c.References[0].Issue)
	assert.Equal(t, "#", c.References[0].Prefix)

	assert.Nil(t, c.Merge)
	assert.Nil(t, c.Revert)
	assert.Empty(t, c.Notes)
}

func TestParseIdempotent(t *testing.T) {
	p := mustParser(t, nil)
	raw := "fix(core): patch bug\n\nsome body\n\nBREAKING CHANGE: gone\nCloses #1 @alice"

	c1, err := p.Parse(raw)
	require.NoError(t, err)
	c2, err := p.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
}

func TestParseHeaderWithoutGrammarMatch(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("just some words")
	require.NoError(t, err)

	require.NotNil(t, c.Header)
	assert.Equal(t, "just some words", *c.Header)
	assert.Nil(t, c.Fields["type"])
	assert.Nil(t, c.Fields["scope"])
	assert.Nil(t, c.Fields["subject"])
}

func TestParseInvalidInput(t *testing.T) {
	p := mustParser(t, nil)

	for _, raw := range []string{"", "   \n\t"} {
		_, err := p.Parse(raw)
		require.Error(t, err)
		assert.IsType(t, &InvalidInputError{}, err)
	}
}

func TestParseBodyAndFooter(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("fix: x\n\nbody line one\nbody line two\n\nCloses #1\nmore footer")
	require.NoError(t, err)

	require.NotNil(t, c.Body)
	assert.Equal(t, "body line one\nbody line two", *c.Body)
	require.NotNil(t, c.Footer)
	assert.Equal(t, "Closes #1\nmore footer", *c.Footer)
	require.Len(t, c.References, 1)
	assert.Equal(t, "1", c.References[0].Issue)
}

func TestParseBodyNeverResumesAfterFooter(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("fix: x\n\nCloses #1\nlooks like body but is not")
	require.NoError(t, err)

	assert.Nil(t, c.Body)
	require.NotNil(t, c.Footer)
	assert.Equal(t, "Closes #1\nlooks like body but is not", *c.Footer)
}

func TestParseBreakingChangeNote(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("feat: new thing\n\nBREAKING CHANGE: removed X")
	require.NoError(t, err)

	require.Len(t, c.Notes, 1)
	assert.Equal(t, "BREAKING CHANGE", c.Notes[0].Title)
	assert.Equal(t, "removed X", c.Notes[0].Text)
	require.NotNil(t, c.Footer)
	assert.Equal(t, "BREAKING CHANGE: removed X", *c.Footer)
}

func TestParseNoteContinuation(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("feat: y\n\nBREAKING CHANGE: first line\nsecond line\n\nthird line\nFixes #9\nafter")
	require.NoError(t, err)

	require.Len(t, c.Notes, 1)
	assert.Equal(t, "first line\nsecond line\n\nthird line", c.Notes[0].Text)

	require.Len(t, c.References, 1)
	assert.Equal(t, "9", c.References[0].Issue)

	require.NotNil(t, c.Footer)
	assert.Equal(t, "BREAKING CHANGE: first line\nsecond line\n\nthird line\nFixes #9\nafter", *c.Footer)
}

func TestParseEmptyNoteKeywords(t *testing.T) {
	opts := DefaultOptions()
	opts.NoteKeywords = nil
	p := mustParser(t, opts)

	c, err := p.Parse("feat: z\n\nBREAKING CHANGE: removed X")
	require.NoError(t, err)

	// Without keywords the line is ordinary body text.
	assert.Empty(t, c.Notes)
	require.NotNil(t, c.Body)
	assert.Equal(t, "BREAKING CHANGE: removed X", *c.Body)
}

func TestParseBreakingHeader(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("feat!: drop legacy API")
	require.NoError(t, err)

	assert.Equal(t, "feat", field(t, c, "type"))
	assert.Equal(t, "drop legacy API", field(t, c, "subject"))
	require.Len(t, c.Notes, 1)
	assert.Equal(t, "BREAKING CHANGE", c.Notes[0].Title)
	assert.Equal(t, "drop legacy API", c.Notes[0].Text)
}

func TestParseBreakingHeaderDoesNotDuplicateNote(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("feat(api)!: drop legacy\n\nBREAKING CHANGE: the real explanation")
	require.NoError(t, err)

	require.Len(t, c.Notes, 1)
	assert.Equal(t, "the real explanation", c.Notes[0].Text)
}

func TestParseRevert(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("Revert \"feat: add foo\"\n\nThis reverts commit abc123.")
	require.NoError(t, err)

	require.NotNil(t, c.Revert)
	require.NotNil(t, c.Revert["header"])
	assert.Equal(t, "feat: add foo", *c.Revert["header"])
	require.NotNil(t, c.Revert["hash"])
	assert.Equal(t, "abc123", *c.Revert["hash"])
}

func TestParseMentions(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("docs: thank @alice and @bob\n\nwith help from @alice")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "alice"}, c.Mentions)
}

func TestParseMergeCommit(t *testing.T) {
	opts := DefaultOptions()
	opts.MergePattern = `^Merge pull request #(\d+) from (.*)$`
	opts.MergeCorrespondence = []string{"id", "source"}
	p := mustParser(t, opts)

	c, err := p.Parse("Merge pull request #100 from owner/branch\n\nfeat: something\n\nbody text")
	require.NoError(t, err)

	require.NotNil(t, c.Merge)
	assert.Equal(t, "Merge pull request #100 from owner/branch", *c.Merge)
	assert.Equal(t, "100", field(t, c, "id"))
	assert.Equal(t, "owner/branch", field(t, c, "source"))

	require.NotNil(t, c.Header)
	assert.Equal(t, "feat: something", *c.Header)
	assert.Equal(t, "feat", field(t, c, "type"))
	require.NotNil(t, c.Body)
	assert.Equal(t, "body text", *c.Body)
}

func TestParseMetaFields(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("fix: x\n\n-reviewed-by-\nAlice\nBob\n-signed-off-\nCarol")
	require.NoError(t, err)

	assert.Equal(t, "Alice\nBob", field(t, c, "reviewed-by"))
	assert.Equal(t, "Carol", field(t, c, "signed-off"))
	assert.Nil(t, c.Body)
}

func TestParseURLLineIsNotReference(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("fix: x\n\nsee https://example.com/#123")
	require.NoError(t, err)

	assert.Empty(t, c.References)
	require.NotNil(t, c.Body)
	assert.Equal(t, "see https://example.com/#123", *c.Body)
}

func TestParseCommentAndScissorLines(t *testing.T) {
	opts := DefaultOptions()
	opts.CommentChar = "#"
	p := mustParser(t, opts)

	raw := "fix: x\n\nbody\n# Please enter the commit message\n# ------------------------ >8 ------------------------\ndiff --git a/a b/a"
	c, err := p.Parse(raw)
	require.NoError(t, err)

	require.NotNil(t, c.Body)
	assert.Equal(t, "body", *c.Body)
	assert.Nil(t, c.Footer)
}

func TestParseJSONShape(t *testing.T) {
	p := mustParser(t, nil)

	c, err := p.Parse("docs: update readme")
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"body": null,
		"footer": null,
		"header": "docs: update readme",
		"mentions": [],
		"merge": null,
		"notes": [],
		"references": [],
		"revert": null,
		"scope": null,
		"subject": "update readme",
		"type": "docs"
	}`, string(data))
}
