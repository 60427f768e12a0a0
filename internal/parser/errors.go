package parser

// InvalidInputError reports raw commit text that is empty or contains
// only whitespace. It is the only error a parse can produce; every
// configuration gap degrades to a matcher that never matches instead.
type InvalidInputError struct{}

func (e *InvalidInputError) Error() string {
	return "commit message is empty or contains only whitespace"
}
