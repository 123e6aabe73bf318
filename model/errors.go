package model

import "fmt"

// InvariantError reports a broken precondition inside the analysis pipeline,
// such as asking an empty line for its geometry or extending a box across
// pages. It is raised with panic and recovered at the pipeline boundary,
// where it aborts processing of the current document.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}

// Violatef panics with an *InvariantError.
func Violatef(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}
