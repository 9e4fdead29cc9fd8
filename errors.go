package vtpl

import (
	"fmt"
)

// ErrLoopOnRoot is returned when the root element carries v-for
type ErrLoopOnRoot struct {
	Tag    string
	Source string
}

func (e ErrLoopOnRoot) Error() string {
	return fmt.Sprintf("root element <%s> cannot use v-for (iterating %q)", e.Tag, e.Source)
}

// ErrUnbalancedEnd is returned when an end tag arrives with no open element
type ErrUnbalancedEnd struct {
	Tag    string
	Offset int
}

func (e ErrUnbalancedEnd) Error() string {
	return fmt.Sprintf("end tag </%s> at offset %d has no open element", e.Tag, e.Offset)
}

// ErrElementNotFound is returned when a document has no element with the requested id
type ErrElementNotFound struct {
	ID string
}

func (e ErrElementNotFound) Error() string {
	return fmt.Sprintf("element not found: #%s", e.ID)
}
