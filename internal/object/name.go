package object

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidObjectName is the sentinel matched by every InvalidNameError.
var ErrInvalidObjectName = errors.New("invalid object name")

var (
	identifierNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	indexNameRegex      = regexp.MustCompile(`^\[[0-9]+\]$`)
)

// InvalidNameError describes why a name was rejected.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid object name %q: %s", e.Name, e.Reason)
}

func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidObjectName
}

// ValidateName checks name against the node name grammar.
func ValidateName(name string) error {
	if identifierNameRegex.MatchString(name) || indexNameRegex.MatchString(name) {
		return nil
	}
	return &InvalidNameError{Name: name, Reason: rejectReason(name)}
}

func rejectReason(name string) string {
	switch {
	case name == "":
		return "a name cannot be empty"
	case name[0] == '[':
		return "an index name shall be digits enclosed in a single pair of brackets"
	case !isASCIILetter(name[0]):
		return "a name shall start with a letter"
	default:
		return "a name shall only contain letters, digits and '_'"
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
