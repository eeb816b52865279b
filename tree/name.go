package tree

import (
	"fmt"
	"regexp"
)

// RootName is the name of the outer wrapper node producers build records in.
const RootName = "$"

var validName = regexp.MustCompile(`^(?:[a-z_][a-z_0-9]*|\$)$`)

// ValidName reports whether name may be used for a tree node.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

func checkName(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
