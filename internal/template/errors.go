package template

import (
	"fmt"
	"strings"
)

// InvalidNameError is returned for a reference that is not a URL, not an
// existing path and not a reserved template name.
type InvalidNameError struct {
	Name  string
	Valid []string
}

func (e *InvalidNameError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invalid template name: %s. \nA URL or one of the following names is expected: \n", e.Name)
	for i, n := range e.Valid {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(n)
	}
	return b.String()
}

// InvalidTypeError is returned when the type suffix is neither web nor hybrid.
type InvalidTypeError struct {
	Type string
}

func (e *InvalidTypeError) Error() string {
	return "Invalid template type: " + e.Type
}
