package validate

import (
	domainerr "contentkit/internal/domain/errors"
	"fmt"
	"strings"
)

// GenerateErrorSummary groups messages by field, keeping the order in which
// fields first appear.
func GenerateErrorSummary(errs []domainerr.FieldError) string {
	if len(errs) == 0 {
		return "No errors found."
	}

	var order []string
	byField := make(map[string][]string)
	for _, e := range errs {
		if _, seen := byField[e.Field]; !seen {
			order = append(order, e.Field)
		}
		byField[e.Field] = append(byField[e.Field], e.Message)
	}

	noun := "errors"
	if len(errs) == 1 {
		noun = "error"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d validation %s:", len(errs), noun)
	for _, field := range order {
		b.WriteString("\n")
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(byField[field], ", "))
	}
	return b.String()
}
