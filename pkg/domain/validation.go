package domain

import "fmt"

// ValidationError reports a violated credential construction rule.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid credential (%s): %s", e.Rule, e.Message)
}
