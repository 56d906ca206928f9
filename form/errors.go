package form

// ValidationError reports a user-correctable problem with a form or a
// submission. The message is safe to show as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation tells whether err is a validation failure, as opposed to a
// backend or not-found condition.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
