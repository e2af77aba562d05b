package command

// UserError carries text that is safe to show in chat. Handlers wrap the
// underlying failure so callers can still errors.Is/As against it; anything
// that reaches the router without a UserError renders as the generic
// failure message and is logged server-side.
type UserError struct {
	Text string
	Err  error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Text
}

func (e *UserError) Unwrap() error { return e.Err }

// User wraps err with chat-safe text.
func User(text string, err error) error {
	return &UserError{Text: text, Err: err}
}

// Userf returns a UserError with no underlying cause.
func Userf(text string) error {
	return &UserError{Text: text}
}
