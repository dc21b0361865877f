package wizard

// Result is the outcome of a step validator. Expected validation failures
// are reported here, never as errors.
type Result struct {
	OK          bool              `json:"ok"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func Pass() Result { return Result{OK: true} }

// Fail records a message for field and marks the result failed. The first
// message recorded for a field wins.
func (r *Result) Fail(field, msg string) {
	r.OK = false
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string]string)
	}
	if _, ok := r.FieldErrors[field]; !ok {
		r.FieldErrors[field] = msg
	}
}

// Join folds other into r.
func (r *Result) Join(other Result) {
	for f, msg := range other.FieldErrors {
		r.Fail(f, msg)
	}
	if !other.OK {
		r.OK = false
	}
}
