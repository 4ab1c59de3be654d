package fault

import (
	"errors"
	"net/http"
	"strings"
)

// Outcome is the result of one step of a multi-step reconciliation.
type Outcome struct {
	// Step names the sub-step (e.g. "address").
	Step string
	// Err is nil on success.
	Err error
}

// Failed reports whether the step produced an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Fold merges step outcomes into a single error.
//
// Any non-retryable failure makes the result fatal with every failure message
// joined in step order. Otherwise any retryable failure yields one retryable
// fault. Errors that are not faults (e.g. network failures) count as retryable.
// The result is nil when every step succeeded.
func Fold(code, prefix string, outcomes []Outcome) error {
	var (
		messages  []string
		fatal     bool
		retryable bool
	)

	for _, o := range outcomes {
		if o.Err == nil {
			continue
		}
		messages = append(messages, o.Err.Error())

		var f *Fault
		if errors.As(o.Err, &f) && f.Kind != KindRetryable {
			fatal = true
		} else {
			retryable = true
		}
	}

	if len(messages) == 0 {
		return nil
	}

	msg := strings.Join(messages, ", ")
	if prefix != "" {
		msg = prefix + ": " + msg
	}

	if fatal {
		return Fatal(code, msg, http.StatusInternalServerError)
	}
	if retryable {
		return Retryable(msg, http.StatusTooManyRequests)
	}
	return nil
}

// Label returns a metrics label for the result of a reconciliation:
// "success", the fault kind, or "error" for errors that are not faults.
func Label(err error) string {
	if err == nil {
		return "success"
	}
	if kind, ok := KindOf(err); ok {
		return string(kind)
	}
	return "error"
}
