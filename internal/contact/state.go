package contact

import "fmt"

// State is the submission state of a contact form.
type State string

const (
	StateIdle      State = "idle"
	StateSending   State = "sending"
	StateSucceeded State = "succeeded"
)

type event string

const (
	eventSubmit  event = "submit"
	eventSent    event = "sent"
	eventExpire  event = "expire"
	eventDismiss event = "dismiss"
)

// transition returns the state reached from current on ev. An error means the
// event is not accepted in the current state and nothing should change.
func transition(current State, ev event) (State, error) {
	switch current {
	case StateIdle:
		if ev == eventSubmit {
			return StateSending, nil
		}
	case StateSending:
		if ev == eventSent {
			return StateSucceeded, nil
		}
	case StateSucceeded:
		if ev == eventExpire || ev == eventDismiss {
			return StateIdle, nil
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
	return current, fmt.Errorf("invalid transition: %s --(%s)--> ?", current, ev)
}
