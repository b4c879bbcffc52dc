// Package contact implements the contact form controller: field validation,
// the Idle -> Sending -> Succeeded -> Idle submission cycle and the timers
// that drive it.
//
// A Controller is created when a form is mounted and must be closed when the
// form goes away. Close cancels any pending timer so nothing mutates the
// controller after teardown.
package contact

import (
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultSendDelay      = 700 * time.Millisecond
	DefaultNoticeDuration = 3000 * time.Millisecond
)

// SubmitOutcome tells the caller what OnSubmit did.
type SubmitOutcome int

const (
	// SubmitAccepted means validation passed and the send is in flight.
	SubmitAccepted SubmitOutcome = iota
	// SubmitInvalid means at least one field failed validation.
	SubmitInvalid
	// SubmitBusy means a submission or its notification is still active.
	SubmitBusy
)

func (o SubmitOutcome) String() string {
	switch o {
	case SubmitAccepted:
		return "accepted"
	case SubmitInvalid:
		return "invalid"
	case SubmitBusy:
		return "busy"
	}
	return "unknown"
}

// SubmitResult is returned by OnSubmit.
type SubmitResult struct {
	Outcome SubmitOutcome
	// Errors is the full validation result for an invalid submit.
	Errors FieldErrors
	// Focus is the field that should receive input focus when Outcome is
	// SubmitInvalid.
	Focus Field
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Values Values
	Errors FieldErrors
	State  State
}

// Option configures a Controller.
type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func WithDeliverer(d Deliverer) Option {
	return func(c *Controller) { c.deliverer = d }
}

func WithSendDelay(d time.Duration) Option {
	return func(c *Controller) { c.sendDelay = d }
}

func WithNoticeDuration(d time.Duration) Option {
	return func(c *Controller) { c.noticeDuration = d }
}

// WithStateObserver registers fn to be called after every state change. It is
// called without the controller lock held.
func WithStateObserver(fn func(from, to State)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller owns the values, errors and submission state of one contact
// form. It is safe for concurrent use; all operations are serialised.
type Controller struct {
	mu     sync.Mutex
	values Values
	errors FieldErrors
	state  State
	closed bool

	// pending is the timer for the current Sending or Succeeded phase.
	pending Timer
	// gen invalidates callbacks of timers that were stopped too late.
	gen uint64

	scheduler      Scheduler
	deliverer      Deliverer
	log            *slog.Logger
	sendDelay      time.Duration
	noticeDuration time.Duration
	observer       func(from, to State)
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		errors:         FieldErrors{},
		state:          StateIdle,
		scheduler:      RealScheduler{},
		log:            slog.Default(),
		sendDelay:      DefaultSendDelay,
		noticeDuration: DefaultNoticeDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.deliverer == nil {
		c.deliverer = DelivererFunc(func(Values) {})
	}
	return c
}

// OnChange stores value for f and recomputes that field's error only.
func (c *Controller) OnChange(f Field, value string) error {
	return c.update(f, value)
}

// OnBlur performs the same recompute as OnChange.
func (c *Controller) OnBlur(f Field, value string) error {
	return c.update(f, value)
}

func (c *Controller) update(f Field, value string) error {
	if _, err := ParseField(string(f)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.values.set(f, value)
	if msg := ValidateField(f, value); msg != "" {
		c.errors[f] = msg
	} else {
		delete(c.errors, f)
	}
	return nil
}

// OnSubmit validates every field and, when all pass, starts the simulated
// send. It is a no-op unless the controller is Idle.
func (c *Controller) OnSubmit() (SubmitResult, error) {
	return c.SubmitWith(nil)
}

// SubmitWith applies posted values and then submits, as one step. When the
// controller is not Idle nothing is applied and the outcome is SubmitBusy.
// Unknown fields in posted fail the call before anything changes.
func (c *Controller) SubmitWith(posted map[Field]string) (SubmitResult, error) {
	for f := range posted {
		if _, err := ParseField(string(f)); err != nil {
			return SubmitResult{}, err
		}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return SubmitResult{}, ErrClosed
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		return SubmitResult{Outcome: SubmitBusy}, nil
	}
	for f, value := range posted {
		c.values.set(f, value)
	}

	c.errors = ValidateAll(c.values)
	if focus, ok := c.errors.First(); ok {
		res := SubmitResult{Outcome: SubmitInvalid, Errors: c.errors.clone(), Focus: focus}
		c.mu.Unlock()
		c.log.Debug("Contact submit blocked", "focus", focus, "invalid", len(res.Errors))
		return res, nil
	}

	validated := c.values
	from, to := c.fire(eventSubmit)
	gen := c.gen
	c.pending = c.scheduler.AfterFunc(c.sendDelay, func() { c.sent(gen, validated) })
	c.mu.Unlock()

	c.notify(from, to)
	return SubmitResult{Outcome: SubmitAccepted, Errors: FieldErrors{}}, nil
}

// sent completes the simulated send started under generation gen. The
// delivered values are the ones that passed validation, not later edits.
func (c *Controller) sent(gen uint64, validated Values) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.state != StateSending {
		c.mu.Unlock()
		return
	}
	from, to := c.fire(eventSent)
	c.values = Values{}
	c.errors = FieldErrors{}
	next := c.gen
	c.pending = c.scheduler.AfterFunc(c.noticeDuration, func() { c.expire(next) })
	c.mu.Unlock()

	c.deliverer.Deliver(validated)
	c.notify(from, to)
}

func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.state != StateSucceeded {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	from, to := c.fire(eventExpire)
	c.mu.Unlock()

	c.notify(from, to)
}

// Dismiss hides the success notification immediately. It reports whether the
// controller was showing one.
func (c *Controller) Dismiss() bool {
	c.mu.Lock()
	if c.closed || c.state != StateSucceeded {
		c.mu.Unlock()
		return false
	}
	c.stopPending()
	from, to := c.fire(eventDismiss)
	c.mu.Unlock()

	c.notify(from, to)
	return true
}

// Close tears the controller down. Pending timers are cancelled and every
// later operation fails with ErrClosed. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopPending()
	c.gen++
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Values: c.values, Errors: c.errors.clone(), State: c.state}
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// fire applies ev and bumps the generation. Callers hold c.mu and must only
// fire events the current state accepts.
func (c *Controller) fire(ev event) (State, State) {
	from := c.state
	to, err := transition(from, ev)
	if err != nil {
		c.log.Error("Contact state machine rejected event", "err", err)
		return from, from
	}
	c.state = to
	c.gen++
	return from, to
}

func (c *Controller) stopPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) notify(from, to State) {
	if from == to {
		return
	}
	c.log.Debug("Contact state changed", "from", from, "to", to)
	if c.observer != nil {
		c.observer(from, to)
	}
}
