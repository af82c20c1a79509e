package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/mithrel/eventwizard/internal/client"
	"github.com/mithrel/eventwizard/internal/render"
	"github.com/mithrel/eventwizard/pkg/api"
)

// ErrBusy is returned by Submit while another submission is in flight.
var ErrBusy = errors.New("submission already in progress")

// State is the controller's view of the last submission.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Submitter performs one request/response exchange.
type Submitter interface {
	Submit(ctx context.Context, v api.Variant, s api.Submission) (api.Result, error)
}

// Controller handles form submission: it reads the form through a View,
// posts it, and reflects the outcome back into the View.
type Controller struct {
	view      View
	submitter Submitter
	variant   api.Variant
	renderer  render.Renderer
	msgs      Messages
	log       zerolog.Logger

	busy atomic.Bool

	mu      sync.Mutex
	state   State
	lastErr error
}

type Option func(*Controller)

// WithRenderer sets the Markdown renderer. Required for Markdown variants.
func WithRenderer(r render.Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

func WithMessages(m Messages) Option {
	return func(c *Controller) { c.msgs = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New wires a controller to its view. It fails when the view cannot serve
// a field the variant sends, or when a Markdown variant has no renderer.
func New(view View, submitter Submitter, variant api.Variant, opts ...Option) (*Controller, error) {
	if view == nil {
		return nil, errors.New("wizard: nil view")
	}
	if submitter == nil {
		return nil, errors.New("wizard: nil submitter")
	}
	c := &Controller{
		view:      view,
		submitter: submitter,
		variant:   variant,
		msgs:      MessagesEN,
		log:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if fc, ok := view.(FieldChecker); ok {
		for _, f := range variant.Fields {
			if !fc.HasField(f) {
				return nil, fmt.Errorf("wizard: view has no field %q", f)
			}
		}
	}
	if variant.Markdown && c.renderer == nil {
		return nil, fmt.Errorf("wizard: variant %s renders markdown but no renderer is set", variant.Name)
	}
	return c, nil
}

// Variant returns the endpoint variant this controller submits to.
func (c *Controller) Variant() api.Variant { return c.variant }

// State returns the outcome of the most recent submission.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error behind StateError, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) setState(s State, err error) {
	c.mu.Lock()
	c.state = s
	c.lastErr = err
	c.mu.Unlock()
}

func (c *Controller) loadingRegion() Region {
	if c.variant.Overlay {
		return RegionOverlay
	}
	return RegionLoading
}

// Submit runs one submission. Outcomes are reported only through the view;
// the returned error is ErrBusy or nil. The submit control is re-enabled on
// every path.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)
	defer c.view.SetEnabled(ControlSubmit, true)

	c.reset()
	sub := c.readForm()
	log := c.log.With().Str("variant", c.variant.Name).Str("submission", c.variant.Fingerprint(sub)).Logger()

	res, err := c.submitter.Submit(ctx, c.variant, sub)
	c.view.SetVisible(c.loadingRegion(), false)
	if err != nil {
		c.fail(log, err)
		return nil
	}
	c.succeed(log, res)
	return nil
}

func (c *Controller) reset() {
	c.setState(StateLoading, nil)
	c.view.SetVisible(RegionResults, true)
	c.view.SetVisible(c.loadingRegion(), true)
	c.view.SetText(RegionOutput, "")
	c.view.SetText(RegionError, "")
	c.view.SetVisible(RegionError, false)
	c.view.SetEnabled(ControlSubmit, false)
}

func (c *Controller) readForm() api.Submission {
	var s api.Submission
	for _, f := range c.variant.Fields {
		s.Set(f, c.view.Field(f))
	}
	return s
}

func (c *Controller) succeed(log zerolog.Logger, res api.Result) {
	if res.Message != nil && *res.Message != "" {
		log.Info().Str("server_message", *res.Message).Msg("submission accepted")
	}
	text, ok := res.Text(c.variant.ResultKey)
	if !ok {
		log.Warn().Interface("result", res).Str("field", c.variant.ResultKey).Msg("response has no result text")
		c.view.SetText(RegionOutput, c.msgs.NoResult)
		c.setState(StateSuccess, nil)
		return
	}
	if !c.variant.Markdown {
		c.view.SetText(RegionOutput, text)
		c.setState(StateSuccess, nil)
		return
	}
	markup, err := c.renderer.Render(text)
	if err != nil {
		c.fail(log, err)
		return
	}
	c.view.SetMarkup(RegionOutput, markup)
	c.setState(StateSuccess, nil)
}

func (c *Controller) fail(log zerolog.Logger, err error) {
	var se *client.StatusError
	switch {
	case errors.As(err, &se):
		log.Warn().Int("status", se.Code).Interface("result", se.Result).Msg("server rejected submission")
		c.view.SetText(RegionError, c.msgs.serverError(se.Message()))
	case client.IsUnavailable(err):
		log.Error().Err(err).Msg("planner service unreachable")
		c.view.SetText(RegionError, c.msgs.Unavailable)
	default:
		log.Error().Err(err).Msg("submission failed")
		c.view.SetText(RegionError, c.msgs.communication(err))
	}
	c.view.SetVisible(c.loadingRegion(), false)
	c.view.SetVisible(RegionError, true)
	c.setState(StateError, err)
}
