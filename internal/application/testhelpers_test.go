package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/notification"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
)

// stubRouter returns a fixed route or error and counts calls.
type stubRouter struct {
	mu     sync.Mutex
	result quote.RouteResult
	err    error
	calls  int
	// When set, Route signals entered and waits for release before returning.
	entered chan struct{}
	release chan struct{}
}

func (r *stubRouter) Route(ctx context.Context, origin, destination string) (quote.RouteResult, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	if r.entered != nil {
		r.entered <- struct{}{}
		<-r.release
	}
	return r.result, r.err
}

func (r *stubRouter) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// stubNotifier records every notice it is asked to deliver.
type stubNotifier struct {
	mu      sync.Mutex
	err     error
	notices []quote.Notice
}

func (n *stubNotifier) Notify(ctx context.Context, notice quote.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *stubNotifier) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

// recordingDisplay keeps the last value pushed through each Display method.
type recordingDisplay struct {
	mu            sync.Mutex
	busy          bool
	busyHistory   []bool
	alert         Alert
	summary       Summary
	resultVisible bool
	clearCount    int
}

func (d *recordingDisplay) SetBusy(busy bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.busy = busy
	d.busyHistory = append(d.busyHistory, busy)
}

func (d *recordingDisplay) SetAlert(alert Alert) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alert = alert
}

func (d *recordingDisplay) SetSummary(summary Summary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summary = summary
}

func (d *recordingDisplay) ShowResult(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resultVisible = visible
}

func (d *recordingDisplay) ClearForm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearCount++
}

// stubSender records messages and fails on the configured call (1-based).
type stubSender struct {
	failOn   int
	messages []notification.Message
}

var errProvider = errors.New(`{"statusCode":422,"message":"invalid from"}`)

func (s *stubSender) Send(ctx context.Context, msg notification.Message) error {
	s.messages = append(s.messages, msg)
	if s.failOn == len(s.messages) {
		return errProvider
	}
	return nil
}

// recordingPublisher captures published event types.
type recordingPublisher struct {
	types     []string
	data      []interface{}
	deadlines []time.Duration
	ctxErrs   []error
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType, key string, data interface{}) error {
	if deadline, ok := ctx.Deadline(); ok {
		p.deadlines = append(p.deadlines, time.Until(deadline))
	}
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	p.types = append(p.types, eventType)
	p.data = append(p.data, data)
	return p.err
}

// cancellingSender cancels the request context once both messages went out.
type cancellingSender struct {
	cancel context.CancelFunc
	calls  int
}

func (s *cancellingSender) Send(ctx context.Context, msg notification.Message) error {
	s.calls++
	if s.calls == 2 {
		s.cancel()
	}
	return nil
}
