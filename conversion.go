package roadnet

import (
	"context"
	"fmt"
	"sync"
)

var (
	// ErrConversionRunning is returned by Factory.TryStart while another
	// conversion of the same factory is in flight
	ErrConversionRunning = fmt.Errorf("a conversion is already running")

	// ErrForegroundClosed is returned when handing work to a closed Foreground
	ErrForegroundClosed = fmt.Errorf("foreground is closed")
)

// ConversionState is where a Conversion is at
type ConversionState int

const (
	ConversionIdle ConversionState = iota
	ConversionRunning
	ConversionDone
	ConversionFailed
)

// String returns a human readable state
func (s ConversionState) String() string {
	switch s {
	case ConversionIdle:
		return "idle"
	case ConversionRunning:
		return "running"
	case ConversionDone:
		return "done"
	case ConversionFailed:
		return "failed"
	}
	return "unknown"
}

// Conversion is one background run of a Factory. The caller holds on to it
// to find out if the run is still going & to collect the result.
type Conversion struct {
	lock  sync.Mutex
	state ConversionState
	model *Model
	err   error

	done chan struct{}
}

func newConversion() *Conversion {
	return &Conversion{state: ConversionIdle, done: make(chan struct{})}
}

// State returns the current state
func (c *Conversion) State() ConversionState {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

// Running returns if the conversion is in flight. The model must not be
// touched while this is true.
func (c *Conversion) Running() bool {
	return c.State() == ConversionRunning
}

// Done is closed once the conversion has finished (either way)
func (c *Conversion) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the conversion finishes & returns its result
func (c *Conversion) Wait() (*Model, error) {
	<-c.done
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.model, c.err
}

func (c *Conversion) setState(s ConversionState) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.state = s
}

// finish records the result & releases waiters. Only call once.
func (c *Conversion) finish(m *Model, err error) {
	c.lock.Lock()
	c.model = m
	c.err = err
	if err != nil {
		c.state = ConversionFailed
	} else {
		c.state = ConversionDone
	}
	c.lock.Unlock()
	close(c.done)
}

// foregroundTask is one unit of work handed to the foreground
type foregroundTask struct {
	fn   func() error
	done chan error
}

// Foreground runs functions on whichever goroutine pumps it (typically the
// host's main / UI loop). Workers hand it work with Do & block until it has
// been run.
type Foreground struct {
	tasks  chan *foregroundTask
	closed chan struct{}
	once   sync.Once
}

// NewForeground returns a Foreground ready for use
func NewForeground() *Foreground {
	return &Foreground{
		tasks:  make(chan *foregroundTask),
		closed: make(chan struct{}),
	}
}

// Do hands fn to the foreground & waits until it has run, returning its
// error. If ctx ends (or the foreground closes) before fn is picked up, fn
// is never run.
func (f *Foreground) Do(ctx context.Context, fn func() error) error {
	t := &foregroundTask{fn: fn, done: make(chan error, 1)}

	select {
	case <-f.closed:
		return ErrForegroundClosed
	case <-ctx.Done():
		return ctx.Err()
	case f.tasks <- t:
	}

	// once picked up the task always completes
	return <-t.done
}

// RunPending runs every task currently waiting without blocking & returns
// how many ran. For hosts with their own main loop.
func (f *Foreground) RunPending() int {
	count := 0
	for {
		select {
		case t := <-f.tasks:
			t.done <- t.fn()
			count++
		default:
			return count
		}
	}
}

// Serve runs tasks as they arrive until ctx ends or the foreground is
// closed.
func (f *Foreground) Serve(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.closed:
			return
		case t := <-f.tasks:
			t.done <- t.fn()
		}
	}
}

// Close stops the foreground accepting work. Safe to call more than once.
func (f *Foreground) Close() {
	f.once.Do(func() { close(f.closed) })
}
