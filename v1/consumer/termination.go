package consumer

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// terminationSignals are the only signals that trigger a graceful close.
var terminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// terminationController owns the signal trap and the idle ticker. It asks
// the supervisor to close; it never reopens a connection and never changes
// the consumer state itself.
type terminationController struct {
	interval time.Duration

	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)

	signals   chan os.Signal
	installed bool
	idle      *time.Ticker
}

func newTerminationController(interval time.Duration, trapSignals bool) *terminationController {
	t := &terminationController{interval: interval}
	if trapSignals {
		t.notify = signal.Notify
		t.stop = signal.Stop
		t.signals = make(chan os.Signal, 2)
	}
	return t
}

// installSignalHandler starts relaying SIGINT and SIGTERM to signalC.
func (t *terminationController) installSignalHandler() {
	if t.signals == nil || t.installed {
		return
	}
	t.notify(t.signals, terminationSignals...)
	t.installed = true
}

func (t *terminationController) removeSignalHandler() {
	if !t.installed {
		return
	}
	t.stop(t.signals)
	t.installed = false
}

// signalC is nil when signal trapping is disabled.
func (t *terminationController) signalC() <-chan os.Signal {
	return t.signals
}

// armIdle (re)starts the idle ticker. It is a no-op when the interval is 0.
func (t *terminationController) armIdle() {
	if t.interval <= 0 {
		return
	}
	if t.idle != nil {
		t.idle.Reset(t.interval)
		return
	}
	t.idle = time.NewTicker(t.interval)
}

func (t *terminationController) disarmIdle() {
	if t.idle == nil {
		return
	}
	t.idle.Stop()
	t.idle = nil
}

// idleC is nil while the ticker is disarmed.
func (t *terminationController) idleC() <-chan time.Time {
	if t.idle == nil {
		return nil
	}
	return t.idle.C
}

// queueEmpty reports whether the queue has no ready messages.
func (t *terminationController) queueEmpty(ch Channel, queue string) (bool, int, error) {
	q, err := ch.QueueDeclarePassive(queue, false, false, false, false, nil)
	if err != nil {
		return false, 0, err
	}
	return q.Messages == 0, q.Messages, nil
}

// closeConnection runs the close handshake in the background. The returned
// channel receives its result exactly once.
func closeConnection(conn Connection) <-chan error {
	done := make(chan error, 1)
	if conn == nil {
		done <- nil
		return done
	}
	go func() {
		done <- conn.Close()
	}()
	return done
}
