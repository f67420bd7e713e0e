package pentaauth

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// auditDispatcher hands events to the sink on its own goroutine. Each
// queued event gets the next sequence number, so a sink can recover the
// order of session transitions even when it reorders writes itself.
type auditDispatcher struct {
	sink       AuditSink
	dropIfFull bool
	now        func() time.Time

	// mu orders sequence assignment with the queue position.
	mu  sync.Mutex
	seq uint64

	queue   chan AuditEvent
	stop    chan struct{}
	stopped chan struct{}
	dropped atomic.Uint64
	closing sync.Once
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &auditDispatcher{
		sink:       sink,
		dropIfFull: cfg.DropIfFull,
		now:        time.Now,
		queue:      make(chan AuditEvent, cfg.BufferSize),
		stop:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *auditDispatcher) run() {
	defer close(d.stopped)

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.stop:
			for {
				select {
				case event := <-d.queue:
					d.sink.Emit(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit stamps event with its sequence number, and an ID and timestamp when
// the caller left them empty, then queues it. With DropIfFull a full queue
// drops the event and counts it; otherwise Emit waits for room, ctx, or Close.
// A dropped event does not consume a sequence number.
func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-d.stop:
		return
	default:
	}

	event.Seq = d.seq + 1
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = d.now().UTC()
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
			d.seq++
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
		d.seq++
	case <-ctx.Done():
	case <-d.stop:
	}
}

// Close stops accepting events and drains the queue into the sink.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.closing.Do(func() {
		close(d.stop)
		<-d.stopped
	})
}

// Dropped returns the number of events lost to a full queue.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
