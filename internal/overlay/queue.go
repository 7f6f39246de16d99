package overlay

import (
	"fmt"
	"sync"

	"github.com/voxctl/voxctl/internal/logging"
)

// renderQueueSize bounds pending render operations. The queue drains at
// frame speed, so it only fills when the surface is wedged; further
// requests are then dropped rather than blocking the dispatch side.
const renderQueueSize = 64

// renderLoop is a FIFO single-consumer queue owning all mutations of a
// rendering surface. Operations are applied strictly in arrival order;
// a panicking operation is logged and never reaches the enqueuer.
type renderLoop struct {
	ops    chan func()
	wg     sync.WaitGroup
	once   sync.Once
	logger logging.Logger
}

func newRenderLoop(logger logging.Logger) *renderLoop {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	l := &renderLoop{
		ops:    make(chan func(), renderQueueSize),
		logger: logger,
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *renderLoop) run() {
	defer l.wg.Done()
	for op := range l.ops {
		l.apply(op)
	}
}

func (l *renderLoop) apply(op func()) {
	defer func() {
		if rec := recover(); rec != nil {
			l.logger.Error("render operation panicked", "panic", fmt.Sprint(rec))
		}
	}()
	op()
}

// enqueue submits op and returns immediately. When the queue is full the
// operation is dropped with a log line.
func (l *renderLoop) enqueue(name string, op func()) {
	select {
	case l.ops <- op:
	default:
		l.logger.Warn("render queue full, dropping operation", "op", name)
	}
}

// close stops the loop after draining already-queued operations.
func (l *renderLoop) close() {
	l.once.Do(func() {
		close(l.ops)
	})
	l.wg.Wait()
}
