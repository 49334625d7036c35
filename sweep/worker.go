package sweep

import (
	"sync"

	"github.com/achilleasa/aabboctree/log"
	"github.com/google/uuid"
)

// Worker runs a Processor on its own goroutine behind a request/reply
// channel protocol, grounded on the reference tracer's worker-goroutine
// pattern (select over a request channel and a close channel, guarded by a
// sync.WaitGroup). Unlike the reference's fire-and-forget Enqueue, Init and
// Sweep block the caller until the worker goroutine has produced a reply,
// since callers need the sweep result before they can reuse the shared
// buffers for the next frame.
type Worker struct {
	id   string
	proc *Processor

	initChan  chan initMsg
	sweepChan chan sweepMsg
	closeChan chan struct{}
	wg        sync.WaitGroup

	logger log.Logger
}

type initMsg struct {
	params InitParams
	reply  chan error
}

type sweepMsg struct {
	req   SweepRequest
	reply chan sweepReply
}

type sweepReply struct {
	result SweepResult
	err    error
}

// NewWorker starts the worker goroutine and returns a handle to it. Close
// must be called to release the goroutine.
func NewWorker() *Worker {
	id := uuid.New().String()
	w := &Worker{
		id:        id,
		proc:      &Processor{},
		initChan:  make(chan initMsg),
		sweepChan: make(chan sweepMsg),
		closeChan: make(chan struct{}),
		logger:    log.New("sweep.worker." + id[:8]),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

// ID returns the worker's unique identifier, assigned at construction time
// and used to correlate its log lines across a fleet of workers.
func (w *Worker) ID() string {
	return w.id
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case m := <-w.initChan:
			err := w.proc.Init(m.params)
			if err != nil {
				w.logger.Errorf("init failed: %v", err)
			}
			m.reply <- err
		case m := <-w.sweepChan:
			result, err := w.proc.Sweep(m.req)
			if err != nil {
				w.logger.Errorf("sweep failed: %v", err)
			}
			m.reply <- sweepReply{result: result, err: err}
		case <-w.closeChan:
			w.logger.Debug("worker stopped")
			return
		}
	}
}

// Init forwards params to the worker goroutine's Processor and blocks until
// it replies.
func (w *Worker) Init(params InitParams) error {
	reply := make(chan error, 1)
	w.initChan <- initMsg{params: params, reply: reply}
	return <-reply
}

// Sweep forwards req to the worker goroutine's Processor and blocks until
// it replies with a SweepResult.
func (w *Worker) Sweep(req SweepRequest) (SweepResult, error) {
	reply := make(chan sweepReply, 1)
	w.sweepChan <- sweepMsg{req: req, reply: reply}
	r := <-reply
	return r.result, r.err
}

// Close signals the worker goroutine to exit and waits for it to do so.
func (w *Worker) Close() {
	close(w.closeChan)
	w.wg.Wait()
}
