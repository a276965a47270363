package replay

import (
	"bufio"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const defaultPoolSize = 4

// readerTask is one session's input stream, handed to a pool worker for
// line-by-line parsing.
type readerTask struct {
	session string
	reader  *bufio.Scanner
	done    chan struct{}
}

// workerPool drains readerTasks with a bounded number of goroutines,
// supervised by the harness's tomb — the same shape as the teacher's
// connection worker pool (internal/net/server.go's utils.WorkerPool),
// with a parsed line stream standing in for a TCP connection.
type workerPool struct {
	size  int
	tasks chan readerTask
}

func newWorkerPool(size int) *workerPool {
	if size <= 0 {
		size = defaultPoolSize
	}
	return &workerPool{size: size, tasks: make(chan readerTask, size)}
}

// run maintains up to size active workers until the tomb starts dying.
func (p *workerPool) run(t *tomb.Tomb, commands chan<- commandMessage) {
	slots := make(chan struct{}, p.size)
	for {
		select {
		case <-t.Dying():
			return
		case slots <- struct{}{}:
			t.Go(func() error {
				defer func() { <-slots }()
				return p.worker(t, commands)
			})
		}
	}
}

// worker handles exactly one readerTask and then exits; run() replaces
// it so the pool always has up to size workers available.
func (p *workerPool) worker(t *tomb.Tomb, commands chan<- commandMessage) error {
	select {
	case <-t.Dying():
		return nil
	case task := <-p.tasks:
		return drainTask(t, task, commands)
	}
}

// drainTask reads newline-delimited commands from task and forwards each
// parsed one onto commands, tagged with a fresh correlation id for log
// tracing across the pool.
func drainTask(t *tomb.Tomb, task readerTask, commands chan<- commandMessage) error {
	defer close(task.done)

	line := 0
	for task.reader.Scan() {
		line++
		cmd, err := ParseLine(task.reader.Text())
		if errors.Is(err, ErrEmptyLine) {
			continue
		}
		if err != nil {
			log.Error().
				Str("session", task.session).
				Int("line", line).
				Err(err).
				Msg("skipping unparsable replay line")
			continue
		}

		select {
		case commands <- commandMessage{correlationID: uuid.New().String(), session: task.session, cmd: cmd}:
		case <-t.Dying():
			return nil
		}
	}
	return task.reader.Err()
}
