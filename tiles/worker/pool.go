package worker

import (
	"context"
	"time"
)

// Pool runs queued tasks on a bounded set of goroutines.
type Pool struct {
	workers chan struct{}
	tasks   chan Task
	quit    chan struct{}
}

// Task is one unit of work. It is skipped if Ctx is already done when a
// worker picks it up, and abandoned if Ctx is cancelled while it runs.
type Task struct {
	Ctx  context.Context
	Work func() error
}

func NewPool(maxWorkers int) *Pool {
	p := &Pool{
		workers: make(chan struct{}, maxWorkers),
		tasks:   make(chan Task, 100),
		quit:    make(chan struct{}),
	}
	go p.dispatcher()
	return p
}

func (p *Pool) dispatcher() {
	for {
		select {
		case <-p.quit:
			return
		case task := <-p.tasks:
			if task.Ctx != nil && task.Ctx.Err() != nil {
				continue
			}
			select {
			case p.workers <- struct{}{}:
				go p.run(task)
			default:
				// All workers busy, requeue after a beat.
				go func() {
					time.Sleep(100 * time.Millisecond)
					p.Submit(task)
				}()
			}
		}
	}
}

func (p *Pool) run(task Task) {
	defer func() { <-p.workers }()

	if task.Ctx != nil && task.Ctx.Err() != nil {
		return
	}

	done := make(chan error, 1)
	go func() {
		done <- task.Work()
	}()

	var cancelled <-chan struct{}
	if task.Ctx != nil {
		cancelled = task.Ctx.Done()
	}
	select {
	case <-cancelled:
	case <-done:
	case <-time.After(10 * time.Second):
	}
}

// Submit queues a task, retrying shortly if the queue is full. Tasks
// submitted after Shutdown are dropped.
func (p *Pool) Submit(task Task) {
	select {
	case <-p.quit:
	case p.tasks <- task:
	default:
		go func() {
			time.Sleep(100 * time.Millisecond)
			p.Submit(task)
		}()
	}
}

func (p *Pool) Shutdown() {
	close(p.quit)
}
