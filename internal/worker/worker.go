// Package worker runs background jobs such as outgoing email off the request
// path.
package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a simple worker pool.
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool creates a pool with n workers and a queue of queueSize pending
// tasks. n<=0 defaults to 1. A panicking task is logged and the worker keeps
// running.
func NewPool(n, queueSize int, logger logrus.FieldLogger) Pool {
	if n <= 0 {
		n = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &pool{jobs: make(chan Task, queueSize), logger: logger}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan Task
	wg     sync.WaitGroup
	logger logrus.FieldLogger

	mu      sync.Mutex
	stopped bool
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("panic", r).Error("worker task panicked")
		}
	}()
	job()
}

// Submit 佇列滿時會阻塞；Stop 之後送入的工作直接丟棄
func (p *pool) Submit(t Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		p.logger.Warn("worker pool stopped, task discarded")
		return
	}
	p.jobs <- t
}

// Stop waits for queued tasks to finish.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
