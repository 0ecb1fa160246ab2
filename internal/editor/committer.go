package editor

import (
	"context"
	"log"
	"sync"
)

// PersistFunc writes a batch of committed records to the backing store. All
// records in a batch are persisted together.
type PersistFunc func(ctx context.Context, records []CommitRecord) error

// FailureHandler is notified when persistence fails. The in-memory committed
// state is retained so the user's edits are not lost; the same payload can be
// retried by the caller.
type FailureHandler func(err error, records []CommitRecord)

// Committer applies commits to the persisted store in the order their drags
// ended. A single worker goroutine drains the queue, so batches never
// interleave and a later commit for the same zone simply supersedes an
// earlier one. Enqueue never blocks the interaction on persistence.
type Committer struct {
	queue     chan []CommitRecord
	persist   PersistFunc
	onFailure FailureHandler
	mu        sync.Mutex
	closed    bool
	done      chan struct{}
}

// NewCommitter starts the commit worker. onFailure may be nil, in which case
// failures are only logged.
func NewCommitter(persist PersistFunc, onFailure FailureHandler) *Committer {
	c := &Committer{
		queue:     make(chan []CommitRecord, 256),
		persist:   persist,
		onFailure: onFailure,
		done:      make(chan struct{}),
	}
	go c.run()
	return c
}

// Enqueue hands a batch to the worker. Call it with the records a CommitSink
// receives; batches are persisted strictly in enqueue order. Batches enqueued
// after Close are dropped.
func (c *Committer) Enqueue(records []CommitRecord) {
	if len(records) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.queue <- records
}

// Sink adapts the committer to the editor's CommitSink signature.
func (c *Committer) Sink() CommitSink {
	return func(records []CommitRecord) { c.Enqueue(records) }
}

// Close drains outstanding batches and stops the worker.
func (c *Committer) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()
	<-c.done
}

func (c *Committer) run() {
	defer close(c.done)
	for records := range c.queue {
		if err := c.persist(context.Background(), records); err != nil {
			log.Printf("geometry commit failed for %d zone(s): %v", len(records), err)
			if c.onFailure != nil {
				c.onFailure(err, records)
			}
		}
	}
}
