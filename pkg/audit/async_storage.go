package audit

import (
	"context"
	"slices"
	"sync"
	"time"
)

// AsyncOptions configures batching and buffering.
type AsyncOptions struct {
	BufferSize     int           // Max Store calls queued before the buffer counts as full
	BatchSize      int           // Events per write to the wrapped storage
	BatchTimeout   time.Duration // Max time a partial batch waits before it is written
	StorageTimeout time.Duration // Per-batch timeout for the wrapped storage
	// DropOnFull makes Store return ErrBufferFull instead of writing
	// synchronously when the buffer is full.
	DropOnFull bool
	// OnError receives write failures of the background worker.
	OnError func(err error, events []Event)
}

// AsyncStorage queues events and writes them to another Storage in batches
// from a single background goroutine. Store returns once the events are
// queued, so request handlers do not wait on audit I/O.
type AsyncStorage struct {
	next    Storage
	queue   chan []Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	options AsyncOptions
}

// NewAsyncStorage starts the worker. Call Close on shutdown to flush queued events.
func NewAsyncStorage(next Storage, opts AsyncOptions) *AsyncStorage {
	if next == nil {
		panic("audit: storage cannot be nil")
	}

	if opts.BufferSize <= 0 {
		opts.BufferSize = 1000
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = 100 * time.Millisecond
	}
	if opts.StorageTimeout <= 0 {
		opts.StorageTimeout = 5 * time.Second
	}

	s := &AsyncStorage{
		next:    next,
		queue:   make(chan []Event, opts.BufferSize),
		done:    make(chan struct{}),
		options: opts,
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *AsyncStorage) Store(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStorageClosed
	}

	select {
	case s.queue <- slices.Clone(events):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if s.options.DropOnFull {
		return ErrBufferFull
	}
	// Buffer full: write through rather than lose the events.
	return s.next.Store(ctx, events...)
}

func (s *AsyncStorage) worker() {
	defer s.wg.Done()

	batch := make([]Event, 0, s.options.BatchSize)
	ticker := time.NewTicker(s.options.BatchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		// Detached from request contexts: a finished request must not cancel its audit write.
		ctx, cancel := context.WithTimeout(context.Background(), s.options.StorageTimeout)
		defer cancel()

		if err := s.next.Store(ctx, batch...); err != nil && s.options.OnError != nil {
			s.options.OnError(err, append([]Event(nil), batch...))
		}

		clear(batch)
		batch = batch[:0]
	}

	for {
		select {
		case events := <-s.queue:
			batch = append(batch, events...)
			if len(batch) >= s.options.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-s.done:
			for {
				select {
				case events := <-s.queue:
					batch = append(batch, events...)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close stops accepting events and waits for queued events to be written.
// If ctx expires first, Close returns ctx.Err() and the worker keeps draining
// in the background.
func (s *AsyncStorage) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
