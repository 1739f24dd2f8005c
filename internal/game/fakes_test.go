package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/youpv/whosthatpokemon/internal/catalog"
)

// fakeCatalog serves queued records (or errors) in order.
type fakeCatalog struct {
	mu      sync.Mutex
	records []catalog.Record
	errs    []error
	calls   int
}

func (f *fakeCatalog) FetchRandomRecord(ctx context.Context) (catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return catalog.Record{}, f.errs[i]
	}
	if i < len(f.records) {
		return f.records[i], nil
	}
	if len(f.records) > 0 {
		return f.records[len(f.records)-1], nil
	}
	return catalog.Record{}, errors.New("fake catalog exhausted")
}

// manualScheduler records callbacks and runs them only when fired.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	delay     time.Duration
	f         func()
	cancelled bool
	fired     bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{delay: d, f: f}
	s.tasks = append(s.tasks, t)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t.fired || t.cancelled {
			return false
		}
		t.cancelled = true
		return true
	}
}

// fireAll runs every task that is neither cancelled nor already fired.
func (s *manualScheduler) fireAll() int {
	s.mu.Lock()
	var due []*manualTask
	for _, t := range s.tasks {
		if !t.cancelled && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
	return len(due)
}

// fireIgnoringCancel runs every task once, even cancelled ones, as a
// timer that lost the race with Stop would.
func (s *manualScheduler) fireIgnoringCancel() {
	s.mu.Lock()
	due := append([]*manualTask{}, s.tasks...)
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

func (s *manualScheduler) pending() []*manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTask
	for _, t := range s.tasks {
		if !t.cancelled && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// failingStore fails every write.
type failingStore struct{ value int }

func (f *failingStore) Get(ctx context.Context, key string) (int, error) { return f.value, nil }
func (f *failingStore) Set(ctx context.Context, key string, value int) error {
	return errors.New("disk full")
}

// blockingCatalog holds every fetch until release is closed.
type blockingCatalog struct {
	rec     catalog.Record
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func newBlockingCatalog(rec catalog.Record) *blockingCatalog {
	return &blockingCatalog{rec: rec, started: make(chan struct{}, 4), release: make(chan struct{})}
}

func (b *blockingCatalog) FetchRandomRecord(ctx context.Context) (catalog.Record, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return b.rec, nil
}

func (b *blockingCatalog) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
