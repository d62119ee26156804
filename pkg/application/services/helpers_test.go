package services

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/Garbi-Collector/stokea2/pkg/infrastructure/testing"
)

// monday is a fixed morning used as "today" in service tests
var monday = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

type fixture struct {
	deps   Dependencies
	store  *memory.Store
	clock  *testhelpers.Clock
	events *events.LocalBus
	seen   *typeRecorder
}

// typeRecorder collects the type of every event it is handed
type typeRecorder struct {
	mu    sync.Mutex
	types []string
}

func (r *typeRecorder) Handle(e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, e.Type())
	return nil
}

func (r *typeRecorder) CanHandle(string) bool {
	return true
}

func newFixture() *fixture {
	store := testhelpers.BuildShopTestData()
	clock := testhelpers.NewClock(monday)
	bus := events.NewLocalBus()
	seen := &typeRecorder{}
	_ = bus.Subscribe(events.AllEventTypes, seen)
	return &fixture{
		deps: Dependencies{
			Store:  store,
			Events: bus,
			Now:    clock.Now,
			Logger: log.New(io.Discard, "", 0),
		},
		store:  store,
		clock:  clock,
		events: bus,
		seen:   seen,
	}
}

func (f *fixture) eventTypes() []string {
	f.events.Wait()
	f.seen.mu.Lock()
	defer f.seen.mu.Unlock()
	return append([]string(nil), f.seen.types...)
}

func countType(types []string, want string) int {
	n := 0
	for _, t := range types {
		if t == want {
			n++
		}
	}
	return n
}
