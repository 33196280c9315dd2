package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (s *recordingSink) Log(_ context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zap.NewNop(), 10)

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{CompanyID: 1, Action: ActionCreate})
	}
	d.Close()

	assert.Len(t, sink.events, 5)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(sink, zap.New(core), 1)

	// the worker holds one event, the queue holds one more
	for i := 0; i < 5; i++ {
		d.Dispatch(Event{CompanyID: 1, Action: ActionDelete, Entity: "client"})
	}
	close(sink.block)
	d.Close()

	assert.Less(t, len(sink.events), 5)
	assert.NotZero(t, logs.FilterMessage("audit queue full, dropping event").Len())
}

func TestDispatcher_LogsSinkErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	d := NewDispatcher(&recordingSink{err: errors.New("db down")}, zap.New(core), 1)

	d.Dispatch(Event{CompanyID: 7, Action: ActionStatus})
	d.Close()

	assert.Equal(t, 1, logs.FilterMessage("audit write failed").Len())
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: ActionCreate})
	d.Close()
}
