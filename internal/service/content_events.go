package service

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// ContentKind names the content type a mutation touched.
type ContentKind string

// ContentAction names the mutation.
type ContentAction string

const (
	KindIntroduction   ContentKind = "introduction"
	KindWorkExperience ContentKind = "work-experience"
	KindBlog           ContentKind = "blog"

	ActionCreate ContentAction = "create"
	ActionUpdate ContentAction = "update"
	ActionDelete ContentAction = "delete"
)

// ContentEvent is emitted after a successful write through EditorService.
type ContentEvent struct {
	Kind   ContentKind
	Action ContentAction
	ID     uint
}

func (e ContentEvent) String() string {
	return fmt.Sprintf("%s %s #%d", e.Kind, e.Action, e.ID)
}

// ContentHandler reacts to a content event. Errors are logged, never returned to the writer.
type ContentHandler func(ctx context.Context, event ContentEvent) error

// ContentEvents fans content mutations out to subscribers. Each handler runs in its own
// goroutine so the writing request never waits on it.
type ContentEvents struct {
	mu       sync.RWMutex
	handlers []ContentHandler
	inflight sync.WaitGroup
}

// NewContentEvents returns an empty subscription list.
func NewContentEvents() *ContentEvents {
	return &ContentEvents{}
}

// Subscribe registers handler for every subsequent event.
func (e *ContentEvents) Subscribe(handler ContentHandler) {
	if handler == nil {
		return
	}
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	e.mu.Unlock()
}

// SubscribeKinds registers handler for events of the listed kinds only.
func (e *ContentEvents) SubscribeKinds(handler ContentHandler, kinds ...ContentKind) {
	wanted := make(map[ContentKind]bool, len(kinds))
	for _, kind := range kinds {
		wanted[kind] = true
	}
	e.Subscribe(func(ctx context.Context, event ContentEvent) error {
		if !wanted[event.Kind] {
			return nil
		}
		return handler(ctx, event)
	})
}

// Publish dispatches event to all subscribers asynchronously.
func (e *ContentEvents) Publish(event ContentEvent) {
	if e == nil {
		return
	}

	e.mu.RLock()
	handlers := make([]ContentHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	for _, handler := range handlers {
		e.inflight.Add(1)
		go e.run(handler, event)
	}
}

// Wait blocks until every dispatched handler has returned.
func (e *ContentEvents) Wait() {
	if e == nil {
		return
	}
	e.inflight.Wait()
}

func (e *ContentEvents) run(handler ContentHandler, event ContentEvent) {
	defer e.inflight.Done()
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[events] handler panicked on %s: %v", event, recovered)
		}
	}()

	if err := handler(context.Background(), event); err != nil {
		log.Printf("[events] handler failed on %s: %v", event, err)
	}
}
