// Package notify fans setting changes out to observers.
//
// A Notifier is the ChangeSink handed to the bound tree. Observers can watch
// every change or only the changes under one node, and can be delivered to
// synchronously or from a single background worker that keeps the order in
// which changes were notified.
package notify

import (
	"strings"
	"sync"

	"alvrsettings/internal/domain/entities"
	"alvrsettings/internal/domain/schema"
	"alvrsettings/internal/ports/output"
)

var _ output.ChangeSink = (*Notifier)(nil)

// Observer is called once per delivered change.
type Observer func(change entities.Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type pathObserver struct {
	exact    string
	prefix   string
	observer Observer
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	globalObservers map[uint64]Observer
	pathObservers   map[uint64]pathObserver
	nextID          uint64

	async  bool
	buffer chan entities.Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync delivers changes from a background worker fed by a buffer of
// bufferSize changes. Notify blocks only while the buffer is full.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan entities.Change, bufferSize)
		}
	}
}

// New creates a Notifier. Without WithAsync observers run on the caller's
// goroutine, inside BoundTree.Set, and must not re-enter the bound tree.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		pathObservers:   make(map[uint64]pathObserver),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}
	return n
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer
	return &Subscription{id: id, notifier: n}
}

// SubscribePath registers an observer for the node at path and everything
// below it. Subscribing to "_root_video_tab" receives the changes of every
// video setting; subscribing to a choice receives its selection changes and
// the changes inside its variants.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	base := strings.TrimSuffix(strings.TrimSuffix(path, schema.TabSuffix), schema.ChoiceSuffix)

	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.pathObservers[id] = pathObserver{
		exact:    path,
		prefix:   base + schema.Separator,
		observer: observer,
	}
	return &Subscription{id: id, notifier: n}
}

// Notify delivers change to the matching observers. Changes notified after
// Close are dropped.
func (n *Notifier) Notify(change entities.Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}
	n.deliver(change)
}

// Close stops the worker after draining buffered changes. It is safe to
// call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)
	delete(n.pathObservers, id)
}

func (n *Notifier) deliver(change entities.Change) {
	n.mu.RLock()
	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for _, po := range n.pathObservers {
		if change.Path == po.exact || strings.HasPrefix(change.Path, po.prefix) {
			observers = append(observers, po.observer)
		}
	}
	n.mu.RUnlock()

	// Observers run outside the lock so they may subscribe or unsubscribe.
	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		case <-n.done:
			for {
				select {
				case change := <-n.buffer:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}
