package model

// Observer is told when a document's content or title changes.
type Observer interface {
	DocumentChanged(doc *Document)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(doc *Document)

// DocumentChanged implements Observer.
func (f ObserverFunc) DocumentChanged(doc *Document) { f(doc) }

type subscription struct {
	id       uint64
	observer Observer
}

// Attach registers o for change notifications and returns a function
// that detaches it. The detach function is idempotent.
func (d *Document) Attach(o Observer) (detach func()) {
	if o == nil {
		return func() {}
	}
	d.nextSubID++
	id := d.nextSubID
	d.observers = append(d.observers, subscription{id: id, observer: o})

	return func() {
		for i, s := range d.observers {
			if s.id == id {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// ObserverCount returns the number of attached observers.
func (d *Document) ObserverCount() int { return len(d.observers) }

func (d *Document) notify() {
	// Copy so observers may detach during notification.
	subs := make([]subscription, len(d.observers))
	copy(subs, d.observers)
	for _, s := range subs {
		s.observer.DocumentChanged(d)
	}
}
