package book

// Subject fans out events to subscribed listeners. Delivery is synchronous
// and in subscription order; a listener sees the event before the call that
// raised it returns.
type Subject[E any] struct {
	nextID    int
	listeners []listener[E]
}

type listener[E any] struct {
	id int
	fn func(E)
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (s *Subject[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[E]{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify delivers e to every current listener. Listeners added or removed
// while Notify runs take effect on the next event.
func (s *Subject[E]) Notify(e E) {
	snapshot := s.listeners
	for _, l := range snapshot {
		l.fn(e)
	}
}

// Len returns the number of subscribed listeners.
func (s *Subject[E]) Len() int {
	return len(s.listeners)
}
