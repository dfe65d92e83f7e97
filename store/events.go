package store

// Subscribe returns a channel that receives a value after state changes.
// Notifications coalesce: a slow subscriber sees at least one signal after
// the latest change and should read Snapshot for the details. The returned
// func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()

	var cancelled bool
	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if cancelled {
			return
		}
		cancelled = true
		delete(s.subscribers, ch)
		close(ch)
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
