package app

import (
	"sync"

	"olympiad-quiz-service/internal/domain"
)

const feedBuffer = 8

// AttemptFeed broadcasts recorded attempts to live subscribers.
type AttemptFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.QuizAttempt]struct{}
}

func NewAttemptFeed() *AttemptFeed {
	return &AttemptFeed{subscribers: make(map[chan domain.QuizAttempt]struct{})}
}

// Subscribe returns a channel of attempts published from now on.
// The caller must invoke the returned cancel function to avoid leaks.
func (f *AttemptFeed) Subscribe() (<-chan domain.QuizAttempt, func()) {
	ch := make(chan domain.QuizAttempt, feedBuffer)
	if f == nil {
		close(ch)
		return ch, func() {}
	}

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers attempt to every subscriber. A full subscriber loses its oldest
// pending attempt instead of blocking the publisher. A nil feed drops it.
func (f *AttemptFeed) Publish(attempt domain.QuizAttempt) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- attempt:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- attempt
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (f *AttemptFeed) Subscribers() int {
	if f == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}
