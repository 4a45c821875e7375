package triggers

import "sync"

// SingleTrigger is a one-shot event. Any number of goroutines can wait on
// it, and all of them are released once it is triggered. Triggering it
// again has no effect.
type SingleTrigger struct {
	once     sync.Once
	listener chan struct{}
}

// NewSingleTrigger returns an untriggered SingleTrigger.
func NewSingleTrigger() *SingleTrigger {
	return &SingleTrigger{
		listener: make(chan struct{}),
	}
}

// Trigger fires the trigger. It is safe to call it more than once.
func (t *SingleTrigger) Trigger() {
	t.once.Do(func() {
		close(t.listener)
	})
}

// Listener returns a channel that is closed once the trigger fires.
func (t *SingleTrigger) Listener() <-chan struct{} {
	return t.listener
}

// Wait blocks until the trigger fires.
func (t *SingleTrigger) Wait() {
	<-t.listener
}

// IsTriggered returns whether the trigger has fired.
func (t *SingleTrigger) IsTriggered() bool {
	select {
	case <-t.listener:
		return true
	default:
		return false
	}
}
