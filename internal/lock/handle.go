package lock

import "sync"

// Handle is the scoped result of one successful Acquire. Releasing it drops
// exactly one hold on its Lock, however many times Release is called.
//
//	h, err := lk.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
type Handle struct {
	lock *Lock
	once sync.Once
}

// Lock returns the Lock this handle holds
func (h *Handle) Lock() *Lock {
	return h.lock
}

// Release releases the hold taken by the Acquire that returned h
func (h *Handle) Release() {
	h.once.Do(h.lock.Release)
}
