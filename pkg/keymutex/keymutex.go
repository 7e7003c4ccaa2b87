// Copyright (c) 2026 BookWorm Labs. All rights reserved.

// Package keymutex provides per-key mutual exclusion.
//
// # Overview
//
// It serializes critical sections keyed by an arbitrary string (e.g., a book ID)
// while allowing operations on distinct keys to proceed concurrently. Mutexes
// are reference-counted and released back when no goroutine holds or waits on
// the key, so the map does not grow unboundedly with the keyspace.
package keymutex

import "sync"

// entry is a single keyed mutex with a waiter count.
type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyMutex is a set of mutexes addressed by string keys.
// The zero value is not usable; construct with [New].
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for the given key, blocking until it is available.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key.
// It panics if the key is not currently locked.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// Do runs fn while holding the mutex for key.
func (k *KeyMutex) Do(key string, fn func()) {
	k.Lock(key)
	defer k.Unlock(key)
	fn()
}
