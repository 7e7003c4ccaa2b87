// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Do("book-1", func() {
				counter++
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := New()

	km.Lock("a")

	done := make(chan struct{})
	go func() {
		// must not block on an unrelated key
		km.Do("b", func() {})
		close(done)
	}()

	<-done
	km.Unlock("a")
}

func TestKeyMutex_ReleasesEntries(t *testing.T) {
	km := New()

	km.Lock("a")
	km.Unlock("a")

	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.entries, "entries should be reclaimed after unlock")
}

func TestKeyMutex_UnlockUnlockedPanics(t *testing.T) {
	km := New()

	assert.Panics(t, func() {
		km.Unlock("missing")
	})
}
