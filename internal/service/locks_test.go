package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("root-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()
	unlockA := km.Lock("root-a")

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("root-b")
		unlockB()
		close(done)
	}()
	<-done // would deadlock if root-b waited on root-a
	unlockA()
}

func TestKeyedMutex_EntryReleasedAfterUse(t *testing.T) {
	km := NewKeyedMutex()
	unlock := km.Lock("root-1")
	unlock()
	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks, "refcounted entries are removed when idle")
}
