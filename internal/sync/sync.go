//go:build !beanproto_deadlock

// Package sync aliases the mutexes used across the module. Building with
// the beanproto_deadlock tag swaps them for deadlock detecting ones.
package sync

import "sync"

type (
	Mutex     = sync.Mutex
	RWMutex   = sync.RWMutex
	Once      = sync.Once
	WaitGroup = sync.WaitGroup
)
