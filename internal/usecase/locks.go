package usecase

import (
	"sort"
	"sync"
)

// lockTable hands out one mutex per account number.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (lt *lockTable) get(number string) *sync.Mutex {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	l, ok := lt.locks[number]
	if !ok {
		l = &sync.Mutex{}
		lt.locks[number] = l
	}
	return l
}

// acquire locks every distinct number in sorted order and returns the release func.
// Sorting keeps concurrent multi-account operations from deadlocking.
func (lt *lockTable) acquire(numbers ...string) func() {
	unique := make([]string, 0, len(numbers))
	seen := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	sort.Strings(unique)

	held := make([]*sync.Mutex, 0, len(unique))
	for _, n := range unique {
		l := lt.get(n)
		l.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
