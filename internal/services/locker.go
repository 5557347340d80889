package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redsync/redsync/v4"
)

// RedsyncLocker serialises draws of one user across API instances.
type RedsyncLocker struct {
	rs *redsync.Redsync
}

func NewRedsyncLocker(rs *redsync.Redsync) *RedsyncLocker {
	return &RedsyncLocker{rs}
}

func (locker *RedsyncLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	mutex := locker.rs.NewMutex(LockKeyUserDraw(userID), redsync.WithExpiry(LOCK_EXPIRY_DRAW))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDrawLock, err)
	}

	return func() {
		// nolint:errcheck
		mutex.UnlockContext(context.WithoutCancel(ctx))
	}, nil
}

// KeyedMutex is the in-process UserLocker, one lock per user. Waiting stops
// when ctx is done.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*keyedEntry
}

type keyedEntry struct {
	held chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[int64]*keyedEntry)}
}

func (k *KeyedMutex) Lock(ctx context.Context, userID int64) (func(), error) {
	k.mu.Lock()
	entry, ok := k.locks[userID]
	if !ok {
		entry = &keyedEntry{held: make(chan struct{}, 1)}
		k.locks[userID] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.held <- struct{}{}:
	case <-ctx.Done():
		k.release(userID, entry)
		return nil, fmt.Errorf("%w: %w", ErrDrawLock, ctx.Err())
	}

	return func() {
		<-entry.held
		k.release(userID, entry)
	}, nil
}

func (k *KeyedMutex) release(userID int64, entry *keyedEntry) {
	k.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, userID)
	}
	k.mu.Unlock()
}
