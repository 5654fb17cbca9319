// Package iocache holds the parse cache and the session history stores.
package iocache

import (
	"sync"

	"github.com/qixiboss/gaitscore/internal/contract"
)

// CacheStoreManager manages the store instances used by a run.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	frames       contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetFrameStore returns the parse cache store.
func (mgr *CacheStoreManager) GetFrameStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.frames
}

// GetHistoryStore returns the session history store.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
