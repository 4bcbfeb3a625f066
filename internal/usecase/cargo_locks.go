package usecase

import (
	"sync"

	"cargotracker-service/internal/domain/entity"
)

// cargoLocks hands out one mutex per tracking id so that mutations of the
// same cargo are serialized while different cargos proceed in parallel.
// Entries are kept for the life of the process.
type cargoLocks struct {
	mu    sync.Mutex
	locks map[entity.TrackingID]*sync.Mutex
}

func newCargoLocks() *cargoLocks {
	return &cargoLocks{locks: make(map[entity.TrackingID]*sync.Mutex)}
}

func (c *cargoLocks) forCargo(trackingID entity.TrackingID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[trackingID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[trackingID] = lock
	}
	return lock
}
