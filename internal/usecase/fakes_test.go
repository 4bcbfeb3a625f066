package usecase

import (
	"context"
	"sync"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
)

// memCargoRepo is an in-memory CargoRepository safe for concurrent use
type memCargoRepo struct {
	mu     sync.Mutex
	cargos map[entity.TrackingID]entity.Cargo
}

func newMemCargoRepo(cargos ...*entity.Cargo) *memCargoRepo {
	repo := &memCargoRepo{cargos: make(map[entity.TrackingID]entity.Cargo)}
	for _, c := range cargos {
		repo.cargos[c.TrackingID] = *c
	}
	return repo
}

func (r *memCargoRepo) Find(ctx context.Context, trackingID entity.TrackingID) (*entity.Cargo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cargo, ok := r.cargos[trackingID]
	if !ok {
		return nil, repository.ErrCargoNotFound
	}
	copied := cargo
	return &copied, nil
}

func (r *memCargoRepo) Store(ctx context.Context, cargo *entity.Cargo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cargos[cargo.TrackingID] = *cargo
	return nil
}

// memLocationRepo resolves a fixed set of locations
type memLocationRepo struct {
	locations map[entity.UNLocode]entity.Location
}

func newMemLocationRepo(locodes ...entity.UNLocode) *memLocationRepo {
	repo := &memLocationRepo{locations: make(map[entity.UNLocode]entity.Location)}
	for _, code := range locodes {
		repo.locations[code] = entity.Location{UNLocode: code, Name: string(code)}
	}
	return repo
}

func (r *memLocationRepo) Find(ctx context.Context, locode entity.UNLocode) (*entity.Location, error) {
	location, ok := r.locations[locode]
	if !ok {
		return nil, nil
	}
	return &location, nil
}

func (r *memLocationRepo) Require(ctx context.Context, locode entity.UNLocode) (*entity.Location, error) {
	location, err := r.Find(ctx, locode)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, repository.ErrLocationNotFound
	}
	return location, nil
}

func (r *memLocationRepo) ListAll(ctx context.Context) ([]entity.Location, error) {
	all := make([]entity.Location, 0, len(r.locations))
	for _, location := range r.locations {
		all = append(all, location)
	}
	return all, nil
}

// memVoyageRepo resolves a fixed set of voyages
type memVoyageRepo struct {
	voyages map[entity.VoyageNumber]entity.Voyage
}

func newMemVoyageRepo(numbers ...entity.VoyageNumber) *memVoyageRepo {
	repo := &memVoyageRepo{voyages: make(map[entity.VoyageNumber]entity.Voyage)}
	for _, number := range numbers {
		repo.voyages[number] = entity.Voyage{Number: number}
	}
	return repo
}

func (r *memVoyageRepo) Find(ctx context.Context, number entity.VoyageNumber) (*entity.Voyage, error) {
	voyage, ok := r.voyages[number]
	if !ok {
		return nil, nil
	}
	return &voyage, nil
}

func (r *memVoyageRepo) Require(ctx context.Context, number entity.VoyageNumber) (*entity.Voyage, error) {
	voyage, err := r.Find(ctx, number)
	if err != nil {
		return nil, err
	}
	if voyage == nil {
		return nil, repository.ErrVoyageNotFound
	}
	return voyage, nil
}

// recordingNotifier records misdirection notifications and signals each one
type recordingNotifier struct {
	mu       sync.Mutex
	notified []entity.TrackingID
	signal   chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{signal: make(chan struct{}, 16)}
}

func (n *recordingNotifier) NotifyMisdirection(ctx context.Context, cargo *entity.Cargo, event entity.HandlingEvent) error {
	n.mu.Lock()
	n.notified = append(n.notified, cargo.TrackingID)
	n.mu.Unlock()
	n.signal <- struct{}{}
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notified)
}
