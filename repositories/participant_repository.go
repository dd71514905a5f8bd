package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Dosada05/participants-admin/models"
)

var (
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrParticipantConflict    = errors.New("participant conflict: id already exists")
	ErrParticipantRoleInvalid = errors.New("participant role is not one of the known roles")
)

type ParticipantRepository interface {
	List(ctx context.Context) ([]models.Participant, error)
	FindByID(ctx context.Context, id int64) (*models.Participant, error)
	Create(ctx context.Context, p *models.Participant) error
	Modify(ctx context.Context, id int64, fn func(p *models.Participant) error) (*models.Participant, error)
	Delete(ctx context.Context, id int64) (*models.Participant, error)
	Len() int
}

// memoryParticipantRepository хранит участников только в памяти процесса.
// Порядок вставки сохраняется, чтобы таблица выглядела как исходная фикстура.
type memoryParticipantRepository struct {
	mu    sync.RWMutex
	order []int64
	byID  map[int64]models.Participant
}

// NewMemoryParticipantRepository seeds the collection with the given records.
// Seed records are subject to the same invariants as Create.
func NewMemoryParticipantRepository(seed []models.Participant) (ParticipantRepository, error) {
	r := &memoryParticipantRepository{
		order: make([]int64, 0, len(seed)),
		byID:  make(map[int64]models.Participant, len(seed)),
	}
	for i := range seed {
		if err := r.insert(&seed[i]); err != nil {
			return nil, fmt.Errorf("failed to seed participant %d: %w", seed[i].ID, err)
		}
	}
	return r, nil
}

func (r *memoryParticipantRepository) List(ctx context.Context) ([]models.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	participants := make([]models.Participant, 0, len(r.order))
	for _, id := range r.order {
		participants = append(participants, r.byID[id].Clone())
	}
	return participants, nil
}

func (r *memoryParticipantRepository) FindByID(ctx context.Context, id int64) (*models.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	c := p.Clone()
	return &c, nil
}

func (r *memoryParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(p)
}

func (r *memoryParticipantRepository) insert(p *models.Participant) error {
	if err := checkRole(p); err != nil {
		return err
	}
	if _, exists := r.byID[p.ID]; exists {
		return ErrParticipantConflict
	}
	r.byID[p.ID] = p.Clone()
	r.order = append(r.order, p.ID)
	return nil
}

// Modify применяет fn к копии записи и сохраняет результат под одной
// блокировкой записи, поэтому параллельные правки одной записи не теряются.
// Ошибка fn или невалидная роль оставляют запись без изменений.
func (r *memoryParticipantRepository) Modify(ctx context.Context, id int64, fn func(p *models.Participant) error) (*models.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	next := stored.Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = id
	if err := checkRole(&next); err != nil {
		return nil, err
	}
	r.byID[id] = next.Clone()
	return &next, nil
}

// Delete removes the record and returns it as it was at removal time.
func (r *memoryParticipantRepository) Delete(ctx context.Context, id int64) (*models.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, ok := r.byID[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &removed, nil
}

func (r *memoryParticipantRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func checkRole(p *models.Participant) error {
	if p.Role.Name != "" && !p.Role.Name.Valid() {
		return fmt.Errorf("%w: %q", ErrParticipantRoleInvalid, p.Role.Name)
	}
	return nil
}
