package users

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/models"
)

// MemoryRepository keeps records in process memory. It enforces the same
// id and userid uniqueness as the PostgreSQL table.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]models.UserRecord
	byUserID map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:     make(map[string]models.UserRecord),
		byUserID: make(map[string]string),
	}
}

func (r *MemoryRepository) List(_ context.Context) ([]models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.UserRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		users = append(users, rec)
	}
	models.SortByUserID(users)
	return users, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return models.UserRecord{}, &common.NotFoundError{ID: id}
	}
	return rec, nil
}

func (r *MemoryRepository) FindByUserID(_ context.Context, userID string) (*models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserID[userID]
	if !ok {
		return nil, nil
	}
	rec := r.byID[id]
	return &rec, nil
}

func (r *MemoryRepository) checkInsert(rec models.UserRecord) error {
	if _, ok := r.byID[rec.ID]; ok {
		return fmt.Errorf("%w: id %s", common.ErrDuplicateKey, rec.ID)
	}
	if _, ok := r.byUserID[rec.UserID]; ok {
		return &common.DuplicateUserError{UserID: rec.UserID}
	}
	return nil
}

func (r *MemoryRepository) put(rec models.UserRecord) {
	r.byID[rec.ID] = rec
	r.byUserID[rec.UserID] = rec.ID
}

func (r *MemoryRepository) Insert(_ context.Context, rec models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkInsert(rec); err != nil {
		return err
	}
	r.put(rec)
	return nil
}

func (r *MemoryRepository) InsertMany(_ context.Context, recs []models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seenIDs := make(map[string]struct{}, len(recs))
	seenUserIDs := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		if err := r.checkInsert(rec); err != nil {
			return err
		}
		if _, ok := seenIDs[rec.ID]; ok {
			return fmt.Errorf("%w: id %s", common.ErrDuplicateKey, rec.ID)
		}
		if _, ok := seenUserIDs[rec.UserID]; ok {
			return &common.DuplicateUserError{UserID: rec.UserID}
		}
		seenIDs[rec.ID] = struct{}{}
		seenUserIDs[rec.UserID] = struct{}{}
	}
	for _, rec := range recs {
		r.put(rec)
	}
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, rec models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[rec.ID]
	if !ok {
		return &common.NotFoundError{ID: rec.ID}
	}
	if owner, taken := r.byUserID[rec.UserID]; taken && owner != rec.ID {
		return &common.DuplicateUserError{UserID: rec.UserID}
	}

	rec.CreatedAt = cur.CreatedAt
	delete(r.byUserID, cur.UserID)
	r.put(rec)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.byID[id]; ok {
		delete(r.byUserID, rec.UserID)
		delete(r.byID, id)
	}
	return nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
