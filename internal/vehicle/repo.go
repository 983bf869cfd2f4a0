package vehicle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repo owns all access to the vehicles table. Uniqueness is enforced by the
// table's unique index on vin, never by a check-then-insert, so concurrent
// writers are serialized by the database itself.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// ListFilter narrows FindAll. Zero values mean "no filter".
type ListFilter struct {
	VIN  string // exact match
	Make string // substring match
}

// Insert stores a new vehicle, assigning an id when none is set.
// A vin already present in the table yields ErrDuplicateVIN.
func (r *Repo) Insert(ctx context.Context, v *Vehicle) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateVIN
		}
		return err
	}
	return nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Vehicle, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var v Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *Repo) FindAll(ctx context.Context, filter ListFilter) ([]Vehicle, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := r.db.WithContext(ctx).Model(&Vehicle{})
	if filter.VIN != "" {
		q = q.Where("vin = ?", filter.VIN)
	}
	if filter.Make != "" {
		q = q.Where("make LIKE ?", "%"+filter.Make+"%")
	}
	var vehicles []Vehicle
	if err := q.Order("created_at desc").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// UpdatePartial applies patch (column -> value) to one row in a single UPDATE
// and returns the refreshed record. updated_at is always touched, even for an
// empty patch, so the statement's affected-row count doubles as an existence
// check. A vin collision yields ErrDuplicateVIN.
func (r *Repo) UpdatePartial(ctx context.Context, id string, patch map[string]any) (*Vehicle, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	cols := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		cols[k] = v
	}
	cols["updated_at"] = time.Now()

	tx := r.db.WithContext(ctx).Model(&Vehicle{}).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateVIN
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// DeleteByID removes a vehicle permanently.
func (r *Repo) DeleteByID(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Vehicle{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
