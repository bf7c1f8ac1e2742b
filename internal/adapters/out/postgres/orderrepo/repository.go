package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate kernel.AggregateRoot)
}

// NewGormOrderRepository creates a repository on db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Save inserts a new order or updates an existing one guarded by its version, replacing all items.
// Callers should run it inside a transaction so the order row and its items change together.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)

	var err error
	if aggregate.Version() == 0 {
		err = r.insert(db, dto)
	} else {
		err = r.update(db, dto)
	}
	if err != nil {
		return err
	}

	aggregate.IncrementVersion()
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID().UUID(), aggregate)
	}
	return nil
}

func (r *GormOrderRepository) insert(db *gorm.DB, dto OrderDTO) error {
	exists, err := r.exists(db, dto.ID)
	if err != nil {
		return err
	}
	if exists {
		return errs.NewVersionIsInvalidErrorWithCause("version",
			errs.NewValueIsInvalidError("order "+dto.ID.String()+" already exists"))
	}

	dto.Version = 1
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewVersionIsInvalidErrorWithCause("version", err)
		}
		return err
	}
	return nil
}

func (r *GormOrderRepository) update(db *gorm.DB, dto OrderDTO) error {
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":  dto.Status,
			"version": dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(db, dto.ID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("orderID", dto.ID.String())
		}
		return errs.NewVersionIsInvalidError("version of order " + dto.ID.String())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.UUID().Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDWithItems is GetByID; items are always preloaded.
func (r *GormOrderRepository) GetByIDWithItems(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id.UUID().Bytes()).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id.UUID().Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderID", id.String())
	}
	return nil
}

func (r *GormOrderRepository) Exists(ctx context.Context, id kernel.OrderID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}
	return r.exists(r.db.WithContext(ctx), id.UUID().Bytes())
}

func (r *GormOrderRepository) GetOrdersByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.withItems(ctx).
		Where("customer_id = ?", customerID.UUID().Bytes()).
		Order("order_date, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) GetDraftsCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withItems(ctx).
		Where("status = ? AND order_date < ?", int(order.Draft), cutoff).
		Order("order_date, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *GormOrderRepository) exists(db *gorm.DB, id any) (bool, error) {
	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
