// Package inventoryrepo keeps product stock in PostgreSQL and implements ports.InventoryService.
package inventoryrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.InventoryService = (*GormInventoryRepository)(nil)

// StockDTO is the stock level of one product.
type StockDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Available int       `gorm:"type:int;not null;check:available >= 0"`
}

func (StockDTO) TableName() string {
	return "stock"
}

// GormInventoryRepository reports stock from the stock table. Products without a row
// are treated as having defaultStock units.
type GormInventoryRepository struct {
	db           *gorm.DB
	defaultStock int
}

func NewGormInventoryRepository(db *gorm.DB, defaultStock int) *GormInventoryRepository {
	return &GormInventoryRepository{db: db, defaultStock: max(defaultStock, 0)}
}

// SetStock upserts the available quantity of a product.
func (r *GormInventoryRepository) SetStock(ctx context.Context, productID kernel.ProductID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	dto := StockDTO{ProductID: productID.UUID().Bytes(), Available: quantity}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"available"}),
	}).Create(&dto).Error
}

func (r *GormInventoryRepository) GetAvailableStock(ctx context.Context, productID kernel.ProductID) (int, error) {
	if err := productID.Validate(); err != nil {
		return 0, err
	}

	var dto StockDTO
	err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.UUID().Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.defaultStock, nil
	}
	if err != nil {
		return 0, err
	}
	return dto.Available, nil
}

// ReserveStock decrements the stock in a single conditional update, so concurrent
// reservations never drive it below zero.
func (r *GormInventoryRepository) ReserveStock(ctx context.Context, productID kernel.ProductID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	db := r.db.WithContext(ctx)
	id := productID.UUID().Bytes()

	seed := StockDTO{ProductID: id, Available: r.defaultStock}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return err
	}

	result := db.Model(&StockDTO{}).
		Where("product_id = ? AND available >= ?", id, quantity).
		Update("available", gorm.Expr("available - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewBusinessRuleViolationError("insufficient stock for product " + productID.String())
	}
	return nil
}
