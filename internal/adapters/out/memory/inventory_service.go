package memory

import (
	"context"
	"sync"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// DefaultStock is the quantity every unknown product starts with.
const DefaultStock = 100

var _ ports.InventoryService = (*InventoryService)(nil)

// InventoryService is a mock inventory: products start at a default stock level unless set explicitly.
type InventoryService struct {
	mu           sync.Mutex
	defaultStock int
	stock        map[kernel.ProductID]int
}

func NewInventoryService(defaultStock int) *InventoryService {
	if defaultStock < 0 {
		defaultStock = 0
	}
	return &InventoryService{
		defaultStock: defaultStock,
		stock:        make(map[kernel.ProductID]int),
	}
}

// SetStock overrides the available quantity of a product.
func (s *InventoryService) SetStock(productID kernel.ProductID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = max(quantity, 0)
}

func (s *InventoryService) GetAvailableStock(_ context.Context, productID kernel.ProductID) (int, error) {
	if err := productID.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available(productID), nil
}

func (s *InventoryService) ReserveStock(_ context.Context, productID kernel.ProductID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	available := s.available(productID)
	if quantity > available {
		return errs.NewBusinessRuleViolationError("insufficient stock for product " + productID.String())
	}
	s.stock[productID] = available - quantity
	return nil
}

func (s *InventoryService) available(productID kernel.ProductID) int {
	if quantity, ok := s.stock[productID]; ok {
		return quantity
	}
	return s.defaultStock
}
