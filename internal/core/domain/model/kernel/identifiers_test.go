package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderID(t *testing.T) {
	t.Run("should round trip through its string form", func(t *testing.T) {
		id := kernel.NewOrderID()

		parsed, err := kernel.OrderIDFromString(id.String())

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(id))
		assert.Equal(t, id, parsed)
	})

	t.Run("should reject malformed text", func(t *testing.T) {
		_, err := kernel.OrderIDFromString("order-1")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.OrderID

		require.Error(t, id.Validate())
		require.NoError(t, kernel.NewOrderID().Validate())
	})

	t.Run("should be usable as a map key", func(t *testing.T) {
		id := kernel.NewOrderID()
		parsed, err := kernel.OrderIDFromString(id.String())
		require.NoError(t, err)

		m := map[kernel.OrderID]int{id: 1}

		assert.Equal(t, 1, m[parsed])
	})
}

func TestIdentifierFromUUID(t *testing.T) {
	raw := kernel.NewUUID()

	orderID, err := kernel.OrderIDFromUUID(raw)
	require.NoError(t, err)
	customerID, err := kernel.CustomerIDFromUUID(raw)
	require.NoError(t, err)
	productID, err := kernel.ProductIDFromUUID(raw)
	require.NoError(t, err)

	assert.True(t, orderID.UUID().IsEqual(raw))
	assert.Equal(t, raw.String(), customerID.String())
	assert.Equal(t, raw.String(), productID.String())

	_, err = kernel.ProductIDFromUUID(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCustomerIDAndProductID(t *testing.T) {
	customerID := kernel.NewCustomerID()
	productID := kernel.NewProductID()

	require.NoError(t, customerID.Validate())
	require.NoError(t, productID.Validate())
	assert.False(t, customerID.IsEqual(kernel.NewCustomerID()))
	assert.False(t, productID.IsEqual(kernel.NewProductID()))

	parsedCustomer, err := kernel.CustomerIDFromString(customerID.String())
	require.NoError(t, err)
	assert.True(t, parsedCustomer.IsEqual(customerID))

	_, err = kernel.ProductIDFromString("")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
