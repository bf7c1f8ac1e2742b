// Package kernel provides the shared value objects of the ordering domain.
//
// The package includes:
//   - UUID: a validated wrapper over github.com/google/uuid
//   - OrderID, CustomerID, ProductID: distinct identifier types so they cannot be mixed up
//   - Money: a non-negative decimal amount in a single currency
//
// All values are immutable and comparable. Their zero values are invalid and
// report so from Validate.
package kernel
