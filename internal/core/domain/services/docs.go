// Package services provides domain services for rules that need information from
// outside the Order aggregate.
//
// The package includes:
//   - OrderDomainService: checks stock sufficiency and computes the shipping fee
package services
