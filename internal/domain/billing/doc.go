// Package billing provides domain models for the clinic's billing ledger.
//
// This package implements the billing bounded context, which is responsible for:
//   - Carrying per-treatment charges derived from a patient's plan
//   - Recording visits and product sales with their own balances
//   - Recording payments and allocating them to ledger lines
//
// Key Aggregates:
//   - TreatmentCharge: A priced plan treatment instance with a running paid amount
//   - Visit: A clinic visit with a cost and a running paid amount
//   - ProductSale: A retail sale with a cost and a running paid amount
//   - PaymentRecord: A payment received from a patient
//
// The billing domain integrates with:
//   - Clinicplan domain: Plan instances are the source of treatment charges
//   - Catalog domain: Active catalog prices and type fallbacks price the charges
package billing
