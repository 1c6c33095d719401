// Package store provides the DynamoDB data access layer for the customer API.
//
// The API is backed by two tables: a customers table keyed by customerId and
// an addresses table keyed by addressId, joined at read time through the
// customerId attribute on address rows. The store exposes exactly the
// operations the handlers need:
//
//   - point reads/writes for customer and address rows
//   - a partial customer update returning the post-update attributes
//   - a count-only scan of the customers table
//   - a single bounded scan page with a continuation key
//   - an attribute-filtered scan of the addresses table
//
// # Client
//
// Store operates through the [Client] interface, the subset of the
// DynamoDB API it actually calls. *dynamodb.Client satisfies it, as does
// the in-memory fake used by the unit tests.
//
// # Errors
//
// [ErrNotFound] is returned when a customer row is absent, both from
// GetCustomer and from UpdateCustomer (updates are guarded by an
// attribute_exists condition so a missing row is not silently upserted).
// All other errors are the underlying SDK errors, wrapped with context.
package store
