package store

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds the names of the two backing tables.
//
// Both values are required; a missing table name is a deployment fault and
// ConfigFromEnv fails rather than falling back to a default.
type Config struct {
	// CustomersTable is the customers table, keyed by customerId.
	CustomersTable string `env:"DYNAMODB_CUSTOMERS_TABLE,required"`

	// AddressesTable is the addresses table, keyed by addressId.
	AddressesTable string `env:"DYNAMODB_ADDRESSES_TABLE,required"`
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
