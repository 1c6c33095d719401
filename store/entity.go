package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Customer is a row in the customers table.
//
// Age is a float64 because request bodies arrive as loosely-typed JSON and
// encoding/json decodes every number to float64; keeping the same
// representation end to end avoids lossy round-trips.
type Customer struct {
	CustomerID   string  `dynamodbav:"customerId" json:"customerId"`
	Name         string  `dynamodbav:"name" json:"name"`
	Age          float64 `dynamodbav:"age" json:"age"`
	MobileNumber string  `dynamodbav:"mobileNumber" json:"mobileNumber"`
	CreatedAt    string  `dynamodbav:"createdAt" json:"createdAt,omitempty"`
}

// GetKey returns the primary key for this customer.
func (c Customer) GetKey() PK {
	return PK{
		"customerId": &types.AttributeValueMemberS{Value: c.CustomerID},
	}
}

// Address is a row in the addresses table. CustomerID is the foreign key to
// the owning customer; the join is performed at read time by a filter scan.
type Address struct {
	AddressID   string `dynamodbav:"addressId" json:"addressId"`
	CustomerID  string `dynamodbav:"customerId" json:"customerId"`
	AddressType string `dynamodbav:"addressType" json:"addressType"`
	Address     string `dynamodbav:"address" json:"address"`
	City        string `dynamodbav:"city" json:"city"`
	Town        string `dynamodbav:"town" json:"town"`
	Zipcode     string `dynamodbav:"zipcode" json:"zipcode"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt,omitempty"`
}

// GetKey returns the primary key for this address.
func (a Address) GetKey() PK {
	return PK{
		"addressId": &types.AttributeValueMemberS{Value: a.AddressID},
	}
}

// CustomerUpdate carries the mutable customer fields for a partial update.
// The customer identifier is immutable and addressed by key only.
type CustomerUpdate struct {
	Name         string
	Age          float64
	MobileNumber string
}
