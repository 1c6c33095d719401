package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is the subset of the DynamoDB API the store uses.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store provides DynamoDB operations over the customers and addresses tables.
type Store struct {
	client Client
	config Config
}

// New creates a new Store instance.
func New(client Client, config Config) *Store {
	return &Store{
		client: client,
		config: config,
	}
}

// GetCustomer retrieves a customer by id, returning ErrNotFound if missing.
func (s *Store) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.CustomersTable),
		Key: PK{
			"customerId": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", customerID, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var customer Customer
	if err := attributevalue.UnmarshalMap(result.Item, &customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer %s: %w", customerID, err)
	}
	return &customer, nil
}

// PutCustomer writes a customer row.
func (s *Store) PutCustomer(ctx context.Context, customer *Customer) error {
	item, err := attributevalue.MarshalMap(customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.CustomersTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// PutAddress writes an address row.
func (s *Store) PutAddress(ctx context.Context, address *Address) error {
	item, err := attributevalue.MarshalMap(address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.AddressesTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put address %s: %w", address.AddressID, err)
	}
	return nil
}

// UpdateCustomer applies a partial update to a customer row and returns the
// post-update values of the fields that were set.
//
// The update is conditioned on the row existing; updating an unknown id
// returns ErrNotFound instead of upserting a partial row.
func (s *Store) UpdateCustomer(ctx context.Context, customerID string, upd CustomerUpdate) (map[string]any, error) {
	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.config.CustomersTable),
		Key: PK{
			"customerId": &types.AttributeValueMemberS{Value: customerID},
		},
		UpdateExpression:    aws.String("SET #name = :name, #age = :age, #mobile = :mobile"),
		ConditionExpression: aws.String("attribute_exists(customerId)"),
		ExpressionAttributeNames: map[string]string{
			"#name":   "name",
			"#age":    "age",
			"#mobile": "mobileNumber",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":   &types.AttributeValueMemberS{Value: upd.Name},
			":age":    &types.AttributeValueMemberN{Value: strconv.FormatFloat(upd.Age, 'f', -1, 64)},
			":mobile": &types.AttributeValueMemberS{Value: upd.MobileNumber},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update customer %s: %w", customerID, err)
	}

	var updated map[string]any
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal updated attributes: %w", err)
	}
	return updated, nil
}

// CountCustomers returns the total number of customer rows via a count-only
// scan of the full table.
func (s *Store) CountCustomers(ctx context.Context) (int32, error) {
	var total int32
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.config.CustomersTable),
		Select:    types.SelectCount,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("count customers: %w", err)
		}
		total += page.Count
	}
	return total, nil
}

// ListCustomersPage performs a single bounded scan of the customers table
// starting after startKey (nil to start from the beginning). It returns the
// page items and the continuation key, or a nil key when the table is
// exhausted.
//
// Callers paginate by replaying from the start and carrying the key forward
// on every request; there is no persistent cursor. A real cursor-token API
// would avoid the O(pageNo x limit) rescan cost.
func (s *Store) ListCustomersPage(ctx context.Context, limit int32, startKey PK) ([]map[string]any, PK, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.config.CustomersTable),
		Limit:     aws.Int32(limit),
	}
	if startKey != nil {
		input.ExclusiveStartKey = startKey
	}

	result, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("scan customers page: %w", err)
	}

	items := make([]map[string]any, 0, len(result.Items))
	for _, raw := range result.Items {
		var item map[string]any
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, nil, fmt.Errorf("unmarshal customer item: %w", err)
		}
		items = append(items, item)
	}

	if len(result.LastEvaluatedKey) == 0 {
		return items, nil, nil
	}
	return items, PK(result.LastEvaluatedKey), nil
}

// AddressesByCustomer returns every address row whose customerId matches.
// This is a full filter scan of the addresses table, not a key lookup.
func (s *Store) AddressesByCustomer(ctx context.Context, customerID string) ([]map[string]any, error) {
	var addresses []map[string]any
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:        aws.String(s.config.AddressesTable),
		FilterExpression: aws.String("customerId = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan addresses for customer %s: %w", customerID, err)
		}
		for _, raw := range page.Items {
			var address map[string]any
			if err := attributevalue.UnmarshalMap(raw, &address); err != nil {
				return nil, fmt.Errorf("unmarshal address item: %w", err)
			}
			addresses = append(addresses, address)
		}
	}
	return addresses, nil
}
