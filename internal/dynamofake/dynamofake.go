// Package dynamofake is an in-memory DynamoDB stand-in for unit tests.
//
// Rather than scripting call expectations, it stores real items and
// evaluates only the expression subset the store issues: SET updates with
// attribute name/value placeholders, attribute_exists conditions, and a
// single string-equality filter. Anything outside that subset panics, which
// keeps the fake honest about what it implements.
//
// Items are returned in insertion order, which stands in for DynamoDB's
// undefined-but-stable scan order and makes pagination tests deterministic.
package dynamofake

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type table struct {
	keyAttr string
	order   []string
	items   map[string]map[string]types.AttributeValue
}

// DB is an in-memory DynamoDB. The zero value is not usable; call New.
type DB struct {
	mu     sync.Mutex
	tables map[string]*table

	// GetErr, PutErr, UpdateErr and ScanErr, when set, are returned by the
	// corresponding call before any table is touched. ScanErrTable, when
	// non-empty, restricts ScanErr to scans of that table so a test can fail
	// the address fan-out without failing the count scan before it;
	// PutErrTable restricts PutErr the same way.
	GetErr       error
	PutErr       error
	PutErrTable  string
	UpdateErr    error
	ScanErr      error
	ScanErrTable string
}

// New creates an empty DB.
func New() *DB {
	return &DB{tables: make(map[string]*table)}
}

// CreateTable registers a table with a single string hash key.
func (d *DB) CreateTable(name, keyAttr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[name] = &table{
		keyAttr: keyAttr,
		items:   make(map[string]map[string]types.AttributeValue),
	}
}

// Len returns the number of items in a table.
func (d *DB) Len(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.mustTable(name).order)
}

func (d *DB) mustTable(name string) *table {
	t, ok := d.tables[name]
	if !ok {
		panic("dynamofake: unknown table " + name)
	}
	return t
}

// GetItem implements the DynamoDB GetItem call.
func (d *DB) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if d.GetErr != nil {
		return nil, d.GetErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.mustTable(aws.ToString(params.TableName))
	item, ok := t.items[stringAttr(params.Key, t.keyAttr)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

// PutItem implements the DynamoDB PutItem call.
func (d *DB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if d.PutErr != nil && (d.PutErrTable == "" || d.PutErrTable == aws.ToString(params.TableName)) {
		return nil, d.PutErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.mustTable(aws.ToString(params.TableName))
	key := stringAttr(params.Item, t.keyAttr)
	if key == "" {
		panic("dynamofake: item missing key attribute " + t.keyAttr)
	}
	if _, exists := t.items[key]; !exists {
		t.order = append(t.order, key)
	}
	t.items[key] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// UpdateItem implements the DynamoDB UpdateItem call for SET expressions.
func (d *DB) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if d.UpdateErr != nil {
		return nil, d.UpdateErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.mustTable(aws.ToString(params.TableName))
	key := stringAttr(params.Key, t.keyAttr)
	item, exists := t.items[key]

	if cond := aws.ToString(params.ConditionExpression); cond != "" {
		attr, ok := strings.CutPrefix(cond, "attribute_exists(")
		if !ok {
			panic("dynamofake: unsupported condition expression " + cond)
		}
		attr = strings.TrimSuffix(attr, ")")
		if !exists || item[resolveName(attr, params.ExpressionAttributeNames)] == nil {
			return nil, &types.ConditionalCheckFailedException{
				Message: aws.String("The conditional request failed"),
			}
		}
	}
	if !exists {
		// Unconditioned updates upsert, as DynamoDB does.
		item = map[string]types.AttributeValue{t.keyAttr: params.Key[t.keyAttr]}
		t.items[key] = item
		t.order = append(t.order, key)
	}

	expr, ok := strings.CutPrefix(aws.ToString(params.UpdateExpression), "SET ")
	if !ok {
		panic("dynamofake: unsupported update expression " + aws.ToString(params.UpdateExpression))
	}
	updated := make(map[string]types.AttributeValue)
	for _, clause := range strings.Split(expr, ", ") {
		lhs, rhs, found := strings.Cut(clause, " = ")
		if !found {
			panic("dynamofake: unsupported SET clause " + clause)
		}
		name := resolveName(lhs, params.ExpressionAttributeNames)
		value, ok := params.ExpressionAttributeValues[rhs]
		if !ok {
			panic("dynamofake: unresolved value placeholder " + rhs)
		}
		item[name] = value
		updated[name] = value
	}

	out := &dynamodb.UpdateItemOutput{}
	if params.ReturnValues == types.ReturnValueUpdatedNew {
		out.Attributes = updated
	}
	return out, nil
}

// Scan implements the DynamoDB Scan call with Limit, ExclusiveStartKey,
// Select COUNT, and a single "attr = :placeholder" filter expression.
// As in DynamoDB, Limit bounds the items scanned before the filter runs,
// and LastEvaluatedKey is set whenever the scan stopped short of the table
// end.
func (d *DB) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	tableName := aws.ToString(params.TableName)
	if d.ScanErr != nil && (d.ScanErrTable == "" || d.ScanErrTable == tableName) {
		return nil, d.ScanErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.mustTable(tableName)

	start := 0
	if params.ExclusiveStartKey != nil {
		startKey := stringAttr(params.ExclusiveStartKey, t.keyAttr)
		for i, key := range t.order {
			if key == startKey {
				start = i + 1
				break
			}
		}
	}

	end := len(t.order)
	if params.Limit != nil && start+int(*params.Limit) < end {
		end = start + int(*params.Limit)
	}

	var matched []map[string]types.AttributeValue
	for _, key := range t.order[start:end] {
		item := t.items[key]
		if matchesFilter(item, params) {
			matched = append(matched, copyItem(item))
		}
	}

	out := &dynamodb.ScanOutput{
		Count:        int32(len(matched)),
		ScannedCount: int32(end - start),
	}
	if params.Select != types.SelectCount {
		out.Items = matched
	}
	if end < len(t.order) {
		lastKey := t.order[end-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			t.keyAttr: &types.AttributeValueMemberS{Value: lastKey},
		}
	}
	return out, nil
}

func matchesFilter(item map[string]types.AttributeValue, params *dynamodb.ScanInput) bool {
	filter := aws.ToString(params.FilterExpression)
	if filter == "" {
		return true
	}
	lhs, rhs, found := strings.Cut(filter, " = ")
	if !found {
		panic("dynamofake: unsupported filter expression " + filter)
	}
	attr := resolveName(lhs, params.ExpressionAttributeNames)
	want, ok := params.ExpressionAttributeValues[rhs].(*types.AttributeValueMemberS)
	if !ok {
		panic("dynamofake: filter value must be a string attribute")
	}
	return stringAttr(item, attr) == want.Value
}

func resolveName(token string, names map[string]string) string {
	if strings.HasPrefix(token, "#") {
		name, ok := names[token]
		if !ok {
			panic("dynamofake: unresolved name placeholder " + token)
		}
		return name
	}
	return token
}

func stringAttr(item map[string]types.AttributeValue, attr string) string {
	if v, ok := item[attr].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	dup := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		dup[k] = v
	}
	return dup
}
