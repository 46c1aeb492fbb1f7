package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

// API is the subset of the DynamoDB client used by Store.
type API interface {
	dynamodb.QueryAPIClient
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Config holds the connection settings for the expenses table.
type Config struct {
	Region   string
	Table    string
	Endpoint string // e.g. DynamoDB Local
}

// indexAttributes maps each GSI to its partition key attribute.
var indexAttributes = map[expense.Index]string{
	expense.IndexYearMonth: "yearMonth",
	expense.IndexCategory:  "category",
}

// Store reads and writes expenses in a DynamoDB table keyed by id.
type Store struct {
	client API
	table  string
}

func New(client API, table string) *Store {
	return &Store{client: client, table: table}
}

// NewClient builds a DynamoDB client from the default AWS credential chain.
func NewClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func (s *Store) Put(ctx context.Context, r *expense.Record) error {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return fmt.Errorf("failed to marshal expense: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem operation failed: %w", err)
	}

	return nil
}

// Query reads a GSI. GSI reads are eventually consistent, so a record written
// a moment ago may be missing.
func (s *Store) Query(ctx context.Context, index expense.Index, key string) ([]*expense.Record, error) {
	attr, ok := indexAttributes[index]
	if !ok {
		return nil, fmt.Errorf("unknown index %q", index)
	}

	p := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(string(index)),
		KeyConditionExpression: aws.String("#k = :k"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":k": &types.AttributeValueMemberS{Value: key},
		},
	})

	var records []*expense.Record

	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Query operation failed: %w", err)
		}

		page, err := unmarshalRecords(out.Items, nil)
		if err != nil {
			return nil, err
		}

		records = append(records, page...)
	}

	return records, nil
}

// Scan reads the whole table with strongly consistent reads and applies pred.
func (s *Store) Scan(ctx context.Context, pred expense.Predicate) ([]*expense.Record, error) {
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
	})

	var records []*expense.Record

	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Scan operation failed: %w", err)
		}

		page, err := unmarshalRecords(out.Items, pred)
		if err != nil {
			return nil, err
		}

		records = append(records, page...)
	}

	return records, nil
}

func unmarshalRecords(items []map[string]types.AttributeValue, pred expense.Predicate) ([]*expense.Record, error) {
	records := make([]*expense.Record, 0, len(items))

	for _, item := range items {
		var r expense.Record
		if err := attributevalue.UnmarshalMap(item, &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal expense: %w", err)
		}

		if pred.Match(&r) {
			records = append(records, &r)
		}
	}

	return records, nil
}

// EnsureTable creates the expenses table and its GSIs when missing. It is meant
// for local development against DynamoDB Local.
func EnsureTable(ctx context.Context, client *dynamodb.Client, table string) error {
	gsi := func(index expense.Index) types.GlobalSecondaryIndex {
		return types.GlobalSecondaryIndex{
			IndexName: aws.String(string(index)),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(indexAttributes[index]), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}
	}

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("yearMonth"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("category"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(expense.IndexYearMonth),
			gsi(expense.IndexCategory),
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}

		return fmt.Errorf("failed to create table: %w", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 2*time.Minute); err != nil {
		return fmt.Errorf("failed to wait for table creation: %w", err)
	}

	return nil
}
