package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements the PersonStore interface using AWS DynamoDB.
type Store struct {
	Client           DynamoDBAPI
	PersonsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, personsTable string) *Store {
	return &Store{
		Client:           client,
		PersonsTableName: personsTable,
	}
}

// Make sure we conform to the interface
var _ storage.PersonStore = (*Store)(nil)
