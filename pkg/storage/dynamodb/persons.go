package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
)

// fraudCaseIDsAttribute mirrors the ids of the person's fraud cases so the
// owning person can be found with a filtered scan.
const fraudCaseIDsAttribute = "fraud_case_ids"

// GetPerson retrieves a person from DynamoDB by id.
func (s *Store) GetPerson(ctx context.Context, personID string) (*models.Person, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": personID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal person ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.PersonsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get person from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrPersonNotFound, personID)
	}

	var person models.Person
	if err := attributevalue.UnmarshalMap(result.Item, &person); err != nil {
		return nil, fmt.Errorf("failed to unmarshal person: %w", err)
	}

	return &person, nil
}

// SavePerson writes the person aggregate, guarded by its version.
func (s *Store) SavePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	// 1. Stamp the next version on a copy so a failed write leaves the caller untouched.
	saved := *person
	saved.Version = person.Version + 1

	item, err := attributevalue.MarshalMap(&saved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal person: %w", err)
	}

	ids := make([]types.AttributeValue, 0, len(saved.FraudCases))
	for _, fc := range saved.FraudCases {
		ids = append(ids, &types.AttributeValueMemberS{Value: fc.ID})
	}
	item[fraudCaseIDsAttribute] = &types.AttributeValueMemberL{Value: ids}

	// 2. Only overwrite the version this copy was read at.
	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.PersonsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id) OR version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(person.Version, 10)},
		},
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrVersionConflict
		}
		return nil, fmt.Errorf("failed to save person in DynamoDB: %w", err)
	}

	person.Version = saved.Version
	return &saved, nil
}

// FindPersonByFraudCaseID scans for the person whose fraud cases contain the id.
func (s *Store) FindPersonByFraudCaseID(ctx context.Context, fraudCaseID string) (*models.Person, error) {
	persons, err := s.scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.PersonsTableName),
		FilterExpression: aws.String("contains(#ids, :id)"),
		ExpressionAttributeNames: map[string]string{
			"#ids": fraudCaseIDsAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: fraudCaseID},
		},
	})
	if err != nil {
		return nil, err
	}

	if len(persons) == 0 {
		return nil, fmt.Errorf("%w: no person holds fraud case %s", storage.ErrPersonNotFound, fraudCaseID)
	}
	return &persons[0], nil
}

// ListPersons retrieves all persons from DynamoDB.
func (s *Store) ListPersons(ctx context.Context) ([]models.Person, error) {
	return s.scan(ctx, &dynamodb.ScanInput{
		TableName:      aws.String(s.PersonsTableName),
		ConsistentRead: aws.Bool(true),
	})
}

func (s *Store) scan(ctx context.Context, input *dynamodb.ScanInput) ([]models.Person, error) {
	var persons []models.Person

	for {
		page, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persons table: %w", err)
		}

		var batch []models.Person
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal persons: %w", err)
		}
		persons = append(persons, batch...)

		if len(page.LastEvaluatedKey) == 0 {
			return persons, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}
