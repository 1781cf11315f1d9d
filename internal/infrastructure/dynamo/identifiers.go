package dynamo

import (
	"context"
	"fmt"

	"github.com/alumni-connect-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// IdentifierRepo provides typed DynamoDB operations for the identifiers table.
// Only digests are stored here; plaintext identifiers never reach this layer.
type IdentifierRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewIdentifierRepo(client *dynamodb.Client, tableName string) *IdentifierRepo {
	return &IdentifierRepo{client: client, tableName: tableName}
}

func (r *IdentifierRepo) Put(ctx context.Context, ident *domain.Identifier) error {
	item, err := attributevalue.MarshalMap(ident)
	if err != nil {
		return fmt.Errorf("marshal identifier: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *IdentifierRepo) Get(ctx context.Context, identifierID string) (*domain.Identifier, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("identifier_id", identifierID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("identifier %s: %w", identifierID, domain.ErrNotFound)
	}
	var ident domain.Identifier
	if err := attributevalue.UnmarshalMap(out.Item, &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

// ListByProfile returns all identifiers owned by a profile via the
// `profile_id-index` GSI.
func (r *IdentifierRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.Identifier, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("profile_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "profile_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: profileID}},
	})
	if err != nil {
		return nil, err
	}
	var idents []domain.Identifier
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &idents); err != nil {
		return nil, err
	}
	return idents, nil
}

// FindByHash returns the first identifier whose digest equals hash, via the
// `hash-index` GSI. A miss returns domain.ErrNotFound.
func (r *IdentifierRepo) FindByHash(ctx context.Context, hash string) (*domain.Identifier, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("hash-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "hash"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: hash}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("no identifier matches digest: %w", domain.ErrNotFound)
	}
	var ident domain.Identifier
	if err := attributevalue.UnmarshalMap(out.Items[0], &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *IdentifierRepo) HardDelete(ctx context.Context, identifierID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("identifier_id", identifierID),
	})
	return err
}
