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

// AdminRepo provides typed DynamoDB operations for the community-admins table.
type AdminRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAdminRepo(client *dynamodb.Client, tableName string) *AdminRepo {
	return &AdminRepo{client: client, tableName: tableName}
}

func (r *AdminRepo) Put(ctx context.Context, a *domain.CommunityAdmin) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal admin: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AdminRepo) Get(ctx context.Context, adminID string) (*domain.CommunityAdmin, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("admin_id", adminID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("admin %s: %w", adminID, domain.ErrNotFound)
	}
	var a domain.CommunityAdmin
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByCommunity returns all admin rows for a community via the
// `community_id-index` GSI.
func (r *AdminRepo) ListByCommunity(ctx context.Context, communityID string) ([]domain.CommunityAdmin, error) {
	return r.queryGSI(ctx, "community_id-index", "community_id", communityID)
}

// ListByEmail returns all admin rows granted to an email via the
// `admin_email-index` GSI.
func (r *AdminRepo) ListByEmail(ctx context.Context, email string) ([]domain.CommunityAdmin, error) {
	return r.queryGSI(ctx, "admin_email-index", "admin_email", email)
}

func (r *AdminRepo) HardDelete(ctx context.Context, adminID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("admin_id", adminID),
	})
	return err
}

func (r *AdminRepo) queryGSI(ctx context.Context, index, attr, value string) ([]domain.CommunityAdmin, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	var admins []domain.CommunityAdmin
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}
