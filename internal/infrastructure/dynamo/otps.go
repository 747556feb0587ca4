package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raatap-waitlist/internal/domain"
)

// OtpRepo manages email one-time codes. PK: user_id, one item per user.
type OtpRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOtpRepo(client *dynamodb.Client, tableName string) *OtpRepo {
	return &OtpRepo{client: client, tableName: tableName}
}

// Put replaces any existing record for the user.
func (r *OtpRepo) Put(ctx context.Context, o *domain.OtpRecord) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OtpRepo) Get(ctx context.Context, userID string) (*domain.OtpRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldUserID, userID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	var o domain.OtpRecord
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkConsumed flips consumed to true only if the stored record is still
// unconsumed and still carries code, stamping consumed_at with at. Returns
// domain.ErrConflict when the condition fails.
func (r *OtpRepo) MarkConsumed(ctx context.Context, userID, code string, at time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldConsumed:   true,
		fieldConsumedAt: at.UTC(),
	})
	if err != nil {
		return err
	}
	ue.Names["#uid"] = fieldUserID
	ue.Names["#cns"] = fieldConsumed
	ue.Names["#code"] = fieldCode
	ue.Values[":false"] = &types.AttributeValueMemberBOOL{Value: false}
	ue.Values[":code"] = &types.AttributeValueMemberS{Value: code}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldUserID, userID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#uid) AND #cns = :false AND #code = :code"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("otp changed concurrently: %w", domain.ErrConflict)
	}
	return err
}
