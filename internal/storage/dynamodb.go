package storage

import (
	"context"
	"fmt"
	"garage/internal/structures"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	dynamoKeyAttr     = "slot"
	dynamoPayloadAttr = "payload"
)

// dynamoAPI is the part of *dynamodb.Client the slot backend uses.
type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStorage stores each slot as one item keyed by the "slot" string attribute in an existing table.
type DynamoStorage struct {
	client dynamoAPI
	table  string
}

func NewDynamoStorage(ctx context.Context, cfg structures.DynamoDBConfig) (*DynamoStorage, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg.Region, cfg.AWSCredentials)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &DynamoStorage{client: client, table: cfg.Table}, nil
}

func (d *DynamoStorage) key(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		dynamoKeyAttr: &types.AttributeValueMemberS{Value: key},
	}
}

func (d *DynamoStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            d.key(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("get slot %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	payload, ok := out.Item[dynamoPayloadAttr].(*types.AttributeValueMemberB)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s: payload is not binary", ErrCorruptSlot, key)
	}
	return payload.Value, true, nil
}

func (d *DynamoStorage) Set(ctx context.Context, key string, data []byte) error {
	item := d.key(key)
	item[dynamoPayloadAttr] = &types.AttributeValueMemberB{Value: data}
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put slot %s: %w", key, err)
	}
	return nil
}

func (d *DynamoStorage) Delete(ctx context.Context, key string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       d.key(key),
	})
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (d *DynamoStorage) Driver() string { return DriverDynamoDB }

func (d *DynamoStorage) Close() error { return nil }
