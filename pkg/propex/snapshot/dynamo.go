package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
// *dynamodb.Client satisfies it.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// dynamoItem is the table layout: one item per snapshot, partition key "id".
type dynamoItem struct {
	ID        string `dynamodbav:"id"`
	Label     string `dynamodbav:"label"`
	Timestamp string `dynamodbav:"timestamp"`
	Entries   int    `dynamodbav:"entries"`
	Data      []byte `dynamodbav:"data,omitempty"`
}

// DynamoStore persists snapshots to a DynamoDB table whose partition key is
// the string attribute "id". Items are limited to 400 KB by DynamoDB, which
// bounds the size of a snapshot.
type DynamoStore struct {
	client DynamoAPI
	table  string

	mu     sync.RWMutex
	closed bool
}

// NewDynamoStore returns a store writing to table through client.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// DynamoConfig selects the AWS account and endpoint for NewDynamoClient.
type DynamoConfig struct {
	// Region overrides the region from the environment.
	Region string
	// Endpoint overrides the service endpoint, e.g. DynamoDB Local.
	Endpoint string
	// AccessKey and SecretKey set static credentials. When empty the
	// default credential chain is used.
	AccessKey string
	SecretKey string
}

// NewDynamoClient builds a DynamoDB client from the default AWS
// configuration with cfg's overrides applied.
func NewDynamoClient(ctx context.Context, cfg DynamoConfig) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func (d *DynamoStore) open() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrStoreClosed
	}
	return nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// Save implements Store.
func (d *DynamoStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := d.open(); err != nil {
		return err
	}
	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(dynamoItem{
		ID:        snap.ID,
		Label:     snap.Label,
		Timestamp: snap.Timestamp.UTC().Format(time.RFC3339Nano),
		Entries:   len(snap.Entries),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot item: %w", err)
	}

	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load implements Store.
func (d *DynamoStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	if err := d.open(); err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot item: %w", err)
	}
	return Unmarshal(item.Data)
}

// List implements Store. It scans the table without the data attribute.
func (d *DynamoStore) List(ctx context.Context) ([]Info, error) {
	if err := d.open(); err != nil {
		return nil, err
	}

	infos := []Info{}
	var start map[string]types.AttributeValue
	for {
		out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                aws.String(d.table),
			ProjectionExpression:     aws.String("id, label, #ts, entries"),
			ExpressionAttributeNames: map[string]string{"#ts": "timestamp"},
			ExclusiveStartKey:        start,
		})
		if err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}

		var items []dynamoItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot items: %w", err)
		}
		for _, item := range items {
			ts, err := time.Parse(time.RFC3339Nano, item.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("parse timestamp of snapshot %s: %w", item.ID, err)
			}
			infos = append(infos, Info{ID: item.ID, Label: item.Label, Timestamp: ts, Entries: item.Entries})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}

	sortInfos(infos)
	return infos, nil
}

// Delete implements Store.
func (d *DynamoStore) Delete(ctx context.Context, id string) error {
	if err := d.open(); err != nil {
		return err
	}
	if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       idKey(id),
	}); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Close implements Store. The client is owned by the caller and stays open.
func (d *DynamoStore) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
