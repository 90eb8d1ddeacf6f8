package snapshot_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/propex/pkg/propex/snapshot"
)

// fakeDynamo is an in-memory table keyed by the "id" attribute. Scan pages
// hold at most pageSize items so pagination is exercised.
type fakeDynamo struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	pageSize int
	scans    int
	tables   map[string]bool
	failPut  error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		items:    make(map[string]map[string]types.AttributeValue),
		pageSize: 2,
		tables:   make(map[string]bool),
	}
}

func itemID(key map[string]types.AttributeValue) string {
	if s, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return nil, f.failPut
	}
	f.tables[aws.ToString(in.TableName)] = true
	f.items[itemID(in.Item)] = maps.Clone(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[itemID(in.Key)]}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++

	ids := slices.Sorted(maps.Keys(f.items))
	start := 0
	if after := itemID(in.ExclusiveStartKey); after != "" {
		start, _ = slices.BinarySearch(ids, after)
		start++
	}
	end := min(start+f.pageSize, len(ids))

	out := &dynamodb.ScanOutput{}
	for _, id := range ids[start:end] {
		item := maps.Clone(f.items[id])
		delete(item, "data")
		out.Items = append(out.Items, item)
	}
	if end < len(ids) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: ids[end-1]},
		}
	}
	return out, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemID(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoStore_ItemLayout(t *testing.T) {
	fake := newFakeDynamo()
	store := snapshot.NewDynamoStore(fake, "snapshots")

	snap := snapshot.New("layout")
	require.NoError(t, store.Save(context.Background(), snap))

	assert.True(t, fake.tables["snapshots"])
	item := fake.items[snap.ID]
	require.NotNil(t, item)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "layout"}, item["label"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "0"}, item["entries"])
	assert.IsType(t, &types.AttributeValueMemberB{}, item["data"])
}

func TestDynamoStore_ListPaginates(t *testing.T) {
	fake := newFakeDynamo()
	store := snapshot.NewDynamoStore(fake, "snapshots")
	ctx := context.Background()

	for range 5 {
		require.NoError(t, store.Save(ctx, snapshot.New("p")))
	}

	infos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 5)
	assert.Equal(t, 3, fake.scans)
}

func TestDynamoStore_SaveError(t *testing.T) {
	fake := newFakeDynamo()
	fake.failPut = errors.New("throttled")
	store := snapshot.NewDynamoStore(fake, "snapshots")

	err := store.Save(context.Background(), snapshot.New("x"))
	assert.ErrorContains(t, err, "save snapshot: throttled")
}

func TestDynamoStore_CorruptItem(t *testing.T) {
	fake := newFakeDynamo()
	fake.items["bad"] = map[string]types.AttributeValue{
		"id":   &types.AttributeValueMemberS{Value: "bad"},
		"data": &types.AttributeValueMemberB{Value: []byte(`{"version": 99}`)},
	}
	store := snapshot.NewDynamoStore(fake, "snapshots")

	_, err := store.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, snapshot.ErrVersionMismatch)
}

func TestDynamoStore_ListCorruptTimestamp(t *testing.T) {
	fake := newFakeDynamo()
	fake.items["bad"] = map[string]types.AttributeValue{
		"id":        &types.AttributeValueMemberS{Value: "bad"},
		"timestamp": &types.AttributeValueMemberS{Value: "yesterday"},
		"entries":   &types.AttributeValueMemberN{Value: "0"},
	}
	store := snapshot.NewDynamoStore(fake, "snapshots")

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse timestamp of snapshot bad")
}

func TestNewDynamoClient(t *testing.T) {
	client, err := snapshot.NewDynamoClient(context.Background(), snapshot.DynamoConfig{
		Region:    "us-west-2",
		Endpoint:  "http://localhost:8000",
		AccessKey: "local",
		SecretKey: "local",
	})
	require.NoError(t, err)
	require.NotNil(t, client)

	opts := client.Options()
	assert.Equal(t, "us-west-2", opts.Region)
	assert.Equal(t, "http://localhost:8000", aws.ToString(opts.BaseEndpoint))
}
