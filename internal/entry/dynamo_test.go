package entry

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo 是一个只认识 id 分区键的内存表
type fakeDynamo struct {
	mu       sync.Mutex
	exists   bool
	created  int
	items    map[string]map[string]types.AttributeValue
	pageSize int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue), pageSize: 2}
}

func idOf(key map[string]types.AttributeValue) string {
	if s, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.exists {
		return nil, &types.ResourceNotFoundException{Message: aws.String("no table")}
	}
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   in.TableName,
		TableStatus: types.TableStatusActive,
	}}, nil
}

func (f *fakeDynamo) CreateTable(context.Context, *dynamodb.CreateTableInput, ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exists = true
	f.created++
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := 0
	if after := idOf(in.ExclusiveStartKey); after != "" {
		start = sort.SearchStrings(ids, after) + 1
	}
	end := min(start+f.pageSize, len(ids))

	out := &dynamodb.ScanOutput{}
	for _, id := range ids[start:end] {
		out.Items = append(out.Items, f.items[id])
	}
	if end < len(ids) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: ids[end-1]}}
	}
	return out, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[idOf(in.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{"id": item["id"]}}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := idOf(in.Item)
	if _, ok := f.items[id]; ok && aws.ToString(in.ConditionExpression) != "" {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[idOf(in.Key)]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	item[in.ExpressionAttributeNames["#f"]] = in.ExpressionAttributeValues[":v"]
	return &dynamodb.UpdateItemOutput{}, nil
}

func TestDynamoEnsureTableCreatesOnce(t *testing.T) {
	ctx := context.Background()
	api := newFakeDynamo()
	repo := NewDynamoRepository(api, "keluhkesah")

	require.NoError(t, repo.EnsureTable(ctx))
	require.NoError(t, repo.EnsureTable(ctx))
	assert.Equal(t, 1, api.created)
}

func TestDynamoRoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeDynamo()
	repo := NewDynamoRepository(api, "keluhkesah")

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		e := &Entry{Name: "n", Message: "m", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Create(ctx, e))
		ids = append(ids, e.EntryID)
	}

	// 更新一个计数器，其它字段保持不存在
	require.NoError(t, repo.SetCount(ctx, ids[2], reaction.HugEmoji, 5))
	assert.ErrorIs(t, repo.SetCount(ctx, "missing", reaction.HugEmoji, 1), ErrNotFound)
	raw := api.items[ids[2]]
	assert.Contains(t, raw, "hugEmojiCount")
	assert.NotContains(t, raw, "sadCount")

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 5, "分页扫描读取全部条目")
	for i, e := range entries {
		assert.Equal(t, ids[4-i], e.EntryID, "从新到旧")
	}
	got := entries[2]
	n, ok := got.Count(reaction.HugEmoji)
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	_, ok = got.Count(reaction.Sad)
	assert.False(t, ok)
	assert.True(t, got.CreatedAt.Equal(base.Add(2*time.Hour)))

	ok, err = repo.Exists(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
