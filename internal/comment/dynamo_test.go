package comment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo 按 (entryId, sk) 保存评论
type fakeDynamo struct {
	mu      sync.Mutex
	exists  bool
	created *dynamodb.CreateTableInput
	items   []map[string]types.AttributeValue
}

func str(item map[string]types.AttributeValue, key string) string {
	if s, ok := item[key].(*types.AttributeValueMemberS); ok {
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
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{TableName: in.TableName, TableStatus: types.TableStatusActive}}, nil
}

func (f *fakeDynamo) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exists = true
	f.created = in
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := str(in.ExpressionAttributeValues, ":e")
	var matched []map[string]types.AttributeValue
	for _, item := range f.items {
		if str(item, "entryId") == want {
			matched = append(matched, item)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return str(matched[i], "sk") < str(matched[j], "sk") })
	if !aws.ToBool(in.ScanIndexForward) {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return &dynamodb.QueryOutput{Items: matched}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoEnsureTableUsesCompositeKey(t *testing.T) {
	api := &fakeDynamo{}
	repo := NewDynamoRepository(api, "keluhkesah_comments")
	require.NoError(t, repo.EnsureTable(context.Background()))

	require.NotNil(t, api.created)
	require.Len(t, api.created.KeySchema, 2)
	assert.Equal(t, "entryId", aws.ToString(api.created.KeySchema[0].AttributeName))
	assert.Equal(t, "sk", aws.ToString(api.created.KeySchema[1].AttributeName))
}

func TestDynamoListOldestFirst(t *testing.T) {
	ctx := context.Background()
	api := &fakeDynamo{exists: true}
	repo := NewDynamoRepository(api, "keluhkesah_comments")

	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	// 故意乱序写入
	for _, offset := range []int{3, 1, 2} {
		c := &Comment{EntryID: "e1", Name: "n", Body: string(rune('a' + offset)), CreatedAt: base.Add(time.Duration(offset) * time.Minute)}
		require.NoError(t, repo.Create(ctx, c))
		assert.NotEmpty(t, c.SortKey)
	}
	require.NoError(t, repo.Create(ctx, &Comment{EntryID: "e2", Name: "n", Body: "z"}))

	comments, err := repo.List(ctx, "e1")
	require.NoError(t, err)
	var bodies []string
	for _, c := range comments {
		bodies = append(bodies, c.Body)
		assert.Equal(t, "e1", c.EntryID)
	}
	assert.Equal(t, []string{"b", "c", "d"}, bodies)
}
