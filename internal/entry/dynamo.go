package entry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI 是条目仓库用到的DynamoDB操作子集
type DynamoAPI interface {
	database.TableAPI
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoRepository 把条目存放在一张以 id 为分区键的DynamoDB表中
type DynamoRepository struct {
	api   DynamoAPI
	table string
}

// NewDynamoRepository 创建一个基于DynamoDB的仓库
func NewDynamoRepository(api DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{api: api, table: table}
}

// EnsureTable 确保条目表存在
func (r *DynamoRepository) EnsureTable(ctx context.Context) error {
	return database.EnsureTable(ctx, r.api, &dynamodb.CreateTableInput{
		TableName: aws.String(r.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
}

func (r *DynamoRepository) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

// List 扫描整张表并在内存中排序；条目集合不分页，每次全量读取
func (r *DynamoRepository) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	paginator := dynamodb.NewScanPaginator(r.api, &dynamodb.ScanInput{TableName: aws.String(r.table)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("无法扫描条目表: %w", err)
		}
		var batch []Entry
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("无法解析条目: %w", err)
		}
		entries = append(entries, batch...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].EntryID > entries[j].EntryID
	})
	return entries, nil
}

func (r *DynamoRepository) Create(ctx context.Context, e *Entry) error {
	if err := assignIdentity(e); err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("无法序列化条目: %w", err)
	}
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("无法写入条目: %w", err)
	}
	return nil
}

func (r *DynamoRepository) SetCount(ctx context.Context, id string, k reaction.Kind, value int) error {
	if !k.Valid() {
		return fmt.Errorf("无效的反应类型: %d", int(k))
	}
	newValue, err := attributevalue.Marshal(value)
	if err != nil {
		return fmt.Errorf("无法序列化计数: %w", err)
	}
	_, err = r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(id),
		UpdateExpression:          aws.String("SET #f = :v"),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  map[string]string{"#f": k.Field()},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": newValue},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrNotFound
		}
		return fmt.Errorf("无法更新条目 %s 的 %s: %w", id, k.Field(), err)
	}
	return nil
}

func (r *DynamoRepository) Exists(ctx context.Context, id string) (bool, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.table),
		Key:                  r.key(id),
		ProjectionExpression: aws.String("id"),
	})
	if err != nil {
		return false, fmt.Errorf("无法查询条目 %s: %w", id, err)
	}
	return len(out.Item) > 0, nil
}
