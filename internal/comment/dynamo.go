package comment

import (
	"context"
	"fmt"

	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI 是评论仓库用到的DynamoDB操作子集
type DynamoAPI interface {
	database.TableAPI
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoRepository 把评论存放在一张以 entryId 为分区键、sk 为排序键的表中
type DynamoRepository struct {
	api   DynamoAPI
	table string
}

// NewDynamoRepository 创建一个基于DynamoDB的评论仓库
func NewDynamoRepository(api DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{api: api, table: table}
}

// EnsureTable 确保评论表存在
func (r *DynamoRepository) EnsureTable(ctx context.Context) error {
	return database.EnsureTable(ctx, r.api, &dynamodb.CreateTableInput{
		TableName: aws.String(r.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("entryId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("entryId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
}

func (r *DynamoRepository) List(ctx context.Context, entryID string) ([]Comment, error) {
	var comments []Comment
	paginator := dynamodb.NewQueryPaginator(r.api, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("entryId = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: entryID},
		},
		ScanIndexForward: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("无法读取条目 %s 的评论: %w", entryID, err)
		}
		var batch []Comment
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("无法解析评论: %w", err)
		}
		comments = append(comments, batch...)
	}
	return comments, nil
}

func (r *DynamoRepository) Create(ctx context.Context, c *Comment) error {
	if err := assignIdentity(c); err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("无法序列化评论: %w", err)
	}
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("无法写入评论: %w", err)
	}
	return nil
}
