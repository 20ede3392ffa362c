package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// NewDynamoDB 创建一个DynamoDB客户端
// 如果环境变量中提供了静态凭证，则优先使用它们；否则走AWS默认凭证链
func NewDynamoDB(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("无法加载AWS配置: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

const tableWaitTimeout = 2 * time.Minute

// TableAPI 是建表所需的DynamoDB操作子集
type TableAPI interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTable 检查表是否存在，如果不存在则按input创建表并等待其可用
func EnsureTable(ctx context.Context, api TableAPI, input *dynamodb.CreateTableInput) error {
	name := aws.ToString(input.TableName)
	_, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("无法查询表 %s: %w", name, err)
	}

	zap.L().Info("DynamoDB表不存在，正在创建", zap.String("table", name))
	if _, err := api.CreateTable(ctx, input); err != nil {
		return fmt.Errorf("创建表 %s 失败: %w", name, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(api)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName}, tableWaitTimeout); err != nil {
		return fmt.Errorf("等待表 %s 就绪失败: %w", name, err)
	}
	zap.L().Info("DynamoDB表创建成功", zap.String("table", name))
	return nil
}
