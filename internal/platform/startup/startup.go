package startup

import (
	"context"
	"fmt"

	"github.com/SlpAus/keluhkesah-backend/internal/comment"
	"github.com/SlpAus/keluhkesah-backend/internal/entry"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/health"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Backend 是按配置组装好的存储层
type Backend struct {
	Entries  *entry.Service
	Comments *comment.Service
	// Ping 用于健康检查
	Ping health.PingFunc
	// Close 释放底层连接
	Close func() error
}

// InitializeBackend 是应用启动时的存储初始化入口：
// 打开连接，迁移表结构（或确保DynamoDB表存在），并组装服务
func InitializeBackend(ctx context.Context, cfg config.DatabaseConfig, env string) (*Backend, error) {
	zap.L().Info("开始初始化存储", zap.String("driver", cfg.Driver))

	var (
		b   *Backend
		err error
	)
	switch cfg.Driver {
	case config.DriverSqlite, config.DriverPostgres:
		b, err = initGorm(cfg, env)
	case config.DriverDynamoDB:
		b, err = initDynamo(ctx, cfg.DynamoDB)
	default:
		err = fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Info("存储初始化完成")
	return b, nil
}

func initGorm(cfg config.DatabaseConfig, env string) (*Backend, error) {
	if err := database.InitDB(cfg, env); err != nil {
		return nil, err
	}
	return NewGormBackend(database.DB)
}

// NewGormBackend 在已有的GORM连接上迁移表结构并组装服务
func NewGormBackend(db *gorm.DB) (*Backend, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取底层数据库连接: %w", err)
	}

	// 1. 迁移条目表
	entryRepo := entry.NewGormRepository(db)
	if err := entryRepo.Migrate(); err != nil {
		return nil, err
	}

	// 2. 迁移评论表
	commentRepo := comment.NewGormRepository(db)
	if err := commentRepo.Migrate(); err != nil {
		return nil, err
	}

	entries := entry.NewService(entryRepo)
	return &Backend{
		Entries:  entries,
		Comments: comment.NewService(commentRepo, entries),
		Ping:     sqlDB.PingContext,
		Close:    sqlDB.Close,
	}, nil
}

func initDynamo(ctx context.Context, cfg config.DynamoDBConfig) (*Backend, error) {
	client, err := database.NewDynamoDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewDynamoBackend(ctx, client, cfg.EntriesTable, cfg.CommentsTable)
}

// dynamoAPI 同时满足条目和评论仓库的需要
type dynamoAPI interface {
	entry.DynamoAPI
	comment.DynamoAPI
}

// NewDynamoBackend 确保两张表存在并组装服务
func NewDynamoBackend(ctx context.Context, api dynamoAPI, entriesTable, commentsTable string) (*Backend, error) {
	// 1. 条目表
	entryRepo := entry.NewDynamoRepository(api, entriesTable)
	if err := entryRepo.EnsureTable(ctx); err != nil {
		return nil, err
	}

	// 2. 评论表
	commentRepo := comment.NewDynamoRepository(api, commentsTable)
	if err := commentRepo.EnsureTable(ctx); err != nil {
		return nil, err
	}

	entries := entry.NewService(entryRepo)
	return &Backend{
		Entries:  entries,
		Comments: comment.NewService(commentRepo, entries),
		Ping: func(ctx context.Context) error {
			_, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(entriesTable)})
			return err
		},
		Close: func() error { return nil },
	}, nil
}
