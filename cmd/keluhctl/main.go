// keluhctl 是一个命令行"浏览器"：它在本地缓存中记住投过的反应和展开的评论面板，
// 每次调用相当于一次页面加载。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/board"
	"github.com/SlpAus/keluhkesah-backend/internal/client"
	"github.com/SlpAus/keluhkesah-backend/internal/localcache"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/logger"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/startup"
)

const usage = `用法: keluhctl [选项] <命令> [参数]

命令:
  list                                  显示全部keluh kesah
  post [-name 名字] [-message 正文]     发布一条新的keluh kesah
  vote <entryID> <reaction>             给条目一个反应
  toggle <entryID>                      展开或收起评论
  comment [-name 名字] <entryID> <评论> 发表评论
  reset                                 清除本地数据（投票和展开记录）

选项:
`

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("keluhctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	profile := fs.String("profile", "", "本地缓存的浏览器配置名，默认取 client.profile")
	baseURL := fs.String("server", "", "服务端地址，默认取 client.baseURL")
	direct := fs.Bool("direct", false, "不经过HTTP，直接读写 database 配置的存储")
	timeout := fs.Duration("timeout", client.DefaultTimeout, "单个请求的超时")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	// 1. 配置和日志
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "加载配置失败: %v\n", err)
		return 1
	}
	if *profile != "" {
		cfg.Client.Profile = *profile
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}
	if err := logger.Init(cfg.Log.Env); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 2. 本地缓存
	cache, closeCache, err := openCache(ctx, cfg.Client, cfg.Database.Redis)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeCache()

	// 3. 存储
	store, closeStore, err := openStore(ctx, cfg, *direct, *timeout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeStore()

	a := &app{board: board.New(ctx, store, cache), out: stdout}
	if err := a.run(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		fmt.Fprintf(stderr, "错误: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// openCache 按配置打开本地缓存，返回关闭函数
func openCache(ctx context.Context, cfg config.ClientConfig, redisCfg config.RedisConfig) (localcache.Cache, func(), error) {
	switch cfg.Cache {
	case config.CacheRedis:
		rdb, err := database.NewRedis(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return localcache.NewRedis(rdb, cfg.Profile), func() { _ = rdb.Close() }, nil
	default:
		cache, err := localcache.NewFile(cfg.CacheDir, cfg.Profile)
		if err != nil {
			return nil, nil, err
		}
		return cache, func() {}, nil
	}
}

// openStore 返回HTTP客户端，或在 direct 模式下直接打开存储
func openStore(ctx context.Context, cfg *config.Config, direct bool, timeout time.Duration) (board.Store, func(), error) {
	if !direct {
		return client.New(cfg.Client.BaseURL, timeout), func() {}, nil
	}
	backend, err := startup.InitializeBackend(ctx, cfg.Database, cfg.Log.Env)
	if err != nil {
		return nil, nil, err
	}
	store := board.ServiceStore{Entries: backend.Entries, Comments: backend.Comments}
	return store, func() { _ = backend.Close() }, nil
}
