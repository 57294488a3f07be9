package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/user/moovie-ingest/internal/config"
	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/repository"
	"github.com/user/moovie-ingest/internal/service"
	"github.com/user/moovie-ingest/internal/utils"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("采集失败: %v", err)
	}
}

func run(cfg *config.Config) error {
	// SIGINT/SIGTERM 时取消当前请求，已提交的数据保留
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[Ingest] 启动采集 (env=%s, 搜索词 %d 个)", cfg.Env, len(cfg.Queries))

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		return err
	}
	repos := repository.NewRepositories(db)
	defer repos.Close()

	if err := repos.Schema.EnsureSchema(ctx); err != nil {
		return err
	}
	if cfg.MigrateGenres {
		if err := repos.Schema.MigrateGenreVocabulary(ctx, model.GenreVocabulary); err != nil {
			return err
		}
	}

	client := utils.NewHTTPClient(cfg.HTTPTimeout)
	people := service.NewPersonRegistry(repos.Person, 4096)
	ingest := service.NewIngestService(
		service.NewRottenTomatoesClient(client, cfg.RTAPIURL, cfg.RTAPIKey, cfg.PageLimit),
		service.NewOMDbClient(client, cfg.OMDbAPIURL, cfg.OMDbAPIKey),
		service.NewMovieRegistry(repos.Movie),
		service.NewExtractor(people, repos.Link),
		cfg.MaxPages,
	)

	stats, err := ingest.RunQueries(ctx, cfg.Queries)
	log.Printf("[Ingest] 共处理 %d 页, %d 部电影, 新增 %d, 跳过 %d",
		stats.Pages, stats.Seen, stats.Created, stats.Skipped)
	return err
}
