package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultQueries 默认搜索词：数字与字母单字符，尽可能覆盖搜索结果
var DefaultQueries = []string{
	"1", "2", "3",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
}

// Config 应用配置
type Config struct {
	Env         string
	DatabaseURL string `validate:"required"`
	DBLogLevel  string `validate:"oneof=silent error warn info"`

	// 主数据源（烂番茄搜索 API）
	RTAPIURL  string `validate:"required,url"`
	RTAPIKey  string
	PageLimit int `validate:"min=1,max=50"`
	MaxPages  int `validate:"min=1"`

	// 补充数据源（OMDb 详情 API）
	OMDbAPIURL string `validate:"required,url"`
	OMDbAPIKey string

	HTTPTimeout   time.Duration `validate:"min=0"`
	Queries       []string      `validate:"min=1,dive,required"`
	MigrateGenres bool
}

var validate = validator.New()

// Load 加载配置
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	cfg := &Config{
		Env:           env,
		DatabaseURL:   databaseURL(),
		DBLogLevel:    strings.ToLower(getEnv("DB_LOG_LEVEL", defaultDBLogLevel(env))),
		RTAPIURL:      getEnv("RT_API_URL", "http://api.rottentomatoes.com/api/public/v1.0/movies.json"),
		RTAPIKey:      getEnv("RT_API_KEY", ""),
		PageLimit:     getEnvInt("PAGE_LIMIT", 50),
		MaxPages:      getEnvInt("MAX_PAGES", 100),
		OMDbAPIURL:    getEnv("OMDB_API_URL", "http://www.omdbapi.com/"),
		OMDbAPIKey:    getEnv("OMDB_API_KEY", ""),
		HTTPTimeout:   getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		Queries:       getEnvList("QUERIES", DefaultQueries),
		MigrateGenres: getEnvBool("MIGRATE_GENRES", true),
	}

	if cfg.RTAPIKey == "" {
		log.Println("[Config] 未设置 RT_API_KEY，主数据源请求可能被拒绝")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return cfg, nil
}

// defaultDBLogLevel 生产环境只记录 SQL 错误，其余环境同时记录慢查询
func defaultDBLogLevel(env string) string {
	if env == "production" {
		return "error"
	}
	return "warn"
}

// databaseURL 优先使用 DATABASE_URL，其次由 DB_* 拼出 PostgreSQL 连接串，默认本地 SQLite
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	if os.Getenv("DB_HOST") == "" {
		return "movies.db"
	}

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "movies")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[Config] %s=%q 不是合法整数，使用默认值 %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[Config] %s=%q 不是合法布尔值，使用默认值 %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[Config] %s=%q 不是合法时长，使用默认值 %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvList 读取逗号分隔的列表，忽略空项
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
