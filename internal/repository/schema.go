package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/user/moovie-ingest/internal/model"
	"gorm.io/gorm"
)

const (
	moviesTable      = "movies"
	peopleTable      = "people"
	moviePeopleTable = "movie_people"
	movieGenresTable = "movie_genres"
	genresTmpTable   = "movie_genres_tmp"
)

// SchemaManager 负责建表以及类型词表变更时重建 movie_genres
type SchemaManager struct {
	db *gorm.DB
}

func NewSchemaManager(db *gorm.DB) *SchemaManager {
	return &SchemaManager{db: db}
}

// EnsureSchema 创建缺失的表，已存在的表保持不变
func (s *SchemaManager) EnsureSchema(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	d := dialectOf(db)

	tables := []struct {
		name string
		ddl  string
	}{
		{moviesTable, d.moviesDDL()},
		{peopleTable, d.peopleDDL()},
		{moviePeopleTable, d.moviePeopleDDL()},
		{movieGenresTable, genresDDL(movieGenresTable, model.GenreVocabulary)},
	}

	for _, t := range tables {
		if db.Migrator().HasTable(t.name) {
			continue
		}
		if err := db.Exec(t.ddl).Error; err != nil {
			return fmt.Errorf("创建表 %s 失败: %w", t.name, err)
		}
		log.Printf("[Schema] 已创建表 %s", t.name)
	}
	return nil
}

// MigrateGenreVocabulary 用新的类型词表重建 movie_genres
// CHECK 约束无法原地修改（SQLite 不支持），因此新建临时表、复制数据、删除旧表、改名
func (s *SchemaManager) MigrateGenreVocabulary(ctx context.Context, labels []string) error {
	if err := validateLabels(labels); err != nil {
		return err
	}

	copySQL, copyArgs, err := sq.Insert(genresTmpTable).
		Columns("movie", "genre").
		Select(sq.Select("movie", "genre").From(movieGenresTable)).
		ToSql()
	if err != nil {
		return fmt.Errorf("生成复制语句失败: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 上次迁移中断时可能留下临时表
		if tx.Migrator().HasTable(genresTmpTable) {
			log.Printf("[Schema] 发现遗留的 %s，先删除", genresTmpTable)
			if err := tx.Exec("DROP TABLE " + genresTmpTable).Error; err != nil {
				return fmt.Errorf("删除遗留临时表失败: %w", err)
			}
		}

		if err := tx.Exec(genresDDL(genresTmpTable, labels)).Error; err != nil {
			return fmt.Errorf("创建临时表失败: %w", err)
		}

		if tx.Migrator().HasTable(movieGenresTable) {
			if err := tx.Exec(copySQL, copyArgs...).Error; err != nil {
				if Classify(err) == model.KindInvalidDomainValue {
					return model.NewError(model.KindInvalidDomainValue, err, "已有类型不在新词表中")
				}
				return wrap(err, "复制类型数据失败")
			}
			if err := tx.Exec("DROP TABLE " + movieGenresTable).Error; err != nil {
				return fmt.Errorf("删除旧表失败: %w", err)
			}
		}

		if err := tx.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", genresTmpTable, movieGenresTable)).Error; err != nil {
			return fmt.Errorf("临时表改名失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[Schema] 类型词表已更新至版本 %d，共 %d 个类型", model.GenreVocabularyVersion, len(labels))
	return nil
}

func validateLabels(labels []string) error {
	if len(labels) == 0 {
		return model.NewError(model.KindInvalidDomainValue, nil, "类型词表不能为空")
	}
	for _, label := range labels {
		if strings.TrimSpace(label) == "" || strings.ContainsAny(label, `'\`) {
			return model.NewError(model.KindInvalidDomainValue, nil, "非法的类型名称: %q", label)
		}
	}
	return nil
}

// genresDDL 生成带 genre_check 约束的类型关联表
func genresDDL(table string, labels []string) string {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = pq.QuoteLiteral(label)
	}
	return fmt.Sprintf(`CREATE TABLE %s (
		movie BIGINT NOT NULL REFERENCES movies(imdbid),
		genre TEXT NOT NULL
			CONSTRAINT genre_check CHECK (genre IN (%s)),
		UNIQUE (movie, genre))`, table, strings.Join(quoted, ","))
}

type dialect string

const (
	dialectSQLite   dialect = "sqlite"
	dialectPostgres dialect = "postgres"
)

func dialectOf(db *gorm.DB) dialect {
	if db.Dialector.Name() == "postgres" {
		return dialectPostgres
	}
	return dialectSQLite
}

func (d dialect) moviesDDL() string {
	// SQLite 中只有 INTEGER PRIMARY KEY 才会成为 rowid 别名并拒绝非整数值
	pk := "INTEGER PRIMARY KEY"
	if d == dialectPostgres {
		pk = "BIGINT PRIMARY KEY"
	}
	return fmt.Sprintf(`CREATE TABLE movies (
		imdbid %s,
		rtid BIGINT UNIQUE,
		title TEXT,
		year INTEGER,
		released TEXT,
		mpaa_rating TEXT,
		runtime INTEGER)`, pk)
}

func (d dialect) peopleDDL() string {
	pk := "INTEGER PRIMARY KEY"
	if d == dialectPostgres {
		pk = "BIGSERIAL PRIMARY KEY"
	}
	return fmt.Sprintf(`CREATE TABLE people (
		id %s,
		rtid BIGINT UNIQUE,
		name TEXT NOT NULL UNIQUE)`, pk)
}

func (d dialect) moviePeopleDDL() string {
	return `CREATE TABLE movie_people (
		movie BIGINT NOT NULL REFERENCES movies(imdbid),
		person BIGINT NOT NULL REFERENCES people(id),
		role TEXT NOT NULL,
		descr TEXT NOT NULL DEFAULT '',
		CONSTRAINT movie_person_role_unique UNIQUE (movie, person, role))`
}
