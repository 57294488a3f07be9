package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/user/moovie-ingest/internal/model"
	"gorm.io/gorm"
)

// LinkRepository 电影-人物、电影-类型两张关联表
type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// AddGenre 写入类型关联，重复返回 KindAlreadyExists，不在词表中返回 KindInvalidDomainValue
func (r *LinkRepository) AddGenre(ctx context.Context, movie int64, genre string) error {
	link := &model.MovieGenre{Movie: movie, Genre: genre}
	return wrap(r.db.WithContext(ctx).Create(link).Error, "写入类型 %s 失败", genre)
}

// AddRole 写入人物角色关联，同一人在同一电影中的同一角色只能有一行
func (r *LinkRepository) AddRole(ctx context.Context, link *model.MoviePerson) error {
	return wrap(r.db.WithContext(ctx).Create(link).Error, "写入角色 %s 失败", link.Role)
}

// RoleCredit 角色关联与人物姓名
type RoleCredit struct {
	Person int64
	Name   string
	Role   string
	Descr  string
}

// CreditsForMovie 列出电影的全部人物角色，按角色、姓名排序
func (r *LinkRepository) CreditsForMovie(ctx context.Context, movie int64) ([]RoleCredit, error) {
	query, args, err := sq.Select("mp.person", "p.name", "mp.role", "mp.descr").
		From(moviePeopleTable + " mp").
		Join(peopleTable + " p ON p.id = mp.person").
		Where(sq.Eq{"mp.movie": movie}).
		OrderBy("mp.role", "p.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("生成查询失败: %w", err)
	}

	var credits []RoleCredit
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&credits).Error; err != nil {
		return nil, wrap(err, "查询电影 %d 的人物失败", movie)
	}
	return credits, nil
}

// GenresForMovie 列出电影的类型
func (r *LinkRepository) GenresForMovie(ctx context.Context, movie int64) ([]string, error) {
	var genres []string
	err := r.db.WithContext(ctx).Model(&model.MovieGenre{}).
		Where("movie = ?", movie).
		Order("genre").
		Pluck("genre", &genres).Error
	if err != nil {
		return nil, wrap(err, "查询电影 %d 的类型失败", movie)
	}
	return genres, nil
}
