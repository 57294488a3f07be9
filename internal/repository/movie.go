package repository

import (
	"context"
	"errors"

	"github.com/user/moovie-ingest/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 插入电影，主键冲突时返回 KindAlreadyExists 分类错误
func (r *MovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	return wrap(r.db.WithContext(ctx).Create(movie).Error, "插入电影 %d 失败", movie.IMDbID)
}

// FindByIMDbID 根据 IMDb ID 查找电影，不存在时返回 nil
func (r *MovieRepository) FindByIMDbID(ctx context.Context, imdbID int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).Where("imdbid = ?", imdbID).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "查询电影 %d 失败", imdbID)
	}
	return &movie, nil
}

// Count 电影总数
func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&n).Error
	return n, err
}
