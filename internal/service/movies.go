package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/repository"
	"github.com/user/moovie-ingest/internal/utils"
)

// MovieRegistry 按 IMDb ID 获取或创建电影
type MovieRegistry struct {
	repo  *repository.MovieRepository
	cache *utils.TTLCache[model.Movie]
}

func NewMovieRegistry(repo *repository.MovieRepository) *MovieRegistry {
	return &MovieRegistry{
		repo: repo,
		// 不同搜索词的结果大量重叠，近期见过的电影直接命中缓存
		cache: utils.NewTTLCache[model.Movie](30*time.Minute, time.Hour),
	}
}

// GetOrCreate 插入电影，返回记录以及是否为本次新建
// 数据格式错误时记录警告并尝试读取已有记录，可能返回 nil
func (r *MovieRegistry) GetOrCreate(ctx context.Context, m model.SearchMovie) (*model.Movie, bool, error) {
	row, convErr := toMovie(m)
	if convErr != nil {
		log.Printf("[MovieRegistry] 跳过电影，数据格式错误: %s (%v)", m.Title, convErr)
		if row.IMDbID <= 0 {
			return nil, false, nil
		}
		existing, err := r.find(ctx, row.IMDbID)
		return existing, false, err
	}

	if cached, ok := r.cache.Get(cacheKey(row.IMDbID)); ok {
		return &cached, false, nil
	}

	created := false
	insertErr := r.repo.Create(ctx, row)
	if insertErr != nil {
		switch model.KindOf(insertErr) {
		case model.KindAlreadyExists:
		case model.KindTypeMismatch:
			log.Printf("[MovieRegistry] 跳过电影，数据格式错误: %s (%v)", m.Title, insertErr)
		default:
			return nil, false, insertErr
		}
	} else {
		created = true
	}

	existing, err := r.find(ctx, row.IMDbID)
	if err != nil {
		return nil, false, err
	}
	// 唯一冲突但主键查不到，冲突的是 rtid 等其他列
	if existing == nil && model.KindOf(insertErr) == model.KindAlreadyExists {
		return nil, false, model.NewError(model.KindOther, insertErr, "电影 %s 的唯一约束冲突", m.Title)
	}
	return existing, created, nil
}

func (r *MovieRegistry) find(ctx context.Context, imdbID int64) (*model.Movie, error) {
	movie, err := r.repo.FindByIMDbID(ctx, imdbID)
	if err != nil || movie == nil {
		return nil, err
	}
	r.cache.Set(cacheKey(imdbID), *movie)
	return movie, nil
}

func cacheKey(imdbID int64) string {
	return strconv.FormatInt(imdbID, 10)
}

// toMovie 把搜索结果转换为 movies 行；出错时返回的行至少带上已解析出的 IMDb ID
func toMovie(m model.SearchMovie) (*model.Movie, error) {
	row := &model.Movie{Title: m.Title, MPAARating: m.MPAARating}

	imdb, _ := m.IMDbID()
	id, err := parseInt("imdb", imdb)
	if err != nil {
		return row, err
	}
	if id == nil || *id <= 0 {
		return row, model.NewError(model.KindTypeMismatch, nil, "无效的 IMDb ID: %q", imdb)
	}
	row.IMDbID = *id

	if row.RTID, err = parseInt("id", m.ID.String()); err != nil {
		return row, err
	}
	if row.Year, err = parseInt("year", m.Year.String()); err != nil {
		return row, err
	}
	if row.Runtime, err = parseInt("runtime", m.Runtime.String()); err != nil {
		return row, err
	}
	row.Released = releaseDate(m.ReleaseDates)
	return row, nil
}

// parseInt 空字符串视为 NULL，非数字返回 KindTypeMismatch
func parseInt(field, s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, model.NewError(model.KindTypeMismatch, err, "字段 %s 不是整数: %q", field, s)
	}
	return &n, nil
}

func releaseDate(dates map[string]string) *string {
	for _, key := range []string{"theater", "dvd"} {
		if d := strings.TrimSpace(dates[key]); d != "" {
			return &d
		}
	}
	return nil
}
