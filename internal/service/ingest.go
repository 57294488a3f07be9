package service

import (
	"context"
	"fmt"
	"log"

	"github.com/user/moovie-ingest/internal/model"
)

// IngestService 搜索电影并补充详情后入库
// 全程顺序执行：一个搜索词的所有分页和详情处理完才开始下一个
type IngestService struct {
	search    SearchSource
	details   DetailSource
	movies    *MovieRegistry
	extractor *Extractor
	maxPages  int
}

// NewIngestService 创建采集服务，maxPages 限制单个搜索词最多跟随的页数
func NewIngestService(search SearchSource, details DetailSource, movies *MovieRegistry, extractor *Extractor, maxPages int) *IngestService {
	if maxPages <= 0 {
		maxPages = 100
	}
	return &IngestService{
		search:    search,
		details:   details,
		movies:    movies,
		extractor: extractor,
		maxPages:  maxPages,
	}
}

// RunQueries 依次执行搜索词，任何错误都会终止后续搜索
func (s *IngestService) RunQueries(ctx context.Context, queries []string) (model.IngestStats, error) {
	var total model.IngestStats
	for _, query := range queries {
		log.Printf("[Ingest] QUERY: %s", query)
		stats, err := s.FetchMovies(ctx, query)
		total.Add(stats)
		if err != nil {
			return total, fmt.Errorf("搜索词 %q 处理失败: %w", query, err)
		}
		log.Printf("[Ingest] 搜索词 %s 完成: %d 页, %d 部电影, 新增 %d, 跳过 %d",
			query, stats.Pages, stats.Seen, stats.Created, stats.Skipped)
	}
	return total, nil
}

// FetchMovies 搜索一个词并处理全部分页
func (s *IngestService) FetchMovies(ctx context.Context, query string) (model.IngestStats, error) {
	page, err := s.search.Search(ctx, query)
	if err != nil {
		return model.IngestStats{}, err
	}
	return s.ProcessMovies(ctx, page)
}

// ProcessMovies 处理一页结果，并沿 links.next 继续，直到没有下一页或达到页数上限
func (s *IngestService) ProcessMovies(ctx context.Context, page *model.SearchPage) (model.IngestStats, error) {
	var stats model.IngestStats
	for page != nil {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Pages++

		for _, movie := range page.Movies {
			stats.Seen++
			outcome, err := s.processMovie(ctx, movie)
			switch outcome {
			case movieCreated:
				stats.Created++
			case movieSkipped:
				stats.Skipped++
			}
			if err != nil {
				return stats, err
			}
		}

		if page.Links.Next == "" {
			break
		}
		if stats.Pages >= s.maxPages {
			log.Printf("[Ingest] 已达到分页上限 %d，停止跟随: %s", s.maxPages, page.Links.Next)
			break
		}

		next, err := s.search.Next(ctx, page.Links.Next)
		if err != nil {
			return stats, err
		}
		page = next
	}
	return stats, nil
}

type movieOutcome int

const (
	movieExisting movieOutcome = iota
	movieCreated
	movieSkipped
)

func (s *IngestService) processMovie(ctx context.Context, movie model.SearchMovie) (movieOutcome, error) {
	imdb, ok := movie.IMDbID()
	if !ok {
		return movieSkipped, nil
	}

	row, created, err := s.movies.GetOrCreate(ctx, movie)
	if err != nil {
		return movieExisting, err
	}
	// 数据格式错误且库中没有记录，不做后续提取
	if row == nil {
		return movieSkipped, nil
	}
	if !created {
		return movieExisting, nil
	}

	log.Printf("[Ingest] NEW MOVIE: %s", movie.Title)
	rec, err := s.details.Lookup(ctx, imdb)
	if err != nil {
		return movieCreated, err
	}
	if err := s.extractor.ExtractAll(ctx, row.IMDbID, movie, rec); err != nil {
		return movieCreated, fmt.Errorf("提取电影 %s 的关联失败: %w", movie.Title, err)
	}
	return movieCreated, nil
}
