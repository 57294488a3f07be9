package service

import (
	"context"
	"log"
	"strings"

	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/repository"
	"github.com/user/moovie-ingest/internal/utils"
)

// Extractor 从两个数据源的结果中提取类型与人物关联
type Extractor struct {
	people *PersonRegistry
	links  *repository.LinkRepository
}

func NewExtractor(people *PersonRegistry, links *repository.LinkRepository) *Extractor {
	return &Extractor{people: people, links: links}
}

// ExtractAll 依次提取类型、导演、编剧、演员
func (e *Extractor) ExtractAll(ctx context.Context, imdbID int64, movie model.SearchMovie, rec *model.OMDbRecord) error {
	if err := e.ExtractGenres(ctx, imdbID, rec); err != nil {
		return err
	}
	if err := e.ExtractDirectors(ctx, imdbID, rec); err != nil {
		return err
	}
	if err := e.ExtractWriters(ctx, imdbID, rec); err != nil {
		return err
	}
	return e.ExtractActors(ctx, imdbID, movie, rec)
}

// ExtractGenres 写入类型关联，词表外的类型直接报错
func (e *Extractor) ExtractGenres(ctx context.Context, imdbID int64, rec *model.OMDbRecord) error {
	for _, genre := range utils.SplitList(orEmpty(rec).Genre) {
		err := e.links.AddGenre(ctx, imdbID, genre)
		if err == nil {
			continue
		}
		switch model.KindOf(err) {
		case model.KindAlreadyExists:
		case model.KindInvalidDomainValue:
			return model.NewError(model.KindInvalidDomainValue, err, "无效的类型: %s", genre)
		default:
			return err
		}
	}
	return nil
}

// ExtractDirectors 写入导演关联
func (e *Extractor) ExtractDirectors(ctx context.Context, imdbID int64, rec *model.OMDbRecord) error {
	for _, name := range utils.SplitList(orEmpty(rec).Director) {
		if err := e.link(ctx, imdbID, name, nil, model.RoleDirector, ""); err != nil {
			return err
		}
	}
	return nil
}

// ExtractWriters 写入编剧关联，同名编剧合并为一行，括号说明以分号连接
func (e *Extractor) ExtractWriters(ctx context.Context, imdbID int64, rec *model.OMDbRecord) error {
	for _, credit := range utils.MergeCredits(orEmpty(rec).Writer) {
		descr := strings.Join(credit.Qualifiers, ";")
		if err := e.link(ctx, imdbID, credit.Name, nil, model.RoleWriter, descr); err != nil {
			return err
		}
	}
	return nil
}

// ExtractActors 先写入烂番茄演员表（带角色名），再补充 OMDb 中未出现的演员
func (e *Extractor) ExtractActors(ctx context.Context, imdbID int64, movie model.SearchMovie, rec *model.OMDbRecord) error {
	seen := make(map[string]struct{}, len(movie.AbridgedCast))
	for _, cast := range movie.AbridgedCast {
		name := strings.TrimSpace(cast.Name)
		if name == "" {
			continue
		}
		rtid, err := parseInt("cast.id", cast.ID.String())
		if err != nil {
			log.Printf("[Extractor] 演员 %s 的烂番茄 ID 无效，按无 ID 处理: %v", name, err)
			rtid = nil
		}
		if err := e.link(ctx, imdbID, name, rtid, model.RoleActor, strings.Join(cast.Characters, "; ")); err != nil {
			return err
		}
		seen[name] = struct{}{}
	}

	for _, name := range utils.SplitList(orEmpty(rec).Actors) {
		if _, ok := seen[name]; ok {
			continue
		}
		if err := e.link(ctx, imdbID, name, nil, model.RoleActor, ""); err != nil {
			return err
		}
	}
	return nil
}

// link 获取人物并写入角色关联，重复关联忽略
func (e *Extractor) link(ctx context.Context, imdbID int64, name string, rtid *int64, role, descr string) error {
	person, err := e.people.GetOrCreatePerson(ctx, name, rtid)
	if err != nil {
		return err
	}
	err = e.links.AddRole(ctx, &model.MoviePerson{Movie: imdbID, Person: person.ID, Role: role, Descr: descr})
	if err != nil && model.KindOf(err) != model.KindAlreadyExists {
		return err
	}
	return nil
}

// orEmpty 未找到 OMDb 条目时所有字段按空处理
func orEmpty(rec *model.OMDbRecord) *model.OMDbRecord {
	if rec == nil {
		return &model.OMDbRecord{}
	}
	return rec
}
