package service

import (
	"context"
	"log"
	"strings"

	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/repository"
	"github.com/user/moovie-ingest/internal/utils"
)

// PersonRegistry 按姓名获取或创建人物
type PersonRegistry struct {
	repo  *repository.PersonRepository
	cache *utils.LRU[string, model.Person]
}

// NewPersonRegistry cacheSize 为姓名缓存条数，人物写入后不会再修改，缓存不会过期
func NewPersonRegistry(repo *repository.PersonRepository, cacheSize int) *PersonRegistry {
	return &PersonRegistry{
		repo:  repo,
		cache: utils.NewLRU[string, model.Person](cacheSize),
	}
}

// GetOrCreatePerson 姓名已存在时返回已有记录；rtid 与已存的不一致时报身份冲突
// 已有记录的 rtid 为空时不会回填
func (r *PersonRegistry) GetOrCreatePerson(ctx context.Context, name string, rtid *int64) (*model.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewError(model.KindInvalidDomainValue, nil, "人物姓名不能为空")
	}

	existing, err := r.find(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := checkIdentity(existing, rtid); err != nil {
			return nil, err
		}
		return existing, nil
	}

	log.Printf("[PersonRegistry] 新增人物: %s", name)
	person := &model.Person{Name: name, RTID: rtid}
	if err := r.repo.Create(ctx, person); err != nil {
		if model.KindOf(err) != model.KindAlreadyExists {
			return nil, err
		}
		// 姓名冲突说明记录已存在，重新读取；否则是 rtid 已被其他姓名占用
		existing, ferr := r.repo.FindByName(ctx, name)
		if ferr != nil {
			return nil, ferr
		}
		if existing == nil {
			return nil, model.NewError(model.KindAmbiguousIdentity, err,
				"人物身份不明确: 烂番茄 ID %d 已属于其他人物，无法用于 %s", derefID(rtid), name)
		}
		if err := checkIdentity(existing, rtid); err != nil {
			return nil, err
		}
		r.cache.Add(name, *existing)
		return existing, nil
	}

	r.cache.Add(name, *person)
	return person, nil
}

func (r *PersonRegistry) find(ctx context.Context, name string) (*model.Person, error) {
	if p, ok := r.cache.Get(name); ok {
		return &p, nil
	}
	p, err := r.repo.FindByName(ctx, name)
	if err != nil || p == nil {
		return nil, err
	}
	r.cache.Add(name, *p)
	return p, nil
}

func checkIdentity(existing *model.Person, rtid *int64) error {
	if rtid != nil && existing.RTID != nil && *rtid != *existing.RTID {
		return model.NewError(model.KindAmbiguousIdentity, nil,
			"人物身份不明确: %s 对应的烂番茄 ID 有 %d 和 %d", existing.Name, *rtid, *existing.RTID)
	}
	return nil
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
