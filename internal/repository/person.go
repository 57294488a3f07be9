package repository

import (
	"context"
	"errors"

	"github.com/user/moovie-ingest/internal/model"
	"gorm.io/gorm"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// FindByName 按姓名查找人物，不存在时返回 nil
func (r *PersonRepository) FindByName(ctx context.Context, name string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "查询人物 %s 失败", name)
	}
	return &person, nil
}

// Create 插入人物，成功后 person.ID 为新分配的主键
func (r *PersonRepository) Create(ctx context.Context, person *model.Person) error {
	return wrap(r.db.WithContext(ctx).Create(person).Error, "插入人物 %s 失败", person.Name)
}
