package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"campus-chat/repository"
)

// Repository holds the CRUD calls shared by every table.
type Repository[T any] struct{}

func (repo Repository[T]) Save(ctx context.Context, db *gorm.DB, entity *T) error {
	return translate(db.WithContext(ctx).Create(entity).Error)
}

func (repo Repository[T]) Update(ctx context.Context, db *gorm.DB, entity *T) error {
	return translate(db.WithContext(ctx).Save(entity).Error)
}

func (repo Repository[T]) DeleteById(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

func (repo Repository[T]) FindById(ctx context.Context, db *gorm.DB, entity *T, id string) error {
	return translate(db.WithContext(ctx).Where("id = ?", id).Take(entity).Error)
}

func (repo Repository[T]) FindAll(ctx context.Context, db *gorm.DB, entity *[]T) error {
	return db.WithContext(ctx).Order("created_at ASC").Find(entity).Error
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}
