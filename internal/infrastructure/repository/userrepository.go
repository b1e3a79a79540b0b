package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kursly/internal/domain/user"
	"kursly/internal/infrastructure/persistence/mappers"
	"kursly/internal/infrastructure/persistence/models"
	"kursly/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(
	db *gorm.DB,
	logger logger.Interface,
) user.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Upsert inserts on first contact; on conflict only the profile fields are
// refreshed, created_at stays.
func (r *UserRepositoryImpl) Upsert(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "full_name"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert user", "user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UserRepositoryImpl) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64

	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list user IDs: %w", err)
	}

	return ids, nil
}

func (r *UserRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*user.User, error) {
	var userModels []*models.UserModel

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}

	return r.mapper.ToEntities(userModels)
}

func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
