package repository

import (
	"context"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGoogleSubject(ctx context.Context, subject string) (*entity.User, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.GoogleSubject.Valid {
		updateMap["google_subject"] = data.GoogleSubject
	}

	if data.AvatarURL.Valid {
		updateMap["avatar_url"] = data.AvatarURL
	}

	if data.LastLogin.Valid {
		updateMap["last_login"] = data.LastLogin
	}

	if len(updateMap) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByGoogleSubject(ctx context.Context, subject string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "google_subject=?", subject).Error; err != nil {
		return nil, err
	}

	return &record, nil
}
