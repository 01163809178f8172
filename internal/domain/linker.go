package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/internal/repository"
	"github.com/cowetaconnect/backend/pkg/authenticator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type oauth2Linker struct {
	userRepo repository.UserRepository
}

// UpsertGoogleUser resolves a verified third-party identity to a local user.
// Match order, first match wins: subject (idempotent re-sign-in), email
// (links the external identity to an existing password account), otherwise a
// new user is created. Persistence failures surface as-is, no retries.
func (l *oauth2Linker) UpsertGoogleUser(
	ctx context.Context, serviceUser authenticator.OAuth2User,
) (*entity.User, error) {
	user, err := l.userRepo.GetByGoogleSubject(ctx, serviceUser.Subject)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(serviceUser.Email))
	user, err = l.userRepo.GetByEmail(ctx, email)
	if err == nil {
		update := entity.User{
			GoogleSubject: sql.NullString{Valid: true, String: serviceUser.Subject},
		}

		if !user.AvatarURL.Valid && serviceUser.Picture != "" {
			update.AvatarURL = sql.NullString{Valid: true, String: serviceUser.Picture}
		}

		if err := l.userRepo.UpdateByID(ctx, user.ID, &update); err != nil {
			return nil, err
		}

		user.GoogleSubject = update.GoogleSubject
		if update.AvatarURL.Valid {
			user.AvatarURL = update.AvatarURL
		}

		return user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		Email:         email,
		Name:          serviceUser.Name,
		Role:          entity.RoleMember,
		EmailVerified: true, // the provider already verified it
		GoogleSubject: sql.NullString{Valid: true, String: serviceUser.Subject},
	}

	if serviceUser.Picture != "" {
		user.AvatarURL = sql.NullString{Valid: true, String: serviceUser.Picture}
	}

	if err := l.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
