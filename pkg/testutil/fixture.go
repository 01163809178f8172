package testutil

import (
	"context"
	"database/sql"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/pkg/crypto"
	"github.com/cowetaconnect/backend/pkg/xcontext"
)

// Password1Plain is the plaintext behind User1's password hash.
const Password1Plain = "Password1"

var (
	// User1 owns a password credential.
	User1 entity.User

	// User2 was created through Google sign-in and has no password.
	User2 entity.User

	// User3 is an administrator with a password credential.
	User3 entity.User
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
}

func InsertUsers(ctx context.Context) {
	passwordHash, err := crypto.HashPassword(Password1Plain)
	if err != nil {
		panic(err)
	}

	User1 = entity.User{
		Base:          entity.Base{ID: "user1"},
		Email:         "jane@example.com",
		PasswordHash:  sql.NullString{Valid: true, String: passwordHash},
		Name:          "Jane Doe",
		Role:          entity.RoleMember,
		EmailVerified: false,
	}

	User2 = entity.User{
		Base:          entity.Base{ID: "user2"},
		Email:         "bob@example.com",
		Name:          "Bob Smith",
		Role:          entity.RoleMember,
		EmailVerified: true,
		GoogleSubject: sql.NullString{Valid: true, String: "google-subject-user2"},
	}

	User3 = entity.User{
		Base:          entity.Base{ID: "user3"},
		Email:         "admin@example.com",
		PasswordHash:  sql.NullString{Valid: true, String: passwordHash},
		Name:          "Ada Admin",
		Role:          entity.RoleAdmin,
		EmailVerified: true,
	}

	for _, user := range []*entity.User{&User1, &User2, &User3} {
		if err := xcontext.DB(ctx).Create(user).Error; err != nil {
			panic(err)
		}
	}
}
