package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/internal/model"
	"github.com/cowetaconnect/backend/internal/repository"
	"github.com/cowetaconnect/backend/pkg/authenticator"
	"github.com/cowetaconnect/backend/pkg/crypto"
	"github.com/cowetaconnect/backend/pkg/errorx"
	"github.com/cowetaconnect/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
	OAuth2SignIn(context.Context, *model.OAuth2SignInRequest) (*model.OAuth2SignInResponse, error)
	RevokeSessions(context.Context, *model.RevokeSessionsRequest) (*model.RevokeSessionsResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	oauth2Services   []authenticator.IOAuth2Service

	linker *oauth2Linker
	guard  loginGuard
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	oauth2Services []authenticator.IOAuth2Service,
) AuthDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		oauth2Services:   oauth2Services,
		linker:           &oauth2Linker{userRepo: userRepo},
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRegistration(email, req.Password, req.Name); err != nil {
		return nil, err
	}

	_, err := d.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email address is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check email for registration: %v", err)
		return nil, errorx.Unknown
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Email:        email,
		PasswordHash: sql.NullString{Valid: true, String: passwordHash},
		Name:         strings.TrimSpace(req.Name),
		Role:         entity.RoleMember,
	}

	// The user row and its first refresh token land together or not at all.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := d.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RegisterResponse{
		TokenPair: model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	lockout := xcontext.Configs(ctx).Auth.Lockout

	count, err := d.guard.GetCount(ctx, req.OriginKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read failed login counter: %v", err)
		return nil, errorx.Unknown
	}

	// Credentials are never checked once the threshold is reached. The
	// retry-after is always the full window, however far past the threshold
	// the counter has climbed.
	if count >= lockout.MaxAttempts {
		return nil, errorx.NewRetryAfter(errorx.TooManyRequests, int64(lockout.Window.Seconds()),
			"Too many failed login attempts, try again later")
	}

	user, valid, err := d.verifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify credentials: %v", err)
		return nil, errorx.Unknown
	}

	if !valid {
		newCount, err := d.guard.RecordFailure(ctx, req.OriginKey)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot record failed login: %v", err)
		} else {
			xcontext.Logger(ctx).Warnf("Failed login from %s, attempt %d/%d",
				req.OriginKey, newCount, lockout.MaxAttempts)
		}

		// The generic message never reveals whether the email exists.
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if err := d.guard.Clear(ctx, req.OriginKey); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear failed login counter: %v", err)
	}

	if err := d.touchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := d.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		TokenPair: model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	hash := crypto.SHA256([]byte(req.RefreshToken))

	// Consume validates and revokes atomically. Unknown, already rotated,
	// revoked and expired tokens are indistinguishable here.
	userID, err := d.refreshTokenRepo.Consume(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "Refresh token is invalid or expired")
		}

		xcontext.Logger(ctx).Errorf("Cannot consume refresh token: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "Refresh token is invalid or expired")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := d.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RefreshTokenResponse{
		TokenPair: model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	if req.RefreshToken == "" {
		return &model.LogoutResponse{}, nil
	}

	// Logout is not an authentication check, it never fails.
	if err := d.refreshTokenRepo.Revoke(ctx, crypto.SHA256([]byte(req.RefreshToken))); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot revoke refresh token on logout: %v", err)
	}

	return &model.LogoutResponse{}, nil
}

func (d *authDomain) OAuth2SignIn(
	ctx context.Context, req *model.OAuth2SignInRequest,
) (*model.OAuth2SignInResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unsupported type %s", req.Type)
	}

	var serviceUser authenticator.OAuth2User
	var err error
	var oauth2Method string
	if req.IDToken != "" {
		oauth2Method = "id token"
		serviceUser, err = service.VerifyIDToken(ctx, req.IDToken)
	} else if req.Code != "" {
		oauth2Method = "authorization code with pkce"
		serviceUser, err = service.VerifyAuthorizationCode(
			ctx, req.Code, req.CodeVerifier, req.RedirectURI)
	}

	if oauth2Method == "" {
		return nil, errorx.New(errorx.BadRequest, "Please provide at least one method to authorize")
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify %s: %v", oauth2Method, err)
		return nil, errorx.Unknown
	}

	// The provider identity is authenticated at this point, so any failure
	// below is a local persistence problem.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	user, err := d.linker.UpsertGoogleUser(ctx, serviceUser)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert user from %s identity: %v", service.Service(), err)
		return nil, errorx.Unknown
	}

	if err := d.touchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := d.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.OAuth2SignInResponse{
		TokenPair: model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

// RevokeSessions marks every currently-valid refresh token of the user as
// revoked. Access tokens already issued stay valid until they expire.
func (d *authDomain) RevokeSessions(
	ctx context.Context, req *model.RevokeSessionsRequest,
) (*model.RevokeSessionsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "User id is required")
	}

	if err := d.refreshTokenRepo.RevokeAllForUser(ctx, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke sessions of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	return &model.RevokeSessionsResponse{}, nil
}

func (d *authDomain) getOAuth2Service(service string) (authenticator.IOAuth2Service, bool) {
	for i := range d.oauth2Services {
		if d.oauth2Services[i].Service() == service {
			return d.oauth2Services[i], true
		}
	}
	return nil, false
}

func (d *authDomain) verifyCredentials(
	ctx context.Context, email, password string,
) (*entity.User, bool, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	// Identity-provider-only accounts carry no password credential.
	if !user.PasswordHash.Valid {
		return nil, false, nil
	}

	if !crypto.ComparePassword(user.PasswordHash.String, password) {
		return nil, false, nil
	}

	return user, true, nil
}

func (d *authDomain) touchLastLogin(ctx context.Context, userID string) error {
	update := entity.User{LastLogin: sql.NullTime{Valid: true, Time: time.Now()}}
	if err := d.userRepo.UpdateByID(ctx, userID, &update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last login: %v", err)
		return errorx.Unknown
	}

	return nil
}

// issueTokenPair ends every successful flow: a signed access token, a fresh
// raw refresh token returned to the caller exactly once, and the hash stored
// with the configured expiry.
func (d *authDomain) issueTokenPair(
	ctx context.Context, user *entity.User,
) (string, string, error) {
	accessToken, err := xcontext.TokenEngine(ctx).GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	rawRefreshToken, err := crypto.GenerateRefreshToken()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    user.ID,
		TokenHash: crypto.SHA256([]byte(rawRefreshToken)),
		ExpiresAt: time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, rawRefreshToken, nil
}
