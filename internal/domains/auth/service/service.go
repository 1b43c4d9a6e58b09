package service

import (
	"context"
	"fmt"

	"hotel/infras/jwt"
	"hotel/infras/otel"
	adminModel "hotel/internal/domains/admin/model"
	adminRepo "hotel/internal/domains/admin/repository"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	messageInvalidCredentials = "invalid username or password"
	messageInvalidRefresh     = "invalid refresh token"
	messageAdminNotFound      = "admin not found"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Me(ctx context.Context) (dto.MeResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	adminRepo  adminRepo.Admin
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(adminRepo adminRepo.Admin, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		adminRepo:  adminRepo,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	admin, err := s.adminRepo.Get(ctx, byField(adminModel.FieldUsername, req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(messageInvalidCredentials) //nolint:wrapcheck
	}

	if err = password.Verify(req.Password, admin.PasswordHash); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(messageInvalidCredentials) //nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(identity(admin))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// Me returns the admin attached to the request context by the auth middleware.
func (s *serviceImpl) Me(ctx context.Context) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.current(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(admin)

	return res, nil
}

// Logout revokes the access token and, when given, the refresh token until they would expire anyway.
func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.AccessToken, jwt.AccessToken)
	if err != nil {
		return failure.Unauthorized(err.Error()) //nolint:wrapcheck
	}

	if err = s.revoke(ctx, claims); err != nil {
		return err
	}

	if req.RefreshToken == constant.Empty {
		return nil
	}

	refresh, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("skipping revocation of invalid refresh token")

		return nil
	}

	if refresh.AdminID != claims.AdminID {
		return failure.BadRequestFromString(messageInvalidRefresh) //nolint:wrapcheck
	}

	return s.revoke(ctx, refresh)
}

// RefreshToken rotates the pair. The presented refresh token cannot be used again.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized(messageInvalidRefresh) //nolint:wrapcheck
	}

	revoked, err := s.cache.Exists(ctx, shared.RevokedTokenKey(claims.TokenID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check token revocation")

		return res, fmt.Errorf("failed to check token revocation: %w", err)
	}

	if revoked {
		return res, failure.Unauthorized(messageInvalidRefresh) //nolint:wrapcheck
	}

	admin, err := s.adminRepo.Get(ctx, byField(adminModel.FieldID, claims.AdminID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return res, failure.Unauthorized(messageInvalidRefresh) //nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(identity(admin))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err = s.revoke(ctx, claims); err != nil {
		return res, err
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	admin, err := s.current(ctx)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, admin.PasswordHash); err != nil {
		return failure.BadRequestFromString("current password is incorrect") //nolint:wrapcheck
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	fields := shared.TransformFields(dto.UpdatePasswordRequest{PasswordHash: hashed}, admin.Username)

	if err = s.adminRepo.Update(ctx, fields, byField(adminModel.FieldID, admin.ID)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) current(ctx context.Context) (adminModel.Admin, error) {
	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if adminID == constant.Empty {
		return adminModel.Admin{}, failure.Unauthorized("not logged in") //nolint:wrapcheck
	}

	admin, err := s.adminRepo.Get(ctx, byField(adminModel.FieldID, adminID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return admin, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return admin, failure.NotFound(messageAdminNotFound) // nolint:wrapcheck
	}

	return admin, nil
}

func (s *serviceImpl) revoke(ctx context.Context, claims *jwt.Claims) error {
	ttl := int(claims.Remaining(timezone.Now()).Seconds())
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Save(ctx, shared.RevokedTokenKey(claims.TokenID), true, ttl); err != nil {
		log.Error().Err(err).Str("token_id", claims.TokenID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func identity(admin adminModel.Admin) jwt.Identity {
	return jwt.Identity{
		AdminID:  admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		Role:     constant.RoleAdmin,
	}
}

func byField(field string, value any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    adminModel.TableName,
			},
		},
	}
}
