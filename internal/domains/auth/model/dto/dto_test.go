package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/infras/jwt"
	adminModel "hotel/internal/domains/admin/model"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, dto.LoginResponse{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}, response)
}

func TestMeResponse_FromModel(t *testing.T) {
	var response dto.MeResponse
	response.FromModel(adminModel.Admin{
		ID:           "admin-1",
		Username:     "admin",
		Email:        "admin@omangrandhotel.com",
		PasswordHash: "$2a$10$hash",
	})

	assert.Equal(t, "admin", response.Username)
	assert.Equal(t, constant.RoleAdmin, response.Role)
}
