// internal/services/user_service_db_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yycy134679/school-secondhand-trading-system/internal/config"
	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	utils.SetJWTSecret("user-service-test-secret")
	cfg := &config.Config{JWT: config.JWTConfig{AccessTokenTTL: 24}}
	return NewUserService(newTestDB(t), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestUserService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Account:  "zhangsan",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "zhangsan", resp.User.Account)
	// A blank nickname defaults to 用户 plus the account.
	assert.Equal(t, "用户zhangsan", resp.User.Nickname)
	assert.False(t, resp.User.IsAdmin)

	claims, err := utils.ValidateJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	login, err := svc.Login(context.Background(), "zhangsan", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateAccount(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{Account: "zhangsan", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Account: "zhangsan", Password: "other456"})
	se := asServiceError(t, err)
	assert.Equal(t, models.CodeInvalidParams, se.Code)
	assert.Equal(t, i18n.KeyUserAccountExists, se.Key)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestUserService(t)

	cases := []struct {
		name    string
		req     RegisterRequest
		wantKey string
	}{
		{"account too short", RegisterRequest{Account: "ab", Password: "secret123"}, i18n.KeyInvalidParams},
		{"account bad characters", RegisterRequest{Account: "张三", Password: "secret123"}, i18n.KeyInvalidParams},
		{"password too short", RegisterRequest{Account: "zhangsan", Password: "12345"}, i18n.KeySessionPasswordTooShort},
		{"bad wechat id", RegisterRequest{Account: "zhangsan", Password: "secret123", WechatID: "a!"}, i18n.KeyInvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			se := asServiceError(t, err)
			assert.Equal(t, tc.wantKey, se.Key)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{Account: "zhangsan", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "zhangsan", "wrongpass")
	se := asServiceError(t, err)
	assert.Equal(t, i18n.KeyUserInvalidCredentials, se.Key)

	// An unknown account answers with the same error, not a lookup failure.
	_, err = svc.Login(context.Background(), "nobody", "secret123")
	se = asServiceError(t, err)
	assert.Equal(t, i18n.KeyUserInvalidCredentials, se.Key)
}
