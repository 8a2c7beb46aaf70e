// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yycy134679/school-secondhand-trading-system/internal/config"
	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

const (
	minPasswordLength   = 6
	nicknameChangeDays  = 30
	defaultNicknamePref = "用户"
)

var (
	accountPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	wechatPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{4,64}$`)
)

type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

type RegisterRequest struct {
	Account  string `json:"account" binding:"required" validate:"required,account"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
	Nickname string `json:"nickname" validate:"omitempty,max=50"`
	WechatID string `json:"wechatId"`
}

type UpdateProfileRequest struct {
	Nickname  string  `json:"nickname"`
	AvatarURL string  `json:"avatarUrl"`
	WechatID  *string `json:"wechatId"`
}

func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.LoginResponse, error) {
	account := strings.TrimSpace(req.Account)
	if !accountPattern.MatchString(account) {
		return nil, invalidParams(i18n.KeyInvalidParams)
	}
	if len([]rune(req.Password)) < minPasswordLength {
		return nil, invalidParams(i18n.KeySessionPasswordTooShort)
	}
	if req.WechatID != "" && !wechatPattern.MatchString(req.WechatID) {
		return nil, invalidParams(i18n.KeyInvalidParams)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("account = ?", account).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, invalidParams(i18n.KeyUserAccountExists)
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = defaultNicknamePref + account
	}

	user := models.User{
		Account:  account,
		Nickname: nickname,
		WechatID: req.WechatID,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return s.issueToken(&user)
}

func (s *UserService) Login(ctx context.Context, account, password string) (*models.LoginResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("account = ?", strings.TrimSpace(account)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidParams(i18n.KeyUserInvalidCredentials)
		}
		return nil, err
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, invalidParams(i18n.KeyUserInvalidCredentials)
	}

	return s.issueToken(&user)
}

func (s *UserService) issueToken(user *models.User) (*models.LoginResponse, error) {
	token, err := utils.GenerateJWT(user.ID, user.Account, user.IsAdmin, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidParams(i18n.KeyUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies profile changes. A nickname change is allowed once
// every 30 days.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname != "" && nickname != user.Nickname {
		if user.LastNicknameChangedAt != nil && !user.LastNicknameChangedAt.IsZero() {
			thirtyDaysAgo := time.Now().AddDate(0, 0, -nicknameChangeDays)
			if !user.LastNicknameChangedAt.Before(thirtyDaysAgo) {
				return nil, invalidParams(i18n.KeyUserNicknameLimit)
			}
		}
		now := time.Now()
		user.LastNicknameChangedAt = &now
		user.Nickname = nickname
	}

	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if req.WechatID != nil {
		if *req.WechatID != "" && !wechatPattern.MatchString(*req.WechatID) {
			return nil, invalidParams(i18n.KeyInvalidParams)
		}
		user.WechatID = *req.WechatID
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.CheckPassword(oldPassword); err != nil {
		return invalidParams(i18n.KeyUserOldPasswordWrong)
	}
	if len([]rune(newPassword)) < minPasswordLength {
		return invalidParams(i18n.KeySessionPasswordTooShort)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(user).Update("password_hash", user.PasswordHash).Error
}
