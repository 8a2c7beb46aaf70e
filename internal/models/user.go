// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID                    int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Account               string     `json:"account" gorm:"size:50;uniqueIndex;not null"`
	Nickname              string     `json:"nickname" gorm:"size:50;not null"`
	PasswordHash          string     `json:"-" gorm:"size:100;not null"`
	AvatarURL             string     `json:"avatarUrl,omitempty" gorm:"size:255"`
	WechatID              string     `json:"wechatId,omitempty" gorm:"size:64"`
	IsAdmin               bool       `json:"isAdmin" gorm:"default:false"`
	LastNicknameChangedAt *time.Time `json:"lastNicknameChangedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// LoginResponse is returned by both register and login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
