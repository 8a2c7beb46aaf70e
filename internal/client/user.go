// internal/client/user.go
package client

import (
	"context"
	"net/url"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	WechatID string `json:"wechatId,omitempty"`
}

type credentials struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// UpdateProfileInput carries only the fields being changed.
type UpdateProfileInput struct {
	Nickname  *string `json:"nickname,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	WechatID  *string `json:"wechatId,omitempty"`
}

type passwordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register creates an account and stores the returned token, signing the
// caller in.
func (c *Client) Register(ctx context.Context, in RegisterInput) (models.LoginResponse, error) {
	res, err := post[models.LoginResponse](ctx, c, "/users/register", in)
	if err != nil {
		return res, err
	}
	if err := c.SetToken(res.Token); err != nil {
		return res, err
	}
	return res, nil
}

func (c *Client) Login(ctx context.Context, account, password string) (models.LoginResponse, error) {
	res, err := post[models.LoginResponse](ctx, c, "/users/login", credentials{Account: account, Password: password})
	if err != nil {
		return res, err
	}
	if err := c.SetToken(res.Token); err != nil {
		return res, err
	}
	return res, nil
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	return get[models.User](ctx, c, "/users/profile", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (models.User, error) {
	return put[models.User](ctx, c, "/users/profile", in)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := put[struct{}](ctx, c, "/users/password", passwordChange{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	return err
}

// RecentViews lists the products the caller opened most recently.
func (c *Client) RecentViews(ctx context.Context, page, pageSize int) (models.PageResult[models.ViewedProduct], error) {
	q := url.Values{}
	setPage(q, page, pageSize)
	return get[models.PageResult[models.ViewedProduct]](ctx, c, "/users/recent-views", q)
}
