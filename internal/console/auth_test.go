// internal/console/auth_test.go
package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/storage"
)

func newAuthStore(t *testing.T) (*AuthStore, storage.Store) {
	t.Helper()
	slot := storage.NewMemoryStore()
	return NewAuthStore(slot), slot
}

func TestLoginSuccess(t *testing.T) {
	s, slot := newAuthStore(t)

	res := s.Login("admin", "admin123")
	require.True(t, res.OK)
	assert.True(t, s.IsAuthenticated())

	identity, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "超级管理员", identity.Nickname)
	assert.Equal(t, AuthAdmin, identity.Role)
	assert.True(t, s.CanManage())

	_, persisted := slot.Get(SessionKey)
	assert.True(t, persisted)
}

func TestLoginFailure(t *testing.T) {
	s, _ := newAuthStore(t)

	res := s.Login("admin", "wrong")
	assert.False(t, res.OK)
	assert.Equal(t, "账号或密码错误。", res.Message(i18n.LangZH))
	assert.False(t, s.IsAuthenticated())

	res = s.Login("", "")
	assert.False(t, res.OK)
	assert.Equal(t, i18n.KeySessionEmptyCredentials, res.Reason)
}

func TestLoginTrimsInput(t *testing.T) {
	s, _ := newAuthStore(t)
	assert.True(t, s.Login("  manager  ", "  manager123  ").OK)
}

func TestLogout(t *testing.T) {
	s, _ := newAuthStore(t)
	require.True(t, s.Login("admin", "admin123").OK)

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	s, _ := newAuthStore(t)

	res := s.Register("carol", "secret77", "")
	require.True(t, res.OK)
	assert.True(t, s.IsAuthenticated())

	identity, _ := s.Current()
	assert.Equal(t, "carol", identity.Nickname) // nickname defaults to account
	assert.Equal(t, AuthViewer, identity.Role)
	assert.False(t, s.CanManage())

	dup := s.Register("carol", "other", "Carol")
	assert.False(t, dup.OK)
	assert.Equal(t, i18n.KeySessionAccountExists, dup.Reason)

	empty := s.Register("", "", "")
	assert.Equal(t, i18n.KeySessionRegisterEmpty, empty.Reason)
}

func TestSessionRestoredFromSlot(t *testing.T) {
	slot := storage.NewMemoryStore()
	first := NewAuthStore(slot)
	require.True(t, first.Register("dora", "secret77", "Dora").OK)

	second := NewAuthStore(slot)
	assert.True(t, second.IsAuthenticated())
	identity, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "dora", identity.Account)

	// The registered account survives too: a fresh login works.
	second.Logout()
	assert.True(t, second.Login("dora", "secret77").OK)
}

func TestCorruptSessionBlobIsCleared(t *testing.T) {
	slot := storage.NewMemoryStore()
	require.NoError(t, slot.Set(SessionKey, "{definitely not json"))

	s := NewAuthStore(slot)
	assert.False(t, s.IsAuthenticated())

	_, stillThere := slot.Get(SessionKey)
	assert.False(t, stillThere)

	// Defaults are intact after the reset.
	assert.True(t, s.Login("admin", "admin123").OK)
}

func TestChangeOwnPassword(t *testing.T) {
	s, _ := newAuthStore(t)

	res := s.ChangeOwnPassword("admin123", "admin456")
	assert.Equal(t, i18n.KeySessionNotLoggedIn, res.Reason)

	require.True(t, s.Login("admin", "admin123").OK)

	res = s.ChangeOwnPassword("nope", "admin456")
	assert.Equal(t, i18n.KeySessionOldPasswordWrong, res.Reason)

	res = s.ChangeOwnPassword("admin123", "123")
	assert.Equal(t, i18n.KeySessionPasswordTooShort, res.Reason)

	res = s.ChangeOwnPassword("", "")
	assert.Equal(t, i18n.KeySessionPasswordEmpty, res.Reason)

	res = s.ChangeOwnPassword("admin123", "admin456")
	require.True(t, res.OK)
	assert.Equal(t, "密码修改成功。", res.Message(i18n.LangZH))

	s.Logout()
	assert.False(t, s.Login("admin", "admin123").OK)
	assert.True(t, s.Login("admin", "admin456").OK)
}

func TestResetPassword(t *testing.T) {
	s, _ := newAuthStore(t)

	// Too-short new password leaves the stored password untouched.
	res := s.ResetPassword("manager", "short")
	assert.Equal(t, i18n.KeySessionPasswordTooShort, res.Reason)
	assert.True(t, s.Login("manager", "manager123").OK)
	s.Logout()

	res = s.ResetPassword("nobody", "longenough")
	assert.Equal(t, i18n.KeySessionAccountNotFound, res.Reason)

	res = s.ResetPassword("manager", "fresh-pass-9")
	require.True(t, res.OK)
	assert.Equal(t, "已为账号 manager 设置新密码。", res.Message(i18n.LangZH))
	assert.True(t, s.Login("manager", "fresh-pass-9").OK)
}

func TestAddAdminAccountUpsert(t *testing.T) {
	s, _ := newAuthStore(t)
	require.True(t, s.Register("frank", "viewerpass", "Frank").OK)

	// Promote the existing viewer in place.
	s.AddAdminAccount("frank", "Frank F", "")
	identity, _ := s.Current()
	assert.Equal(t, AuthAdmin, identity.Role)
	assert.Equal(t, "Frank F", identity.Nickname)

	// Upsert replaced the password with the default.
	s.Logout()
	assert.True(t, s.Login("frank", defaultAdminPassword).OK)
	s.Logout()

	// A brand-new account is appended.
	s.AddAdminAccount("grace", "Grace", "gracepw99")
	assert.True(t, s.Login("grace", "gracepw99").OK)

	// Calling it again with the same data stays stable.
	before := len(s.Accounts())
	s.AddAdminAccount("grace", "Grace", "gracepw99")
	assert.Len(t, s.Accounts(), before)
}

func TestUpdateAccountNickname(t *testing.T) {
	s, _ := newAuthStore(t)
	require.True(t, s.Login("admin", "admin123").OK)

	assert.False(t, s.UpdateAccountNickname("admin", "  "))
	assert.False(t, s.UpdateAccountNickname("missing", "新昵称"))

	assert.True(t, s.UpdateAccountNickname("admin", "平台管理员"))
	identity, _ := s.Current()
	assert.Equal(t, "平台管理员", identity.Nickname)
}
