// internal/console/auth.go
package console

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/storage"
)

// SessionKey is the storage slot holding the serialized session blob.
const SessionKey = "admin-auth-state"

const defaultAdminPassword = "123456"

type AuthRole string

const (
	AuthAdmin  AuthRole = "admin"
	AuthViewer AuthRole = "viewer"
)

// DemoAccount is an entry of the console's demo account directory.
type DemoAccount struct {
	Account  string   `json:"account"`
	Password string   `json:"password"`
	Nickname string   `json:"nickname"`
	Role     AuthRole `json:"role"`
}

// Identity is the authenticated session identity.
type Identity struct {
	Account  string   `json:"account"`
	Nickname string   `json:"nickname"`
	Role     AuthRole `json:"role"`
}

// storedState is the persisted shape of the session blob.
type storedState struct {
	Account         *string       `json:"account"`
	Nickname        *string       `json:"nickname"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	Role            *AuthRole     `json:"role"`
	Accounts        []DemoAccount `json:"accounts,omitempty"`
}

func defaultAccounts() []DemoAccount {
	return []DemoAccount{
		{Account: "admin", Password: "admin123", Nickname: "超级管理员", Role: AuthAdmin},
		{Account: "manager", Password: "manager123", Nickname: "运营经理", Role: AuthAdmin},
	}
}

// AuthStore holds the console session and its demo account directory. Every
// mutation is written back to the storage slot; construction restores the
// previous session with a guarded parse that clears a malformed blob.
type AuthStore struct {
	mu            sync.Mutex
	slot          storage.Store
	authenticated bool
	current       *Identity
	accounts      []DemoAccount
}

func NewAuthStore(slot storage.Store) *AuthStore {
	s := &AuthStore{
		slot:     slot,
		accounts: defaultAccounts(),
	}
	s.restore()
	return s
}

func (s *AuthStore) restore() {
	raw, ok := s.slot.Get(SessionKey)
	if !ok {
		return
	}

	var parsed storedState
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		logrus.WithError(err).Warn("failed to restore console session, clearing slot")
		_ = s.slot.Remove(SessionKey)
		return
	}

	if len(parsed.Accounts) > 0 {
		s.accounts = parsed.Accounts
	}
	if parsed.IsAuthenticated && parsed.Account != nil {
		nickname := *parsed.Account
		if parsed.Nickname != nil {
			nickname = *parsed.Nickname
		}
		role := AuthViewer
		if parsed.Role != nil {
			role = *parsed.Role
		} else {
			for _, d := range defaultAccounts() {
				if d.Account == *parsed.Account {
					role = d.Role
					break
				}
			}
		}
		s.authenticated = true
		s.current = &Identity{Account: *parsed.Account, Nickname: nickname, Role: role}
	}
}

func (s *AuthStore) persistLocked() {
	state := storedState{
		IsAuthenticated: s.authenticated,
		Accounts:        s.accounts,
	}
	if s.current != nil {
		state.Account = &s.current.Account
		state.Nickname = &s.current.Nickname
		state.Role = &s.current.Role
	}

	data, err := json.Marshal(state)
	if err != nil {
		logrus.WithError(err).Error("failed to serialize console session")
		return
	}
	if err := s.slot.Set(SessionKey, string(data)); err != nil {
		logrus.WithError(err).Error("failed to persist console session")
	}
}

// ensureDefaultsLocked re-adds the built-in demo accounts if a restored
// directory lost them.
func (s *AuthStore) ensureDefaultsLocked() {
	mutated := false
	for _, d := range defaultAccounts() {
		found := false
		for _, existing := range s.accounts {
			if existing.Account == d.Account {
				found = true
				break
			}
		}
		if !found {
			s.accounts = append(s.accounts, d)
			mutated = true
		}
	}
	if mutated {
		s.persistLocked()
	}
}

func (s *AuthStore) accountIndexLocked(account string) int {
	for i, a := range s.accounts {
		if a.Account == account {
			return i
		}
	}
	return -1
}

// IsAuthenticated reports whether a session is active.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Current returns the active session identity, if any.
func (s *AuthStore) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// CanManage reports whether the current identity has admin rights.
func (s *AuthStore) CanManage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Role == AuthAdmin
}

// Accounts returns a snapshot of the demo directory.
func (s *AuthStore) Accounts() []DemoAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DemoAccount, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Login validates the trimmed credentials against the demo directory.
func (s *AuthStore) Login(account, password string) Result {
	account = strings.TrimSpace(account)
	password = strings.TrimSpace(password)

	if account == "" || password == "" {
		return failure(i18n.KeySessionEmptyCredentials)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDefaultsLocked()

	for _, a := range s.accounts {
		if a.Account == account && a.Password == password {
			s.authenticated = true
			s.current = &Identity{Account: a.Account, Nickname: a.Nickname, Role: a.Role}
			s.persistLocked()
			return Result{OK: true}
		}
	}
	return failure(i18n.KeySessionInvalidLogin)
}

func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.current = nil
	s.persistLocked()
}

// Register adds a viewer account and signs it in. Accounts are unique.
func (s *AuthStore) Register(account, password, nickname string) Result {
	account = strings.TrimSpace(account)
	password = strings.TrimSpace(password)
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = account
	}

	if account == "" || password == "" {
		return failure(i18n.KeySessionRegisterEmpty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDefaultsLocked()

	if s.accountIndexLocked(account) >= 0 {
		return failure(i18n.KeySessionAccountExists)
	}

	s.accounts = append(s.accounts, DemoAccount{
		Account:  account,
		Password: password,
		Nickname: nickname,
		Role:     AuthViewer,
	})
	s.authenticated = true
	s.current = &Identity{Account: account, Nickname: nickname, Role: AuthViewer}
	s.persistLocked()
	return Result{OK: true}
}

// AddAdminAccount upserts an admin entry: an existing account is promoted in
// place, a missing one is appended. Used by the application-approval flow.
func (s *AuthStore) AddAdminAccount(account, nickname, password string) {
	account = strings.TrimSpace(account)
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = account
	}
	password = strings.TrimSpace(password)
	if password == "" {
		password = defaultAdminPassword
	}
	if account == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDefaultsLocked()

	entry := DemoAccount{Account: account, Nickname: nickname, Password: password, Role: AuthAdmin}
	if i := s.accountIndexLocked(account); i >= 0 {
		s.accounts[i] = entry
	} else {
		s.accounts = append(s.accounts, entry)
	}

	if s.current != nil && s.current.Account == account {
		s.current = &Identity{Account: account, Nickname: nickname, Role: AuthAdmin}
		s.authenticated = true
	}
	s.persistLocked()
}

func (s *AuthStore) updatePasswordLocked(account, newPassword string) (string, bool) {
	i := s.accountIndexLocked(account)
	if i < 0 {
		return "", false
	}
	s.accounts[i].Password = newPassword

	updated := s.accounts[i]
	if s.current != nil && s.current.Account == account {
		s.current = &Identity{Account: updated.Account, Nickname: updated.Nickname, Role: updated.Role}
		s.authenticated = true
	}
	s.persistLocked()
	return updated.Nickname, true
}

// ChangeOwnPassword is the self-service flow: the old password must match and
// the new one must be at least 6 characters.
func (s *AuthStore) ChangeOwnPassword(oldPassword, newPassword string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return failure(i18n.KeySessionNotLoggedIn)
	}

	oldPassword = strings.TrimSpace(oldPassword)
	newPassword = strings.TrimSpace(newPassword)

	if oldPassword == "" || newPassword == "" {
		return failure(i18n.KeySessionPasswordEmpty)
	}
	if len([]rune(newPassword)) < 6 {
		return failure(i18n.KeySessionPasswordTooShort)
	}

	s.ensureDefaultsLocked()

	i := s.accountIndexLocked(s.current.Account)
	if i < 0 {
		return failure(i18n.KeySessionAccountMissing)
	}
	if s.accounts[i].Password != oldPassword {
		return failure(i18n.KeySessionOldPasswordWrong)
	}
	if _, ok := s.updatePasswordLocked(s.accounts[i].Account, newPassword); !ok {
		return failure(i18n.KeySessionChangeFailed)
	}
	return success(i18n.KeySessionChangeSuccess)
}

// ResetPassword sets a new password for any existing account (admin flow).
func (s *AuthStore) ResetPassword(account, newPassword string) Result {
	account = strings.TrimSpace(account)
	newPassword = strings.TrimSpace(newPassword)

	if account == "" || newPassword == "" {
		return failure(i18n.KeySessionResetEmpty)
	}
	if len([]rune(newPassword)) < 6 {
		return failure(i18n.KeySessionPasswordTooShort)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDefaultsLocked()

	if s.accountIndexLocked(account) < 0 {
		return failure(i18n.KeySessionAccountNotFound)
	}
	if _, ok := s.updatePasswordLocked(account, newPassword); !ok {
		return failure(i18n.KeySessionResetFailed)
	}
	return success(i18n.KeySessionResetSuccess, account)
}

// UpdateAccountNickname renames a directory entry (and the live session when
// it is the same account).
func (s *AuthStore) UpdateAccountNickname(account, nickname string) bool {
	account = strings.TrimSpace(account)
	nickname = strings.TrimSpace(nickname)
	if account == "" || nickname == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDefaultsLocked()

	i := s.accountIndexLocked(account)
	if i < 0 {
		return false
	}
	s.accounts[i].Nickname = nickname

	if s.current != nil && s.current.Account == account {
		updated := s.accounts[i]
		s.current = &Identity{Account: updated.Account, Nickname: updated.Nickname, Role: updated.Role}
		s.authenticated = true
	}
	s.persistLocked()
	return true
}
