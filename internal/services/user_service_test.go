// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountPattern(t *testing.T) {
	valid := []string{"abc", "user_01", "A1b2C3", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	for _, v := range valid {
		assert.True(t, accountPattern.MatchString(v), v)
	}

	invalid := []string{"", "ab", "带中文", "has space", "dash-name", "a@b"}
	for _, v := range invalid {
		assert.False(t, accountPattern.MatchString(v), v)
	}
}

func TestWechatPattern(t *testing.T) {
	assert.True(t, wechatPattern.MatchString("wx_id-01"))
	assert.True(t, wechatPattern.MatchString("abcd"))
	assert.False(t, wechatPattern.MatchString("abc"))
	assert.False(t, wechatPattern.MatchString("微信号"))
}
