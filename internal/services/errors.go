// internal/services/errors.go

// Package services holds the business logic behind the REST surface. Every
// service takes a *gorm.DB and returns either data or a *ServiceError whose
// message is resolved per request language by the handler layer.
package services

import (
	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

// ServiceError is a business failure. Code is the envelope code, Key the
// i18n message key.
type ServiceError struct {
	Code int
	Key  string
	Args []interface{}
}

func (e *ServiceError) Error() string {
	return e.Key
}

// Message resolves the localized user-facing text.
func (e *ServiceError) Message(lang string) string {
	return i18n.T(lang, e.Key, e.Args...)
}

func invalidParams(key string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: models.CodeInvalidParams, Key: key, Args: args}
}

func forbidden(key string) *ServiceError {
	return &ServiceError{Code: models.CodeForbidden, Key: key}
}
