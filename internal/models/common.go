// internal/models/common.go
package models

// Business status codes carried in the response envelope. Every HTTP response
// is 200; success/failure is signalled by the envelope code alone.
const (
	CodeSuccess         = 0
	CodeInvalidParams   = 1001
	CodeUnauthenticated = 1002
	CodeForbidden       = 1003
	CodeThrottled       = 1004
	CodeInternal        = 1009
)

// Envelope is the `{code, message, data}` wrapper used by every backend response.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// PageResult is the shared pagination wrapper.
type PageResult[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func EmptyPage[T any](page, pageSize int) PageResult[T] {
	return PageResult[T]{Items: []T{}, Page: page, PageSize: pageSize}
}
