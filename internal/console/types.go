// internal/console/types.go

// Package console implements the admin-console state stores: an in-memory
// moderation dataset (products, review queue, users, dictionaries, admin-role
// applications) and a demo session store persisted through a storage slot.
// All mutations happen under the store lock; operations either report
// not-found/validation failure or apply a single mutation, so there is no
// partial state to roll back.
package console

import "github.com/yycy134679/school-secondhand-trading-system/internal/i18n"

type ProductStatus string

const (
	StatusPending  ProductStatus = "pending"
	StatusForSale  ProductStatus = "for-sale"
	StatusSold     ProductStatus = "sold"
	StatusDelisted ProductStatus = "delisted"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBanned  UserStatus = "banned"
	UserPending UserStatus = "pending"
)

// Product is a moderated listing as the console sees it. Products are never
// physically deleted; review decisions and seller actions only move Status.
type Product struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	CategoryID  int64         `json:"categoryId"`
	Price       float64       `json:"price"`
	Seller      string        `json:"seller"`
	Wechat      string        `json:"wechat"`
	Status      ProductStatus `json:"status"`
	PublishedAt string        `json:"publishedAt"`
}

// PendingReview is a row in the moderation queue. It exists exactly while the
// linked product is pending.
type PendingReview struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	Title       string `json:"title"`
	Seller      string `json:"seller"`
	SubmittedAt string `json:"submittedAt"`
}

type User struct {
	ID           int64      `json:"id"`
	Account      string     `json:"account"`
	Nickname     string     `json:"nickname"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	Wechat       string     `json:"wechat,omitempty"`
	RegisteredAt string     `json:"registeredAt"`
	LastLogin    string     `json:"lastLogin"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       int    `json:"usage"`
}

type Announcement struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// TrendPoint is one point of the dashboard sale-trend chart.
type TrendPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a self-service request for admin rights. pending is the only
// non-terminal state.
type Application struct {
	ID          int64             `json:"id"`
	Account     string            `json:"account"`
	Nickname    string            `json:"nickname"`
	Reason      string            `json:"reason"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   string            `json:"createdAt"`
	ProcessedAt string            `json:"processedAt,omitempty"`
	Reviewer    string            `json:"reviewer,omitempty"`
	Feedback    string            `json:"feedback,omitempty"`
}

// Result is the outcome of a workflow operation. Reason is an i18n key so the
// business layer stays language-independent; callers resolve the user-facing
// string with Message.
type Result struct {
	OK     bool
	Reason string
	Args   []interface{}
}

func (r Result) Message(lang string) string {
	if r.Reason == "" {
		return ""
	}
	return i18n.T(lang, r.Reason, r.Args...)
}

func failure(reason string, args ...interface{}) Result {
	return Result{OK: false, Reason: reason, Args: args}
}

func success(reason string, args ...interface{}) Result {
	return Result{OK: true, Reason: reason, Args: args}
}
