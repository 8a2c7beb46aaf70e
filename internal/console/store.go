// internal/console/store.go
package console

import (
	"strings"
	"sync"
	"time"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
)

const (
	minuteLayout = "2006-01-02 15:04"
	dateLayout   = "2006-01-02"
)

// DataStore is the in-memory dataset behind the admin console. Id sequences
// are owned by the store instance and reset on construction, so parallel
// stores (and tests) never contaminate each other.
type DataStore struct {
	mu  sync.Mutex
	now func() time.Time

	products       []*Product
	pendingReviews []*PendingReview
	users          []*User
	categories     []*Category
	tags           []*Tag
	saleTrend      []TrendPoint
	announcements  []*Announcement
	applications   []*Application

	nextProductID      int64
	nextReviewID       int64
	nextUserID         int64
	nextCategoryID     int64
	nextTagID          int64
	nextAnnouncementID int64
	nextApplicationID  int64
}

// NewDataStore builds a store preloaded with the demo dataset.
func NewDataStore() *DataStore {
	return &DataStore{
		now:                time.Now,
		products:           seedProducts(),
		pendingReviews:     seedPendingReviews(),
		users:              seedUsers(),
		categories:         seedCategories(),
		tags:               seedTags(),
		saleTrend:          seedSaleTrend(),
		nextProductID:      105,
		nextReviewID:       4,
		nextUserID:         5,
		nextCategoryID:     4,
		nextTagID:          105,
		nextAnnouncementID: 1,
		nextApplicationID:  1,
	}
}

// ---- snapshots and derived lookups ----

func (s *DataStore) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = *p
	}
	return out
}

func (s *DataStore) PendingReviews() []PendingReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PendingReview, len(s.pendingReviews))
	for i, r := range s.pendingReviews {
		out[i] = *r
	}
	return out
}

func (s *DataStore) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, len(s.users))
	for i, u := range s.users {
		out[i] = *u
	}
	return out
}

func (s *DataStore) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Category, len(s.categories))
	for i, c := range s.categories {
		out[i] = *c
	}
	return out
}

func (s *DataStore) Tags() []Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Tag, len(s.tags))
	for i, t := range s.tags {
		out[i] = *t
	}
	return out
}

func (s *DataStore) Announcements() []Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Announcement, len(s.announcements))
	for i, a := range s.announcements {
		out[i] = *a
	}
	return out
}

func (s *DataStore) Applications() []Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Application, len(s.applications))
	for i, a := range s.applications {
		out[i] = *a
	}
	return out
}

func (s *DataStore) SaleTrend() []TrendPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TrendPoint, len(s.saleTrend))
	copy(out, s.saleTrend)
	return out
}

// CategoryByID returns an id → category lookup.
func (s *DataStore) CategoryByID() map[int64]Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := make(map[int64]Category, len(s.categories))
	for _, c := range s.categories {
		m[c.ID] = *c
	}
	return m
}

// ProductByID returns an id → product lookup.
func (s *DataStore) ProductByID() map[int64]Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := make(map[int64]Product, len(s.products))
	for _, p := range s.products {
		m[p.ID] = *p
	}
	return m
}

// ProductCountsByCategory counts products per category. Categories with no
// products are present with a zero count.
func (s *DataStore) ProductCountsByCategory() map[int64]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int64]int, len(s.categories))
	for _, c := range s.categories {
		counts[c.ID] = 0
	}
	for _, p := range s.products {
		counts[p.CategoryID]++
	}
	return counts
}

// DashboardStats is a point-in-time summary for the console landing page.
type DashboardStats struct {
	TotalProducts       int `json:"totalProducts"`
	PendingReviews      int `json:"pendingReviews"`
	ForSale             int `json:"forSale"`
	Sold                int `json:"sold"`
	Delisted            int `json:"delisted"`
	TotalUsers          int `json:"totalUsers"`
	BannedUsers         int `json:"bannedUsers"`
	PendingApplications int `json:"pendingApplications"`
}

func (s *DataStore) Dashboard() DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := DashboardStats{
		TotalProducts:  len(s.products),
		PendingReviews: len(s.pendingReviews),
		TotalUsers:     len(s.users),
	}
	for _, p := range s.products {
		switch p.Status {
		case StatusForSale:
			stats.ForSale++
		case StatusSold:
			stats.Sold++
		case StatusDelisted:
			stats.Delisted++
		}
	}
	for _, u := range s.users {
		if u.Status == UserBanned {
			stats.BannedUsers++
		}
	}
	for _, a := range s.applications {
		if a.Status == ApplicationPending {
			stats.PendingApplications++
		}
	}
	return stats
}

// ---- review queue ----

// ApprovePendingReview removes the review row, puts the linked product on
// sale with a fresh publish time, and bumps the newest trend point. Returns
// false when the review id is unknown.
func (s *DataStore) ApprovePendingReview(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	review := s.takeReview(id)
	if review == nil {
		return false
	}
	if p := s.productLocked(review.ProductID); p != nil {
		p.Status = StatusForSale
		p.PublishedAt = s.now().Format(minuteLayout)
	}
	if n := len(s.saleTrend); n > 0 {
		s.saleTrend[n-1].Value++
	}
	return true
}

// RejectPendingReview removes the review row and delists the linked product.
func (s *DataStore) RejectPendingReview(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	review := s.takeReview(id)
	if review == nil {
		return false
	}
	if p := s.productLocked(review.ProductID); p != nil {
		p.Status = StatusDelisted
	}
	return true
}

func (s *DataStore) takeReview(id int64) *PendingReview {
	for i, r := range s.pendingReviews {
		if r.ID == id {
			s.pendingReviews = append(s.pendingReviews[:i], s.pendingReviews[i+1:]...)
			return r
		}
	}
	return nil
}

func (s *DataStore) productLocked(id int64) *Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *DataStore) userByAccountLocked(account string) *User {
	for _, u := range s.users {
		if u.Account == account {
			return u
		}
	}
	return nil
}

func (s *DataStore) userByIDLocked(id int64) *User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// ---- products ----

type CreateProductInput struct {
	Title      string
	CategoryID int64
	Price      float64
	Seller     string
	Wechat     string
}

// CreateProduct appends a pending product together with its review-queue row.
func (s *DataStore) CreateProduct(in CreateProductInput) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Product{
		ID:          s.nextProductID,
		Title:       in.Title,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Seller:      in.Seller,
		Wechat:      in.Wechat,
		Status:      StatusPending,
		PublishedAt: s.now().Format(minuteLayout),
	}
	s.nextProductID++
	s.products = append([]*Product{p}, s.products...)

	r := &PendingReview{
		ID:          s.nextReviewID,
		ProductID:   p.ID,
		Title:       p.Title,
		Seller:      p.Seller,
		SubmittedAt: p.PublishedAt,
	}
	s.nextReviewID++
	s.pendingReviews = append([]*PendingReview{r}, s.pendingReviews...)

	return *p
}

func (s *DataStore) ToggleProductStatus(productID int64, status ProductStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.productLocked(productID)
	if p == nil {
		return false
	}
	p.Status = status
	return true
}

// ---- announcements ----

func (s *DataStore) AddAnnouncement(content string) Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &Announcement{
		ID:        s.nextAnnouncementID,
		Content:   content,
		CreatedAt: s.now().Format(minuteLayout),
	}
	s.nextAnnouncementID++
	s.announcements = append([]*Announcement{a}, s.announcements...)
	return *a
}

// ---- user management ----

// PromoteToAdmin makes the user an active admin, optionally renaming them.
func (s *DataStore) PromoteToAdmin(userID int64, nickname string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promoteLocked(userID, nickname)
}

func (s *DataStore) promoteLocked(userID int64, nickname string) bool {
	u := s.userByIDLocked(userID)
	if u == nil {
		return false
	}
	u.Role = RoleAdmin
	if nickname != "" {
		u.Nickname = nickname
	}
	u.Status = UserActive
	return true
}

func (s *DataStore) UpdateUserNickname(userID int64, nickname string) bool {
	trimmed := strings.TrimSpace(nickname)
	if trimmed == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByIDLocked(userID)
	if u == nil {
		return false
	}
	u.Nickname = trimmed
	return true
}

type AccountInput struct {
	Account  string
	Nickname string
	Wechat   string
}

// CreateAdminAccount prepends a fresh active admin user.
func (s *DataStore) CreateAdminAccount(in AccountInput) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{
		ID:           s.nextUserID,
		Account:      in.Account,
		Nickname:     in.Nickname,
		Role:         RoleAdmin,
		Status:       UserActive,
		Wechat:       in.Wechat,
		RegisteredAt: s.now().Format(dateLayout),
		LastLogin:    lastLoginNever,
	}
	s.nextUserID++
	s.users = append([]*User{u}, s.users...)
	return *u
}

// AddViewerAccount provisions a plain account if the account name is free.
func (s *DataStore) AddViewerAccount(account, nickname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addViewerLocked(account, nickname)
}

func (s *DataStore) addViewerLocked(account, nickname string) {
	if s.userByAccountLocked(account) != nil {
		return
	}
	u := &User{
		ID:           s.nextUserID,
		Account:      account,
		Nickname:     nickname,
		Role:         RoleUser,
		Status:       UserActive,
		RegisteredAt: s.now().Format(dateLayout),
		LastLogin:    lastLoginNever,
	}
	s.nextUserID++
	s.users = append([]*User{u}, s.users...)
}

// ToggleUserBan flips a user between banned and active.
func (s *DataStore) ToggleUserBan(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByIDLocked(userID)
	if u == nil {
		return false
	}
	if u.Status == UserBanned {
		u.Status = UserActive
	} else {
		u.Status = UserBanned
	}
	return true
}

// ---- admin-role applications ----

type ApplicationInput struct {
	Account  string
	Nickname string
	Reason   string
}

// SubmitApplication files an admin-role request. An applicant without an
// account gets a viewer account provisioned on the spot; duplicate pending
// requests and empty reasons are rejected.
func (s *DataStore) SubmitApplication(in ApplicationInput) Result {
	account := strings.TrimSpace(in.Account)
	nickname := strings.TrimSpace(in.Nickname)
	if nickname == "" {
		nickname = account
	}
	reason := strings.TrimSpace(in.Reason)

	if account == "" {
		return failure(i18n.KeyApplicationMissingAccount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u := s.userByAccountLocked(account); u != nil && u.Role == RoleAdmin {
		return failure(i18n.KeyApplicationAlreadyAdmin)
	}
	for _, a := range s.applications {
		if a.Account == account && a.Status == ApplicationPending {
			return failure(i18n.KeyApplicationDuplicatePending)
		}
	}
	if reason == "" {
		return failure(i18n.KeyApplicationReasonRequired)
	}

	if s.userByAccountLocked(account) == nil {
		s.addViewerLocked(account, nickname)
	}

	a := &Application{
		ID:        s.nextApplicationID,
		Account:   account,
		Nickname:  nickname,
		Reason:    reason,
		Status:    ApplicationPending,
		CreatedAt: s.now().Format(minuteLayout),
	}
	s.nextApplicationID++
	s.applications = append([]*Application{a}, s.applications...)

	return success(i18n.KeyApplicationSubmitted)
}

// ApproveApplication promotes the applicant and closes the request. Only a
// pending application can be approved.
func (s *DataStore) ApproveApplication(id int64, reviewer string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.applicationLocked(id)
	if app == nil {
		return failure(i18n.KeyApplicationNotFound)
	}
	if app.Status != ApplicationPending {
		return failure(i18n.KeyApplicationProcessed)
	}

	target := s.userByAccountLocked(app.Account)
	if target == nil {
		s.addViewerLocked(app.Account, app.Nickname)
		target = s.userByAccountLocked(app.Account)
	}
	if target == nil {
		return failure(i18n.KeyApplicationApplicantMissing)
	}
	if !s.promoteLocked(target.ID, app.Nickname) {
		return failure(i18n.KeyApplicationPromoteFailed)
	}

	app.Status = ApplicationApproved
	app.ProcessedAt = s.now().Format(minuteLayout)
	app.Reviewer = reviewer
	app.Feedback = i18n.T(i18n.LangZH, i18n.KeyApplicationApprovedNote)

	return success(i18n.KeyApplicationApproved)
}

// RejectApplication closes a pending request with mandatory feedback.
func (s *DataStore) RejectApplication(id int64, reviewer, feedback string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.applicationLocked(id)
	if app == nil {
		return failure(i18n.KeyApplicationNotFound)
	}
	if app.Status != ApplicationPending {
		return failure(i18n.KeyApplicationProcessed)
	}

	note := strings.TrimSpace(feedback)
	if note == "" {
		return failure(i18n.KeyApplicationFeedbackRequired)
	}

	app.Status = ApplicationRejected
	app.ProcessedAt = s.now().Format(minuteLayout)
	app.Reviewer = reviewer
	app.Feedback = note

	return success(i18n.KeyApplicationRejected)
}

func (s *DataStore) applicationLocked(id int64) *Application {
	for _, a := range s.applications {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// ---- categories and tags ----

type CategoryInput struct {
	Name        string
	Description string
}

func (s *DataStore) AddCategory(in CategoryInput) Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Category{ID: s.nextCategoryID, Name: in.Name, Description: in.Description}
	s.nextCategoryID++
	s.categories = append(s.categories, c)
	return *c
}

func (s *DataStore) UpdateCategory(id int64, in CategoryInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.ID == id {
			c.Name = in.Name
			c.Description = in.Description
			return true
		}
	}
	return false
}

// RemoveCategory deletes a category unless any product still references it.
func (s *DataStore) RemoveCategory(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.CategoryID == id {
			return false
		}
	}
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return true
		}
	}
	return false
}

type TagInput struct {
	Name        string
	Description string
}

func (s *DataStore) AddTag(in TagInput) Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Tag{ID: s.nextTagID, Name: in.Name, Description: in.Description, Usage: 0}
	s.nextTagID++
	s.tags = append(s.tags, t)
	return *t
}

func (s *DataStore) UpdateTag(id int64, in TagInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.ID == id {
			t.Name = in.Name
			t.Description = in.Description
			return true
		}
	}
	return false
}

func (s *DataStore) RemoveTag(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tags {
		if t.ID == id {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return true
		}
	}
	return false
}
