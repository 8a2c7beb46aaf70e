// internal/client/product.go
package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

// UploadImage is one image attached to a new listing.
type UploadImage struct {
	FileName string
	Reader   io.Reader
}

// CreateProductInput is sent as multipart form data, images included.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	CategoryID  int64
	ConditionID int64
	TagIDs      []int64
	Images      []UploadImage
}

// UpdateProductInput carries only the fields being changed.
type UpdateProductInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *int64   `json:"categoryId,omitempty"`
	ConditionID *int64   `json:"conditionId,omitempty"`
	TagIDs      []int64  `json:"-"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

type statusChange struct {
	Action models.StatusAction `json:"action"`
}

// ViewRecorded is the acknowledgement of a recorded product view.
type ViewRecorded struct {
	Recorded bool `json:"recorded"`
}

func (c *Client) CreateProduct(ctx context.Context, in CreateProductInput) (models.Product, error) {
	var env models.Envelope[models.Product]
	req := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetMultipartFormData(map[string]string{
			"title":       in.Title,
			"description": in.Description,
			"price":       strconv.FormatFloat(in.Price, 'f', -1, 64),
			"categoryId":  strconv.FormatInt(in.CategoryID, 10),
			"conditionId": strconv.FormatInt(in.ConditionID, 10),
			"tagIds":      joinIDs(in.TagIDs),
		})
	for _, img := range in.Images {
		req.SetFileReader("images", img.FileName, img.Reader)
	}
	resp, err := req.Post("/products")
	return decode(c, &env, resp, err)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) (models.Product, error) {
	// The backend takes tag ids as a comma-separated string.
	body := map[string]interface{}{}
	if in.Title != nil {
		body["title"] = *in.Title
	}
	if in.Description != nil {
		body["description"] = *in.Description
	}
	if in.Price != nil {
		body["price"] = *in.Price
	}
	if in.CategoryID != nil {
		body["categoryId"] = *in.CategoryID
	}
	if in.ConditionID != nil {
		body["conditionId"] = *in.ConditionID
	}
	if len(in.TagIDs) > 0 {
		body["tagIds"] = joinIDs(in.TagIDs)
	}
	if len(in.ImageURLs) > 0 {
		body["imageUrls"] = in.ImageURLs
	}
	return put[models.Product](ctx, c, fmt.Sprintf("/products/%d", id), body)
}

func (c *Client) ChangeProductStatus(ctx context.Context, id int64, action models.StatusAction) (models.Product, error) {
	return post[models.Product](ctx, c, fmt.Sprintf("/products/%d/status", id), statusChange{Action: action})
}

// UndoStatusChange reverts the most recent status change within the undo
// window.
func (c *Client) UndoStatusChange(ctx context.Context, id int64) (models.Product, error) {
	return post[models.Product](ctx, c, fmt.Sprintf("/products/%d/status/undo", id), nil)
}

func (c *Client) ProductDetail(ctx context.Context, id int64) (models.ProductDetail, error) {
	return get[models.ProductDetail](ctx, c, fmt.Sprintf("/products/%d", id), nil)
}

func (c *Client) RecordProductView(ctx context.Context, id int64) (ViewRecorded, error) {
	return post[ViewRecorded](ctx, c, fmt.Sprintf("/products/%d/view", id), nil)
}

func (c *Client) ProductContact(ctx context.Context, id int64) (models.ContactInfo, error) {
	return get[models.ContactInfo](ctx, c, fmt.Sprintf("/products/%d/contact", id), nil)
}

// MyProducts lists the caller's own listings.
func (c *Client) MyProducts(ctx context.Context, keyword string, page, pageSize int) (models.PageResult[models.Product], error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	setPage(q, page, pageSize)
	return get[models.PageResult[models.Product]](ctx, c, "/products/my", q)
}

func (c *Client) SearchProducts(ctx context.Context, params models.SearchParams) (models.PageResult[models.Product], error) {
	return get[models.PageResult[models.Product]](ctx, c, "/products/search", searchQuery(params))
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryID int64, params models.SearchParams) (models.PageResult[models.Product], error) {
	return get[models.PageResult[models.Product]](ctx, c, fmt.Sprintf("/products/category/%d", categoryID), searchQuery(params))
}

func searchQuery(params models.SearchParams) url.Values {
	q := url.Values{}
	if params.Keyword != "" {
		q.Set("q", params.Keyword)
	}
	if params.CategoryID > 0 {
		q.Set("categoryId", strconv.FormatInt(params.CategoryID, 10))
	}
	if len(params.TagIDs) > 0 {
		q.Set("tagIds", joinIDs(params.TagIDs))
	}
	if len(params.ConditionIDs) > 0 {
		q.Set("conditionIds", joinIDs(params.ConditionIDs))
	}
	if params.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*params.MinPrice, 'f', -1, 64))
	}
	if params.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*params.MaxPrice, 'f', -1, 64))
	}
	if params.PublishedTimeRange != "" {
		q.Set("publishedTimeRange", params.PublishedTimeRange)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	setPage(q, params.Page, params.PageSize)
	return q
}

func setPage(q url.Values, page, pageSize int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
