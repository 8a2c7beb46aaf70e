// internal/client/dictionary.go
package client

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return get[[]models.Category](ctx, c, "/categories", nil)
}

func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	return get[[]models.Tag](ctx, c, "/tags", nil)
}

func (c *Client) ProductConditions(ctx context.Context) ([]models.ProductCondition, error) {
	return get[[]models.ProductCondition](ctx, c, "/product-conditions", nil)
}

// Home fetches the aggregated home feed. Zero page values fall back to the
// backend defaults.
func (c *Client) Home(ctx context.Context, page, pageSize int) (models.HomeData, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	return get[models.HomeData](ctx, c, "/home", q)
}

// UploadFile uploads a single file under the multipart "file" field.
func (c *Client) UploadFile(ctx context.Context, fileName string, r io.Reader) (models.UploadResult, error) {
	var env models.Envelope[models.UploadResult]
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", fileName, r).
		SetResult(&env).
		Post("/upload")
	return decode(c, &env, resp, err)
}
