// internal/console/export.go
package console

import (
	"strconv"
	"strings"
)

var exportHeader = []string{"ID", "标题", "分类", "价格", "卖家", "微信号", "状态", "发布时间"}

// unknownCategoryName is used when a product points at a category that no
// longer exists.
const unknownCategoryName = "未知分类"

// ExportProducts serializes products to CSV. A nil or empty id list exports
// everything. Every cell is quoted unconditionally with `"` doubled, cells
// joined by commas and rows by plain `\n` — the fixed interchange format the
// console download expects, which is why this does not go through
// encoding/csv (that package quotes only when needed).
func (s *DataStore) ExportProducts(ids []int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	dataset := s.products
	if len(ids) > 0 {
		wanted := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			wanted[id] = struct{}{}
		}
		dataset = dataset[:0:0]
		for _, p := range s.products {
			if _, ok := wanted[p.ID]; ok {
				dataset = append(dataset, p)
			}
		}
	}

	categoryNames := make(map[int64]string, len(s.categories))
	for _, c := range s.categories {
		categoryNames[c.ID] = c.Name
	}

	var b strings.Builder
	writeCSVRow(&b, exportHeader)
	for _, p := range dataset {
		name, ok := categoryNames[p.CategoryID]
		if !ok {
			name = unknownCategoryName
		}
		b.WriteByte('\n')
		writeCSVRow(&b, []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			name,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.Seller,
			p.Wechat,
			string(p.Status),
			p.PublishedAt,
		})
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}
