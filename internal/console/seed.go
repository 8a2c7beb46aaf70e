// internal/console/seed.go
package console

// lastLoginNever is displayed for accounts that have not signed in yet.
const lastLoginNever = "未登录"

func seedProducts() []*Product {
	return []*Product{
		{ID: 101, Title: "ThinkPad X1 Carbon 2023 顶配 32G/1T", CategoryID: 2, Price: 6299, Seller: "linxia", Wechat: "linxia233", Status: StatusPending, PublishedAt: "2025-11-30 21:16"},
		{ID: 102, Title: "飞跃牌羽绒服 M 码 九成新", CategoryID: 3, Price: 198, Seller: "forest", Wechat: "forest_yy", Status: StatusForSale, PublishedAt: "2025-11-29 11:04"},
		{ID: 103, Title: "雅思写作高分范文 + 课程兑换卡", CategoryID: 1, Price: 129, Seller: "carol", Wechat: "carol_ielts", Status: StatusForSale, PublishedAt: "2025-11-28 08:52"},
		{ID: 104, Title: "Apple Watch S9 GPS 版 蓝色表带", CategoryID: 2, Price: 2599, Seller: "robin", Wechat: "robin-watch", Status: StatusSold, PublishedAt: "2025-11-25 15:21"},
	}
}

func seedPendingReviews() []*PendingReview {
	return []*PendingReview{
		{ID: 1, ProductID: 101, Title: "Apple iPad Air 5 256G Wi-Fi 版 深空灰色", Seller: "张三", SubmittedAt: "2025-11-30 22:18"},
		{ID: 2, ProductID: 102, Title: "戴森 V12 吸尘器 九成新 使用三个月", Seller: "李四", SubmittedAt: "2025-11-30 21:02"},
		{ID: 3, ProductID: 103, Title: "考研全套资料 408 + 英语一 + 政治", Seller: "王五", SubmittedAt: "2025-11-29 19:44"},
	}
}

func seedUsers() []*User {
	return []*User{
		{ID: 1, Account: "admin", Nickname: "超级管理员", Role: RoleAdmin, Status: UserActive, Wechat: "wechat_admin", RegisteredAt: "2024-09-01", LastLogin: "2025-12-01 08:10"},
		{ID: 2, Account: "alice", Nickname: "Alice", Role: RoleUser, Status: UserActive, Wechat: "alice-contact", RegisteredAt: "2025-03-16", LastLogin: "2025-11-30 20:42"},
		{ID: 3, Account: "bob", Nickname: "Bob", Role: RoleUser, Status: UserPending, RegisteredAt: "2025-11-12", LastLogin: lastLoginNever},
		{ID: 4, Account: "eve", Nickname: "Eve", Role: RoleUser, Status: UserBanned, Wechat: "eve-2025", RegisteredAt: "2025-05-02", LastLogin: "2025-11-29 09:34"},
	}
}

func seedCategories() []*Category {
	return []*Category{
		{ID: 1, Name: "教材教辅", Description: "考研·四六级·专业课等学习资料"},
		{ID: 2, Name: "数码产品", Description: "电脑数码、摄影设备、智能穿戴"},
		{ID: 3, Name: "生活日用", Description: "宿舍电器、收纳清洁、居家好物"},
	}
}

func seedTags() []*Tag {
	return []*Tag{
		{ID: 101, Name: "几乎全新", Description: "使用不超过 1 个月，成色完好", Usage: 342},
		{ID: 102, Name: "送货上门", Description: "卖家可协商校园内送货", Usage: 211},
		{ID: 103, Name: "价格可议", Description: "支持少量砍价或换购", Usage: 189},
		{ID: 104, Name: "附带保修", Description: "仍在官方质保期内", Usage: 97},
	}
}

func seedSaleTrend() []TrendPoint {
	return []TrendPoint{
		{Label: "周一", Value: 8},
		{Label: "周二", Value: 11},
		{Label: "周三", Value: 9},
		{Label: "周四", Value: 13},
		{Label: "周五", Value: 17},
		{Label: "周六", Value: 15},
		{Label: "周日", Value: 19},
	}
}
