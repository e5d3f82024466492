package db

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// BlogCategory 博客分类。
type BlogCategory struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`

	PostCount int64 `gorm:"->;-:migration" json:"post_count,omitempty"`
}

// TableName 指定表名
func (BlogCategory) TableName() string {
	return "blog_categories"
}

// BlogPost 博客文章。Content 保存 Markdown 原文，ContentHTML 为保存时渲染并清洗后的结果。
type BlogPost struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	ContentHTML string     `gorm:"column:content_html;type:text" json:"content_html"`
	CoverImage  string     `gorm:"type:text" json:"cover_image"`
	Status      string     `gorm:"type:varchar(32);index;not null;default:'draft'" json:"status"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`

	AuthorID   uint          `gorm:"index" json:"author_id"`
	Author     *User         `gorm:"foreignKey:AuthorID" json:"-"`
	CategoryID *uint         `gorm:"index" json:"category_id"`
	Category   *BlogCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName 指定表名
func (BlogPost) TableName() string {
	return "blog_posts"
}
