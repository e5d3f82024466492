package db

import "time"

const (
	UserRoleSuperAdmin = "super_admin"
	UserRoleAdmin      = "admin"
	UserRoleUser       = "user"
)

// User 表示持久化的用户账户，店铺顾客与后台管理员共用此表。
type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Email          string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	DisplayName    string    `gorm:"column:display_name;type:varchar(255)" json:"display_name"`
	Phone          string    `gorm:"column:phone;type:varchar(32)" json:"phone"`
	DefaultAddress string    `gorm:"column:default_address;type:text" json:"default_address"`
	Role           string    `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	IsActive       bool      `gorm:"column:is_active;not null" json:"is_active"`

	OrderCount int64 `gorm:"->;-:migration" json:"order_count,omitempty"`
}

// TableName 指定表名。
func (User) TableName() string {
	return "users"
}

// IsStaff 判断用户是否属于后台人员。
func (u *User) IsStaff() bool {
	if u == nil {
		return false
	}
	return u.Role == UserRoleAdmin || u.Role == UserRoleSuperAdmin
}
