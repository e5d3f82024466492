package entity

import "strings"

// Owner 标识购物车与收藏的归属方：登录用户优先，否则为访客 ID。
type Owner struct {
	UserID  uint
	GuestID string
}

// UserOwner 返回登录用户的归属标识。
func UserOwner(userID uint) Owner {
	return Owner{UserID: userID}
}

// GuestOwner 返回访客的归属标识。
func GuestOwner(guestID string) Owner {
	return Owner{GuestID: strings.TrimSpace(guestID)}
}

// IsUser 判断归属方是否为登录用户。
func (o Owner) IsUser() bool {
	return o.UserID > 0
}

// IsZero 判断归属方是否为空。
func (o Owner) IsZero() bool {
	return o.UserID == 0 && strings.TrimSpace(o.GuestID) == ""
}

// UserIDPtr 返回可写入数据库的用户 ID 指针。
func (o Owner) UserIDPtr() *uint {
	if !o.IsUser() {
		return nil
	}
	id := o.UserID
	return &id
}

// GuestValue 返回访客 ID；登录用户返回空字符串。
func (o Owner) GuestValue() string {
	if o.IsUser() {
		return ""
	}
	return strings.TrimSpace(o.GuestID)
}
