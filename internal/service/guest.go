package service

import (
	"context"

	"shop/internal/auth"

	"github.com/sirupsen/logrus"
)

// GuestMergeResult 登录时访客数据迁移的结果
type GuestMergeResult struct {
	Favorites int
	CartItems int
	Cleared   bool
}

// MergeGuestData 在登录或注册成功后把访客收藏与购物车转给用户。
// 迁移失败不会阻断登录，仅记录日志；此时 Cleared 为 false，客户端保留访客 ID 以便重试。
func MergeGuestData(ctx context.Context, favorites *FavoriteService, cart *CartService, guestID string, userID uint) GuestMergeResult {
	var result GuestMergeResult
	guestID = auth.NormalizeGuestID(guestID)
	if guestID == "" || userID == 0 {
		return result
	}

	ok := true
	if favorites != nil {
		synced, err := favorites.Sync(ctx, guestID, userID)
		if err != nil {
			ok = false
			logrus.WithError(err).WithField("user_id", userID).Warn("failed to sync guest favorites")
		} else {
			result.Favorites = synced.Synced
		}
	}
	if cart != nil {
		merged, err := cart.Merge(ctx, guestID, userID)
		if err != nil {
			ok = false
			logrus.WithError(err).WithField("user_id", userID).Warn("failed to merge guest cart")
		} else {
			result.CartItems = merged
		}
	}
	result.Cleared = ok
	return result
}
