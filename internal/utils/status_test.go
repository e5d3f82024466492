package utils

import (
	"testing"

	"shop/internal/entity/db"
)

func TestOrderStatusLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{db.OrderStatusPending, "Ожидает подтверждения"},
		{db.OrderStatusDelivered, "Доставлен"},
		{db.OrderStatusCancelled, "Отменён"},
		{"archived", "archived"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := OrderStatusLabel(tt.status); got != tt.want {
			t.Errorf("OrderStatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestMethodLabels(t *testing.T) {
	if got := DeliveryMethodLabel(db.DeliveryMethodPickup); got != "Самовывоз" {
		t.Errorf("unexpected pickup label %q", got)
	}
	if got := PaymentMethodLabel("crypto"); got != "crypto" {
		t.Errorf("unknown payment method should be returned as is, got %q", got)
	}
	if got := PostStatusLabel(db.PostStatusPublished); got != "Опубликовано" {
		t.Errorf("unexpected post status label %q", got)
	}
}

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"待确认到已确认", db.OrderStatusPending, db.OrderStatusConfirmed, true},
		{"待确认可取消", db.OrderStatusPending, db.OrderStatusCancelled, true},
		{"不可跳过处理", db.OrderStatusConfirmed, db.OrderStatusShipped, false},
		{"发货后送达", db.OrderStatusShipped, db.OrderStatusDelivered, true},
		{"发货后不可取消", db.OrderStatusShipped, db.OrderStatusCancelled, false},
		{"已送达为终态", db.OrderStatusDelivered, db.OrderStatusPending, false},
		{"已取消为终态", db.OrderStatusCancelled, db.OrderStatusConfirmed, false},
		{"相同状态", db.OrderStatusPending, db.OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionOrder(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionOrder(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNextOrderStatuses(t *testing.T) {
	if next := NextOrderStatuses(db.OrderStatusDelivered); len(next) != 0 {
		t.Fatalf("expected terminal status, got %v", next)
	}
	next := NextOrderStatuses(db.OrderStatusProcessing)
	if len(next) != 2 || next[0] != db.OrderStatusShipped {
		t.Fatalf("unexpected transitions %v", next)
	}
	for _, status := range OrderStatuses() {
		if !IsValidOrderStatus(status) {
			t.Errorf("status %q should be valid", status)
		}
	}
}
