package auth

import (
	"errors"
	"testing"
	"time"

	"shop/internal/entity/db"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &db.User{ID: 42, Email: "user@example.com", Role: db.UserRoleAdmin, IsActive: true}
	token, expiresAt, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if !claims.IsAdmin() || claims.IsSuperAdmin() {
		t.Fatalf("expected admin claims, got role %s", claims.Role)
	}
	if aud, _ := claims.GetAudience(); len(aud) != 1 || aud[0] != AudienceBackOffice {
		t.Fatalf("expected back-office audience, got %v", aud)
	}
}

func TestParseTokenRejectsExpiredAndForeignIssuer(t *testing.T) {
	mgr, _ := NewManager("test-secret", "shop", time.Minute)
	issued := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return issued }
	token, _, err := mgr.GenerateToken(&db.User{ID: 5, Role: db.UserRoleUser, IsActive: true})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	mgr.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := mgr.ParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}

	other, _ := NewManager("test-secret", "other-shop", time.Minute)
	other.now = func() time.Time { return issued }
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("expected token from another issuer to be rejected")
	}
}

func TestStaffRoles(t *testing.T) {
	tests := []struct {
		role       string
		staff      bool
		superAdmin bool
	}{
		{db.UserRoleSuperAdmin, true, true},
		{db.UserRoleAdmin, true, false},
		{db.UserRoleUser, false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run("角色 "+tt.role, func(t *testing.T) {
			if got := IsStaffRole(tt.role); got != tt.staff {
				t.Errorf("IsStaffRole(%q) = %v, want %v", tt.role, got, tt.staff)
			}
			if got := IsSuperAdminRole(tt.role); got != tt.superAdmin {
				t.Errorf("IsSuperAdminRole(%q) = %v, want %v", tt.role, got, tt.superAdmin)
			}
		})
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerateTokenRejectsDisabledUser(t *testing.T) {
	mgr, err := NewManager("test-secret", "", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	_, _, err = mgr.GenerateToken(&db.User{ID: 7, Role: db.UserRoleUser})
	if !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	issuer, _ := NewManager("secret-a", "", time.Hour)
	verifier, _ := NewManager("secret-b", "", time.Hour)

	token, _, err := issuer.GenerateToken(&db.User{ID: 1, Role: db.UserRoleUser, IsActive: true})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.IsAdmin() {
		t.Fatal("customer token must not be admin")
	}
}
