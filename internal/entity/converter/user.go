package converter

import (
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
)

// UserToSummary converts a db.User to dto.UserSummary.
func UserToSummary(u *db.User) dto.UserSummary {
	if u == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{
		ID:             u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		Phone:          u.Phone,
		DefaultAddress: u.DefaultAddress,
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// UsersToSummaries converts a slice of db.User to dto.UserSummary.
func UsersToSummaries(users []db.User) []dto.UserSummary {
	summaries := make([]dto.UserSummary, len(users))
	for i := range users {
		summaries[i] = UserToSummary(&users[i])
	}
	return summaries
}

// UserToCustomer converts a db.User to dto.CustomerSummary.
func UserToCustomer(u *db.User) dto.CustomerSummary {
	if u == nil {
		return dto.CustomerSummary{}
	}
	return dto.CustomerSummary{
		UserSummary: UserToSummary(u),
		OrderCount:  u.OrderCount,
	}
}

// UsersToCustomers converts a slice of db.User to dto.CustomerSummary.
func UsersToCustomers(users []db.User) []dto.CustomerSummary {
	customers := make([]dto.CustomerSummary, len(users))
	for i := range users {
		customers[i] = UserToCustomer(&users[i])
	}
	return customers
}
