// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/ledgerbook/backend/internal/domain/entity"

// SetUserStatusRequest represents the request body for enabling or disabling
// a user account. A pointer keeps "active": false distinguishable from an
// absent field.
type SetUserStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// UserListResponse represents the global user listing for superadmins.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserListResponse converts a list of users to a UserListResponse.
func ToUserListResponse(users []*entity.User) UserListResponse {
	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = ToUserResponse(u)
	}
	return UserListResponse{Users: items}
}
