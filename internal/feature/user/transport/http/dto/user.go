// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

import (
	"time"

	"bookmark_backend/internal/feature/auth/domain/entity"
)

// EditUserReq is the body of PATCH /users. Omitted fields are left unchanged.
type EditUserReq struct {
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string `json:"firstName" binding:"omitempty,max=255"`
	LastName  *string `json:"lastName" binding:"omitempty,max=255"`
}

// UserRes is the public view of a user. The password hash has no field here.
type UserRes struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserRes maps an entity to its response body.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
