package dto

import "github.com/puzzlekeeper/puzzle-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}
