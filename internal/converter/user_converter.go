package converter

import (
	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/domain/entity"
)

// UserToResponse converts a User entity to its response DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := entity.RolePatient
	switch user.RoleID {
	case entity.RoleIDAdmin:
		role = entity.RoleAdmin
	case entity.RoleIDDoctor:
		role = entity.RoleDoctor
	}

	return &dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Gender:      user.Gender,
		DateOfBirth: user.DateOfBirth,
		Address:     map[string]interface{}(user.Address),
		ImageURL:    user.ImageURL,
		IsVerified:  user.IsVerified,
		Role:        role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
