package handler

import (
	"github.com/newyears/event-organizer/internal/core/domain"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toUserPatch(req updateUserRequest) (domain.UserPatch, error) {
	patch := domain.UserPatch{Email: req.Email}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.Role = &role
	}
	return patch, nil
}
