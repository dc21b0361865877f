package dtos

import "github.com/justsurfingit/job-board/internal/models"

type CreateTenantRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required,min=2,max=63"`
	JobQuota int    `json:"job_quota" binding:"omitempty,min=1"`
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"omitempty,oneof=admin recruiter candidate"`
}

func (r CreateUserRequest) User() *models.User {
	return &models.User{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Role:      r.Role,
	}
}

type NoteRequest struct {
	Body string `json:"body" binding:"required"`
}

type StageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type EvaluationRequest struct {
	Score          int    `json:"score" binding:"required,min=1,max=5"`
	Recommendation string `json:"recommendation" binding:"omitempty,oneof=strong_yes yes no strong_no"`
	Comments       string `json:"comments"`
}
