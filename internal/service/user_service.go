package service

import (
	"context"
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService account administration. Only admins reach these operations;
// the HTTP layer enforces that.
type UserService interface {
	ListUsers(ctx context.Context, companyID string) ([]*domain.User, error)
	GetUser(ctx context.Context, companyID, userID string) (*domain.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, companyID, userID string) error
}

type userService struct {
	usersRepo repository.UsersRepository
	logger    *zap.Logger
}

func NewUserService(usersRepo repository.UsersRepository, logger *zap.Logger) UserService {
	return &userService{usersRepo: usersRepo, logger: logger}
}

// CreateUserRequest new account payload
type CreateUserRequest struct {
	CompanyID       string `json:"-"`
	ProviderSubject string `json:"provider_subject"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
}

// UpdateUserRequest partial account update
type UpdateUserRequest struct {
	CompanyID string  `json:"-"`
	UserID    string  `json:"-"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

func (s *userService) ListUsers(ctx context.Context, companyID string) ([]*domain.User, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	return s.usersRepo.ListUsers(ctx, companyID)
}

func (s *userService) GetUser(ctx context.Context, companyID, userID string) (*domain.User, error) {
	if companyID == "" || userID == "" {
		return nil, fmt.Errorf("company_id and user_id are required")
	}
	return s.usersRepo.GetUser(ctx, companyID, userID)
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	if req.ProviderSubject == "" {
		return nil, fmt.Errorf("provider_subject is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !validRole(req.Role) {
		return nil, fmt.Errorf("invalid role: %s", req.Role)
	}

	u := &domain.User{
		UserID:          uuid.New().String(),
		CompanyID:       req.CompanyID,
		ProviderSubject: req.ProviderSubject,
		Email:           req.Email,
		Name:            req.Name,
		Phone:           strings.TrimSpace(req.Phone),
		Role:            req.Role,
		Status:          "active",
	}
	if err := s.usersRepo.CreateUser(ctx, u); err != nil {
		s.logger.Error("Failed to create user",
			zap.String("company_id", req.CompanyID),
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.usersRepo.GetUser(ctx, req.CompanyID, u.UserID)
}

func (s *userService) UpdateUser(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
	if req.CompanyID == "" || req.UserID == "" {
		return nil, fmt.Errorf("company_id and user_id are required")
	}

	updates := map[string]any{}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("a valid email is required")
		}
		updates["email"] = email
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, fmt.Errorf("invalid role: %s", *req.Role)
		}
		updates["role"] = *req.Role
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "disabled" {
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.usersRepo.UpdateUser(ctx, req.CompanyID, req.UserID, updates); err != nil {
			return nil, err
		}
	}
	return s.usersRepo.GetUser(ctx, req.CompanyID, req.UserID)
}

func (s *userService) DeleteUser(ctx context.Context, companyID, userID string) error {
	if companyID == "" || userID == "" {
		return fmt.Errorf("company_id and user_id are required")
	}
	return s.usersRepo.DeleteUser(ctx, companyID, userID)
}

func validRole(role string) bool {
	return role == domain.RoleAdmin || role == domain.RoleAgent
}
