package services

import (
	"context"

	"order_portal/internal/models"
	"order_portal/internal/repository"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

type UpdateUserInput struct {
	OwnerName          *string `json:"owner_name"`
	BusinessName       *string `json:"business_name"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address"`
	GST                *string `json:"gst"`
	AssignedSalesmanID *string `json:"assigned_salesman_id"`
	IsActive           *bool   `json:"is_active"`
}

type UserService interface {
	GetUserByID(id string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetSalesmen() ([]models.User, error)
	GetRetailersBySalesman(salesmanID string) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*models.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	roleCache RoleCache
}

func NewUserService(userRepo repository.UserRepository, roleCache RoleCache) UserService {
	return &userService{userRepo: userRepo, roleCache: roleCache}
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) GetSalesmen() ([]models.User, error) {
	return s.userRepo.GetByRole(string(models.Salesman))
}

func (s *userService) GetRetailersBySalesman(salesmanID string) ([]models.User, error) {
	return s.userRepo.GetRetailersBySalesman(salesmanID)
}

// UpdateUser applies self-service or admin edits. Accounts are never hard
// deleted, only deactivated; deactivation also drops the cached role so the
// guard forces the user out at the next cache miss.
func (s *userService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.OwnerName != nil {
		user.OwnerName = *input.OwnerName
	}
	if input.BusinessName != nil {
		user.BusinessName = input.BusinessName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.GST != nil {
		user.GST = input.GST
	}
	if input.AssignedSalesmanID != nil {
		user.AssignedSalesmanID = input.AssignedSalesmanID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
		if !user.IsActive {
			_ = s.roleCache.ClearRole(ctx, user.ID)
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
