package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"order_portal/internal/models"
	"order_portal/internal/repository"
	"order_portal/pkg/jwtutil"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
)

// RoleCache is the staleness-bounded role hint store consulted by the route
// guard. Sign-in primes it, sign-out and deactivation clear it.
type RoleCache interface {
	CacheRole(ctx context.Context, userID, role string) error
	ClearRole(ctx context.Context, userID string) error
}

type CreateUserInput struct {
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	Role               string  `json:"role"`
	OwnerName          string  `json:"owner_name"`
	BusinessName       *string `json:"business_name"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address"`
	GST                *string `json:"gst"`
	AssignedSalesmanID *string `json:"assigned_salesman_id"`
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	SignOut(ctx context.Context, userID string) error
	CreateUser(ctx context.Context, requesterID string, input CreateUserInput) (*models.User, error)
}

type authService struct {
	credRepo  repository.CredentialRepository
	userRepo  repository.UserRepository
	roleCache RoleCache
	jwt       *jwtutil.JWTUtil
}

func NewAuthService(credRepo repository.CredentialRepository, userRepo repository.UserRepository, roleCache RoleCache, jwt *jwtutil.JWTUtil) AuthService {
	return &authService{credRepo: credRepo, userRepo: userRepo, roleCache: roleCache, jwt: jwt}
}

// SignIn checks the password against the stored hash, issues a session token
// and primes the role cache so the guard's first navigation skips the DB.
func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	cred, err := s.credRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	profile, err := s.userRepo.GetByID(cred.ID)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !profile.IsActive {
		return nil, "", ErrForbidden
	}

	token, err := s.jwt.GenerateToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	// Best effort; a cache miss later just falls back to the users table.
	_ = s.roleCache.CacheRole(ctx, profile.ID, profile.Role)

	return profile, token, nil
}

func (s *authService) SignOut(ctx context.Context, userID string) error {
	return s.roleCache.ClearRole(ctx, userID)
}

// CreateUser is the privileged creation path: only an active super admin may
// call it. The credential is written first; if the profile insert fails the
// credential is deleted again so no orphaned identity can sign in.
func (s *authService) CreateUser(ctx context.Context, requesterID string, input CreateUserInput) (*models.User, error) {
	requester, err := s.userRepo.GetByID(requesterID)
	if err != nil || !requester.IsActive || requester.Role != string(models.SuperAdmin) {
		return nil, ErrForbidden
	}

	if input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if !models.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: invalid role", ErrValidation)
	}
	if input.Role == string(models.Retailer) && (input.AssignedSalesmanID == nil || *input.AssignedSalesmanID == "") {
		return nil, fmt.Errorf("%w: retailer must have an assigned salesman", ErrValidation)
	}

	ownerName := strings.TrimSpace(input.OwnerName)
	if ownerName == "" {
		ownerName = strings.SplitN(input.Email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := &models.Credential{
		ID:           newID(),
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.credRepo.Create(cred); err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	var salesmanID *string
	if input.Role == string(models.Retailer) {
		salesmanID = input.AssignedSalesmanID
	}

	profile := &models.User{
		ID:                 cred.ID,
		Email:              input.Email,
		Role:               input.Role,
		OwnerName:          ownerName,
		BusinessName:       input.BusinessName,
		Phone:              input.Phone,
		Address:            input.Address,
		GST:                input.GST,
		AssignedSalesmanID: salesmanID,
		IsActive:           true,
	}
	if err := s.userRepo.Create(profile); err != nil {
		// Roll back the auth identity so the account cannot half-exist.
		_ = s.credRepo.Delete(cred.ID)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}
