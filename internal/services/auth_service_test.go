package services

import (
	"context"
	"errors"
	"testing"

	"order_portal/internal/models"
	"order_portal/pkg/jwtutil"

	"golang.org/x/crypto/bcrypt"
)

type fakeCredRepo struct {
	creds      map[string]*models.Credential // by email
	failCreate bool
	deleted    []string
}

func (f *fakeCredRepo) Create(cred *models.Credential) error {
	if f.failCreate {
		return errors.New("duplicate email")
	}
	f.creds[cred.Email] = cred
	return nil
}

func (f *fakeCredRepo) GetByEmail(email string) (*models.Credential, error) {
	cred, ok := f.creds[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	return cred, nil
}

func (f *fakeCredRepo) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	for email, cred := range f.creds {
		if cred.ID == id {
			delete(f.creds, email)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users      map[string]*models.User
	failCreate bool
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if f.failCreate {
		return errors.New("profile insert failed")
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUserRepo) GetAll() ([]models.User, error)                { return nil, nil }
func (f *fakeUserRepo) GetByRole(role string) ([]models.User, error)  { return nil, nil }
func (f *fakeUserRepo) Update(user *models.User) error                { f.users[user.ID] = user; return nil }
func (f *fakeUserRepo) GetRetailersBySalesman(id string) ([]models.User, error) {
	return nil, nil
}

type fakeRoleCache struct {
	roles map[string]string
}

func (f *fakeRoleCache) CacheRole(ctx context.Context, userID, role string) error {
	f.roles[userID] = role
	return nil
}

func (f *fakeRoleCache) ClearRole(ctx context.Context, userID string) error {
	delete(f.roles, userID)
	return nil
}

func testAuthService(t *testing.T) (*fakeCredRepo, *fakeUserRepo, *fakeRoleCache, AuthService) {
	t.Helper()
	credRepo := &fakeCredRepo{creds: map[string]*models.Credential{}}
	userRepo := &fakeUserRepo{users: map[string]*models.User{}}
	cache := &fakeRoleCache{roles: map[string]string{}}
	jwt := jwtutil.New(&jwtutil.Config{SigningKey: "test-secret", ExpirationHours: 1})
	return credRepo, userRepo, cache, NewAuthService(credRepo, userRepo, cache, jwt)
}

func seedAccount(t *testing.T, credRepo *fakeCredRepo, userRepo *fakeUserRepo, email, password, role string, active bool) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	id := newID()
	credRepo.creds[email] = &models.Credential{ID: id, Email: email, PasswordHash: string(hash)}
	userRepo.users[id] = &models.User{ID: id, Email: email, Role: role, OwnerName: "Owner", IsActive: active}
	return id
}

func TestSignInSuccessPrimesRoleCache(t *testing.T) {
	credRepo, userRepo, cache, svc := testAuthService(t)
	id := seedAccount(t, credRepo, userRepo, "admin@example.com", "secret", string(models.SuperAdmin), true)

	profile, token, err := svc.SignIn(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if profile.ID != id || token == "" {
		t.Errorf("expected profile and token, got %v / %q", profile, token)
	}
	if cache.roles[id] != string(models.SuperAdmin) {
		t.Errorf("sign-in should prime the role cache")
	}
}

func TestSignInWrongPassword(t *testing.T) {
	credRepo, userRepo, _, svc := testAuthService(t)
	seedAccount(t, credRepo, userRepo, "admin@example.com", "secret", string(models.SuperAdmin), true)

	if _, _, err := svc.SignIn(context.Background(), "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignInInactiveAccount(t *testing.T) {
	credRepo, userRepo, _, svc := testAuthService(t)
	seedAccount(t, credRepo, userRepo, "old@example.com", "secret", string(models.Retailer), false)

	if _, _, err := svc.SignIn(context.Background(), "old@example.com", "secret"); !errors.Is(err, ErrForbidden) {
		t.Errorf("deactivated account must not sign in, got %v", err)
	}
}

func TestCreateUserRequiresSuperAdmin(t *testing.T) {
	credRepo, userRepo, _, svc := testAuthService(t)
	salesmanID := seedAccount(t, credRepo, userRepo, "sales@example.com", "secret", string(models.Salesman), true)

	_, err := svc.CreateUser(context.Background(), salesmanID, CreateUserInput{
		Email: "new@example.com", Password: "pw", Role: string(models.Salesman),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-admin callers must be rejected, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	credRepo, userRepo, _, svc := testAuthService(t)
	adminID := seedAccount(t, credRepo, userRepo, "admin@example.com", "secret", string(models.SuperAdmin), true)

	cases := []CreateUserInput{
		{Password: "pw", Role: string(models.Salesman)},                       // missing email
		{Email: "a@b.c", Password: "pw", Role: "owner"},                       // unknown role
		{Email: "shop@b.c", Password: "pw", Role: string(models.Retailer)},    // retailer without salesman
	}
	for i, input := range cases {
		if _, err := svc.CreateUser(context.Background(), adminID, input); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestCreateUserCompensatesFailedProfileInsert(t *testing.T) {
	credRepo, userRepo, _, svc := testAuthService(t)
	adminID := seedAccount(t, credRepo, userRepo, "admin@example.com", "secret", string(models.SuperAdmin), true)

	userRepo.failCreate = true
	_, err := svc.CreateUser(context.Background(), adminID, CreateUserInput{
		Email: "new@example.com", Password: "pw", Role: string(models.Salesman),
	})
	if err == nil {
		t.Fatal("expected profile insert failure to propagate")
	}
	if len(credRepo.deleted) != 1 {
		t.Errorf("the orphaned credential must be deleted, deletions: %v", credRepo.deleted)
	}
	if _, lookupErr := credRepo.GetByEmail("new@example.com"); lookupErr == nil {
		t.Errorf("credential should no longer resolve after rollback")
	}
}

func TestCreateUserOwnerNameFallsBackToEmailPrefix(t *testing.T) {
	credRepo, userRepo, _, svc := testAuthService(t)
	adminID := seedAccount(t, credRepo, userRepo, "admin@example.com", "secret", string(models.SuperAdmin), true)

	user, err := svc.CreateUser(context.Background(), adminID, CreateUserInput{
		Email: "ravi@example.com", Password: "pw", Role: string(models.Salesman),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.OwnerName != "ravi" {
		t.Errorf("expected owner name fallback 'ravi', got %q", user.OwnerName)
	}
}
