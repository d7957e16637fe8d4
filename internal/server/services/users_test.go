package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/legalvault/internal/common"
	"github.com/dmitrijs2005/legalvault/internal/dbx"
	"github.com/dmitrijs2005/legalvault/internal/server/auth"
	"github.com/dmitrijs2005/legalvault/internal/server/config"
	"github.com/dmitrijs2005/legalvault/internal/server/models"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/activities"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/documents"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	created int
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, fmt.Errorf("%w: email already registered", common.ErrorValidation)
	}
	f.created++
	user.ID = fmt.Sprintf("u-%d", f.created)
	if f.byEmail == nil {
		f.byEmail = map[string]*models.User{}
	}
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type usersManager struct {
	users *fakeUsersRepo
}

func (m *usersManager) Users(db dbx.DBTX) users.Repository           { return m.users }
func (m *usersManager) Documents(db dbx.DBTX) documents.Repository   { return nil }
func (m *usersManager) Activities(db dbx.DBTX) activities.Repository { return nil }
func (m *usersManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func newUserService(repo *fakeUsersRepo) *UserService {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewUserService(nil, &usersManager{users: repo}, cfg)
}

func TestRegister(t *testing.T) {
	repo := &fakeUsersRepo{}
	svc := newUserService(repo)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cur3pass", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != models.RoleClient {
		t.Fatalf("want default role client, got %s", user.Role)
	}
	if user.PasswordHash == "s3cur3pass" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cur3pass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newUserService(&fakeUsersRepo{})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     models.UserRole
	}{
		{"missing name", "", "a@example.com", "s3cur3pass", ""},
		{"bad email", "Ada", "not-an-email", "s3cur3pass", ""},
		{"short password", "Ada", "a@example.com", "short", ""},
		{"unknown role", "Ada", "a@example.com", "s3cur3pass", "admin"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password, tc.role)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	repo := &fakeUsersRepo{}
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cur3pass", models.RoleLawyer); err != nil {
		t.Fatalf("register error: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ada@example.com", "s3cur3pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("unexpected user %v", user)
	}

	claims, err := auth.ParseToken(token, svc.jwtSecret)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleLawyer {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := &fakeUsersRepo{}
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cur3pass", ""); err != nil {
		t.Fatalf("register error: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "s3cur3pass"},
		{"wrong password", "ada@example.com", "wrongpass1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, common.ErrorUnauthorized) {
				t.Fatalf("want unauthorized, got %v", err)
			}
		})
	}
}
