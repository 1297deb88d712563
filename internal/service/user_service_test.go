package service

import (
	"errors"
	"testing"

	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() (*UserService, *testutil.MockUserRepo) {
	repo := testutil.NewMockUserRepo()
	return NewUserService(&config.Config{}, repo), repo
}

func TestSignup_CreatesLocalUser(t *testing.T) {
	svc, repo := newTestUserService()

	user, err := svc.Signup("new@example.com", "secret-pw", "홍길동", "010-1111-2222", "")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.ID == 0 {
		t.Error("user should receive an id")
	}
	if user.LoginType != models.LoginLocal {
		t.Errorf("LoginType = %q, want local default", user.LoginType)
	}
	if user.Pwd == "secret-pw" {
		t.Error("password must not be stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Pwd), []byte("secret-pw")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}

	if exists, _ := repo.EmailExists("new@example.com"); !exists {
		t.Error("user was not persisted")
	}
}

func TestSignup_InvalidEmail(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Signup("not-an-email", "pw", "이름", "", ""); err == nil {
		t.Error("Signup should reject a malformed email")
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	svc, repo := newTestUserService()
	repo.Users["taken@example.com"] = testutil.TestUser()

	if _, err := svc.Signup("taken@example.com", "pw", "이름", "", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Signup("login@example.com", "secret-pw", "이름", "", ""); err != nil {
		t.Fatal(err)
	}

	user, err := svc.Login("login@example.com", "secret-pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "login@example.com" {
		t.Errorf("Email = %q", user.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Signup("login@example.com", "secret-pw", "이름", "", ""); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login("login@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Login("nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
