package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the business logic layer for account operations.
type UserService struct {
	Cfg  *config.Config
	Repo repository.UserRepo
}

// NewUserService is the constructor function for initializing a new UserService.
func NewUserService(cfg *config.Config, repo repository.UserRepo) *UserService {
	return &UserService{
		Cfg:  cfg,
		Repo: repo,
	}
}

// UserResponse is the response object for account operations.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	LoginType string    `json:"login_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Signup creates a new local account. The email must be well formed and not
// already registered; the password is never stored in the clear.
func (s *UserService) Signup(email, password, name, phone string, loginType models.LoginType) (*models.User, error) {
	if !govalidator.IsEmail(email) {
		return nil, fmt.Errorf("invalid email format: %s", email)
	}

	taken, err := s.Repo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	if loginType == "" {
		loginType = models.LoginLocal
	}

	user := &models.User{
		Email:     email,
		Pwd:       string(hashedPassword),
		Name:      name,
		Phone:     phone,
		LoginType: loginType,
	}

	user, err = s.Repo.CreateUser(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies an email and password pair. Unknown email and wrong
// password produce the same error on purpose.
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Pwd), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ToUserResponse converts a User to a UserResponse.
func ToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        strconv.FormatUint(uint64(user.ID), 10),
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		LoginType: string(user.LoginType),
		CreatedAt: user.CreatedAt,
	}
}
