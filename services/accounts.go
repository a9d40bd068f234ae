package services

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

// SignupForm is the registration form.
type SignupForm struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	// PasswordConfirm must repeat Password.
	PasswordConfirm string
}

// AccountService registers and authenticates users.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Signup validates f and creates the user. Validation problems come back as FieldErrors.
func (s *AccountService) Signup(ctx context.Context, f SignupForm) (*models.User, FieldErrors, error) {
	errs := FieldErrors{}
	username := strings.TrimSpace(f.Username)
	email := strings.TrimSpace(f.Email)

	if !usernamePattern.MatchString(username) {
		errs.Add("username", "Enter a valid username: letters, digits and @/./+/-/_ only.")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs.Add("email", "Enter a valid email address.")
		}
	}
	if err := utils.ValidatePassword(f.Password); err != nil {
		errs.Add("password", err.Error())
	} else if f.PasswordConfirm != f.Password {
		errs.Add("password_confirm", "The two password fields didn't match.")
	}
	if !errs.Has("username") {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
			return nil, nil, err
		}
		if n > 0 {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if errs.Any() {
		return nil, errs, nil
	}

	hash, err := utils.HashPassword(f.Password)
	if err != nil {
		return nil, nil, err
	}
	u := models.User{
		Username:     username,
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, nil, err
	}
	return &u, nil, nil
}

// Authenticate returns the user for a matching username and password.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" || !utils.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// ByID loads a user, wrapping ErrNotFound when missing.
func (s *AccountService) ByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}
