// Package services – AdminService
//
// AdminService manages back-office operator accounts. Passwords are stored
// as bcrypt hashes.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/repo"
)

// minPasswordLen is the shortest accepted operator password, in runes.
const minPasswordLen = 8

// dummyHash is compared against when the user is unknown so that lookups of
// missing accounts take as long as real ones.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("turret-landing"), bcrypt.DefaultCost)

// AdminService authenticates and provisions operators.
type AdminService struct {
	DB *gorm.DB

	// Cost is the bcrypt cost; values <= 0 use bcrypt.DefaultCost.
	Cost int
}

// CreateAdmin provisions an active operator. It returns ErrAdminExists when
// the username is taken and ErrWeakPassword for short passwords.
func (s *AdminService) CreateAdmin(ctx context.Context, username, email, password string) (*domain.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		ve := &ValidationError{}
		ve.add("username", MsgRequired)
		return nil, ve
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	exists, err := repo.AdminUserExists(ctx, s.DB, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}

	cost := s.Cost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	u := &domain.AdminUser{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := repo.CreateAdminUser(ctx, s.DB, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAdminExists
		}
		return nil, err
	}
	return u, nil
}

// Exists reports whether an operator account with username exists.
func (s *AdminService) Exists(ctx context.Context, username string) (bool, error) {
	return repo.AdminUserExists(ctx, s.DB, strings.TrimSpace(username))
}

// Authenticate returns the active operator matching username and password,
// or ErrInvalidCredentials.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	u, err := repo.GetAdminUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
