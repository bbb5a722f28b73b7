package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/hash"
	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/repo"
)

const accessTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("username and password required: %w", ErrValidation)
	}
	if role == "" {
		role = "user"
	}

	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		return nil, "", fmt.Errorf("username %q taken: %w", username, ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{Username: username, PasswordHash: passwordHash, Role: role}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("bad credentials: %w", ErrValidation)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.JWTSecret)
}
