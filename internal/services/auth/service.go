// Package auth handles back-office authentication.
package auth

import (
	"errors"
	"log"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"
	"github.com/vkolotikov/loyalty-bolt/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(username, password string) (*models.AdminUser, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(adminID uint) error
	VerifyTokenVersion(adminID uint, version int) error
}

type service struct {
	adminRepo repositories.AdminRepository
}

func NewService(adminRepo repositories.AdminRepository) Service {
	return &service{
		adminRepo: adminRepo,
	}
}

func (s *service) Login(username, password string) (*models.AdminUser, string, string, error) {
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		log.Printf("login failed: admin not found: %s", username)
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		log.Printf("login failed: incorrect password for admin ID: %d", admin.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.AdminClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		Role:         admin.Role,
		TokenVersion: admin.TokenVersion,
		Permissions:  models.GetDefaultPermissions(admin.Role),
	})
	if err != nil {
		log.Println("error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return admin, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	admin, err := s.adminRepo.GetByID(claims.AdminID)
	if err != nil {
		return "", "", errors.New("admin not found")
	}

	if admin.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.AdminClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		Role:         admin.Role,
		TokenVersion: admin.TokenVersion,
		Permissions:  models.GetDefaultPermissions(admin.Role),
	})
}

func (s *service) Logout(adminID uint) error {
	return s.adminRepo.IncrementTokenVersion(adminID)
}

func (s *service) VerifyTokenVersion(adminID uint, version int) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return errors.New("admin not found")
	}
	if admin.TokenVersion != version {
		return errors.New("token version mismatch")
	}
	return nil
}
