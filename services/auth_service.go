package services

import (
	"errors"

	"github.com/Everilll/CateringKita/apperr"
	"github.com/Everilll/CateringKita/models"
	"github.com/Everilll/CateringKita/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`

	// Customer profile fields
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`

	// Vendor profile fields
	VendorName    string `json:"vendor_name"`
	VendorAddress string `json:"vendor_address"`
	VendorCity    string `json:"vendor_city"`
	VendorPhone   string `json:"vendor_phone"`
	Description   string `json:"description"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// AuthResult bundles the account with its profile (Customer or Vendor).
type AuthResult struct {
	User    *models.User
	Profile interface{}
}

type AuthService interface {
	Register(in RegisterInput) (*AuthResult, error)
	Login(in LoginInput) (*AuthResult, error)
	ChangePassword(userID uint, in ChangePasswordInput) error
	Profile(userID uint) (*AuthResult, error)
}

type authService struct {
	identity repository.IdentityRepository
	log      zerolog.Logger
}

func NewAuthService(identity repository.IdentityRepository, log zerolog.Logger) AuthService {
	return &authService{identity: identity, log: log}
}

func (s *authService) Register(in RegisterInput) (*AuthResult, error) {
	if in.Role != models.RoleCustomer && in.Role != models.RoleVendor {
		return nil, apperr.Validation("Role harus CUSTOMER atau VENDOR")
	}

	if _, err := s.identity.GetUserByEmail(in.Email); err == nil {
		return nil, apperr.Conflict("Email sudah terdaftar")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}

	if in.Role == models.RoleCustomer {
		if in.Phone == "" {
			return nil, apperr.Validation("Nomor telepon wajib diisi untuk customer")
		}
		if _, err := s.identity.GetCustomerByPhone(in.Phone); err == nil {
			return nil, apperr.Conflict("Nomor telepon sudah terdaftar")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		customer := &models.Customer{
			Phone:   in.Phone,
			Address: in.Address,
			City:    in.City,
		}
		if err := s.identity.CreateCustomerAccount(user, customer); err != nil {
			return nil, err
		}
		s.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("account registered")
		return &AuthResult{User: user, Profile: customer}, nil
	}

	if in.VendorName == "" || in.VendorAddress == "" || in.VendorPhone == "" {
		return nil, apperr.Validation("Nama, alamat, dan telepon vendor wajib diisi")
	}
	vendor := &models.Vendor{
		Name:        in.VendorName,
		Address:     in.VendorAddress,
		City:        in.VendorCity,
		Phone:       in.VendorPhone,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.identity.CreateVendorAccount(user, vendor); err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("account registered")
	return &AuthResult{User: user, Profile: vendor}, nil
}

func (s *authService) Login(in LoginInput) (*AuthResult, error) {
	user, err := s.identity.GetUserByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Email atau password salah")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized("Email atau password salah")
	}
	return s.withProfile(user)
}

func (s *authService) ChangePassword(userID uint, in ChangePasswordInput) error {
	user, err := s.identity.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Unauthorized("User tidak ditemukan")
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return apperr.Unauthorized("Password lama salah")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.identity.UpdatePassword(userID, string(hash))
}

func (s *authService) Profile(userID uint) (*AuthResult, error) {
	user, err := s.identity.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User tidak ditemukan")
		}
		return nil, err
	}
	return s.withProfile(user)
}

func (s *authService) withProfile(user *models.User) (*AuthResult, error) {
	result := &AuthResult{User: user}
	switch user.Role {
	case models.RoleCustomer:
		customer, err := s.identity.GetCustomerByUserID(user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if customer != nil {
			result.Profile = customer
		}
	case models.RoleVendor:
		vendor, err := s.identity.GetVendorByUserID(user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if vendor != nil {
			result.Profile = vendor
		}
	}
	return result, nil
}
