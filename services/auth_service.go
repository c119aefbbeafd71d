package services

import (
	"log"
	"net/http"

	"github.com/pkg/errors"
	"github.com/techagentng/ecotrack/config"
	"github.com/techagentng/ecotrack/db"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
	"github.com/techagentng/ecotrack/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService is the user directory plus credential handling. Social login
// creates the user row on first successful login.
type AuthService interface {
	SignupUser(user *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GetUserByEmail(email string) (*models.User, error)
	GetOrCreateSocialUser(email string, fullname string) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.User, error)
	LogoutUser(accessToken string, email string) error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil || user.Email == "" {
		return nil, apiError.ErrValidation
	}
	if err := models.ValidateWhiteSpaces(user); err != nil {
		log.Printf("SignupUser conform error: %v", err)
		return nil, apiError.ErrValidation
	}
	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueConstraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	created, err := s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrPersistence
	}
	return created, nil
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	accessToken, err := jwt.GenerateToken(foundUser.ID, foundUser.Email, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating token for user %s: %v", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return foundUser.LoginUserToResponse(accessToken), nil
}

func (s *authService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.authRepo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("GetUserByEmail error: %v", err)
		return nil, apiError.ErrPersistence
	}
	return user, nil
}

// GetOrCreateSocialUser resolves the identity-provider email to a local
// user, creating the row on first login, and issues an access token.
func (s *authService) GetOrCreateSocialUser(email string, fullname string) (*models.LoginResponse, *apiError.Error) {
	if email == "" {
		return nil, apiError.New("identity provider returned no email", http.StatusBadRequest)
	}

	user, err := s.authRepo.FindUserByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("GetOrCreateSocialUser lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		user, err = s.authRepo.CreateGoogleUser(&models.CreateSocialUserParams{
			Email:    email,
			Fullname: fullname,
			IsSocial: true,
		})
		if err != nil {
			log.Printf("GetOrCreateSocialUser create error: %v", err)
			return nil, apiError.ErrPersistence
		}
	}

	accessToken, err := jwt.GenerateToken(user.ID, user.Email, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating token for user %s: %v", user.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return user.LoginUserToResponse(accessToken), nil
}

func (s *authService) GetUserProfile(userID uint) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("GetUserProfile error: %v", err)
		return nil, apiError.ErrPersistence
	}
	return user, nil
}

func (s *authService) LogoutUser(accessToken string, email string) error {
	blacklist := &models.Blacklist{
		Email: email,
		Token: accessToken,
	}
	if err := s.authRepo.AddToBlackList(blacklist); err != nil {
		log.Printf("LogoutUser error: %v", err)
		return apiError.ErrPersistence
	}
	return nil
}
