package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a user of the application
type User struct {
	Model
	Fullname       string         `json:"fullname" binding:"required,min=2"`
	Email          string         `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password       string         `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string         `json:"-"`
	IsSocial       bool           `json:"-"`
	AccessToken    string         `json:"-"`
	Notifications  []Notification `gorm:"foreignKey:UserID" json:"-"`
}

// CreateSocialUserParams represents the parameters required to create a new social user.
type CreateSocialUserParams struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	IsSocial bool   `json:"is_social"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (u *User) LoginUserToResponse(accessToken string) *LoginResponse {
	return &LoginResponse{
		UserResponse: UserResponse{
			ID:       u.ID,
			Fullname: u.Fullname,
			Email:    u.Email,
		},
		AccessToken: accessToken,
	}
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(15, errors.New("password cant be more than 15 characters")))
	err := passwordValidator.Validate(password)
	return err
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}
