package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt"
	errs "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
	"github.com/techagentng/ecotrack/server/response"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ErrValidation)
			return
		}

		createdUser, err := s.AuthService.SignupUser(&user)
		if err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Signup successful", http.StatusCreated, models.UserResponse{
			ID:       createdUser.ID,
			Fullname: createdUser.Fullname,
			Email:    createdUser.Email,
		}, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := c.ShouldBindJSON(&loginRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ErrValidation)
			return
		}

		loginResponse, apiErr := s.AuthService.LoginUser(&loginRequest)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		accessToken := c.GetString("access_token")

		if err := s.AuthService.LogoutUser(accessToken, user.Email); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		response.JSON(c, "", http.StatusOK, models.UserResponse{
			ID:       user.ID,
			Fullname: user.Fullname,
			Email:    user.Email,
		}, nil)
	}
}

func (s *Server) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

// generateJWTState issues a short-lived signed state token for the OAuth
// round trip.
func generateJWTState(secret string) (string, error) {
	claims := gojwt.MapClaims{
		"exp":  time.Now().Add(5 * time.Minute).Unix(),
		"type": "oauth_state",
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func verifyJWTState(state string, secret string) bool {
	token, err := gojwt.Parse(state, func(token *gojwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateJWTState(s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		authURL := s.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		if !verifyJWTState(state, s.Config.JWTSecret) {
			log.Println("invalid or expired oauth state")
			response.JSON(c, "", http.StatusForbidden, nil, errs.New("invalid or expired state", http.StatusForbidden))
			return
		}

		code := c.Query("code")
		if code == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.ErrValidation)
			return
		}

		token, err := s.googleOAuthConfig().Exchange(context.Background(), code)
		if err != nil {
			log.Printf("google code exchange failed: %v", err)
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("code exchange failed", http.StatusUnauthorized))
			return
		}

		oauthService, err := googleoauth.NewService(c.Request.Context(),
			option.WithTokenSource(s.googleOAuthConfig().TokenSource(c.Request.Context(), token)))
		if err != nil {
			log.Printf("error creating google oauth service: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		userinfo, err := oauthService.Userinfo.Get().Do()
		if err != nil {
			log.Printf("error fetching google userinfo: %v", err)
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("unable to fetch user info", http.StatusUnauthorized))
			return
		}

		loginResponse, apiErr := s.AuthService.GetOrCreateSocialUser(userinfo.Email, userinfo.Name)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Login successful", http.StatusOK, loginResponse, nil)
	}
}
