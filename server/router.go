package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limitReportSubmission := limitRateForReportSubmission(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.GET("/reports/recent", s.handleGetRecentReports())
	apirouter.GET("/report/:reportID", s.handleGetReportByID())
	apirouter.GET("/leaderboard", s.handleGetLeaderboard())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.POST("/user/report", limitReportSubmission, s.handleSubmitReport())
	authorized.POST("/user/report/verify", s.handleVerifyWaste())
	authorized.PUT("/report/:reportID/collect", s.handleCollectReport())
	authorized.GET("/location/search", s.handleSearchAddress())
	authorized.GET("/rewards/balance", s.handleGetBalance())
	authorized.GET("/rewards/transactions", s.handleGetRewardTransactions())
	authorized.POST("/rewards/redeem", s.handleRedeemPoints())
	authorized.GET("/notifications/unread", s.handleGetUnreadNotifications())
	authorized.PUT("/notifications/:notificationID/read", s.handleAcknowledgeNotification())
	authorized.GET("/ws/notifications", s.handleNotificationStream())
}
