package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                    bool   `envconfig:"debug"`
	Port                     int    `envconfig:"port"`
	Env                      string `envconfig:"env"`
	Host                     string `envconfig:"host"`
	BaseUrl                  string `envconfig:"base_url"`
	PostgresHost             string `envconfig:"postgres_host"`
	PostgresUser             string `envconfig:"postgres_user"`
	PostgresDB               string `envconfig:"postgres_db"`
	PostgresPort             int    `envconfig:"postgres_port"`
	PostgresPassword         string `envconfig:"postgres_password"`
	JWTSecret                string `envconfig:"jwt_secret"`
	GoogleClientID           string `envconfig:"google_client_id"`
	GoogleClientSecret       string `envconfig:"google_client_secret"`
	GoogleRedirectURL        string `envconfig:"google_redirect_url"`
	GoogleMapsApiKey         string `envconfig:"google_maps_api_key"`
	GeminiApiKey             string `envconfig:"gemini_api_key"`
	GeminiBaseUrl            string `envconfig:"gemini_base_url" default:"https://generativelanguage.googleapis.com"`
	AwsRegion                string `envconfig:"aws_region"`
	AwsS3Bucket              string `envconfig:"aws_s3_bucket"`
	ReportPointValue         int    `envconfig:"report_point_value" default:"10"`
	NotificationPollSeconds  int    `envconfig:"notification_poll_seconds" default:"3"`
	AccessControlAllowOrigin string `envconfig:"access_control_allow_origin"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("ecotrack", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
