package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,        default=9000"`
	Env         string `env:"ENV,         default=development"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL,   default=info"`
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:3000"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	Mail       MailConfig
	Google     OAuthConfig `env:", prefix=GOOGLE_"`
	GitHub     OAuthConfig `env:", prefix=GITHUB_"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// CloudinaryConfig holds the hosted media service credentials.
type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

type MailConfig struct {
	Host     string `env:"MAIL_HOST, default=smtp.gmail.com"`
	Port     string `env:"MAIL_PORT, default=587"`
	User     string `env:"MAIL_USER"`
	Password string `env:"MAIL_PASSWORD"`
	From     string `env:"MAIL_FROM, default=ADMIN"`
}

// OAuthConfig holds the client credentials for one social identity provider.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	CallbackURL  string `env:"CALLBACK_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
