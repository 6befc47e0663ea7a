package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Rewards  RewardsConfig  `env:",prefix=REWARDS_"`
	Checkout CheckoutConfig `env:",prefix=CHECKOUT_"`
	Stripe   StripeConfig   `env:",prefix=STRIPE_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=wellness"`
	Password string `env:"PASSWORD,default=wellness_password"`
	DBName   string `env:"DB,default=wellness_db"`
	SSLMode  string `env:"SSLMODE,default=disable"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type JWTConfig struct {
	Secret            string   `env:"SECRET,required"`
	AccessTokenExpiry Duration `env:"ACCESS_TOKEN_EXPIRY,default=24h"`
}

type SecurityConfig struct {
	BCryptCost        int      `env:"BCRYPT_COST,default=12"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// RewardsConfig holds the fixed point values of the task catalog and the
// login-streak milestone bonus.
type RewardsConfig struct {
	DailyTaskPoints   int64 `env:"DAILY_TASK_POINTS,default=5"`
	WeeklyTaskPoints  int64 `env:"WEEKLY_TASK_POINTS,default=10"`
	MonthlyTaskPoints int64 `env:"MONTHLY_TASK_POINTS,default=15"`
	MilestoneStreak   int   `env:"MILESTONE_STREAK,default=90"`
	MilestoneBonus    int64 `env:"MILESTONE_BONUS,default=100"`
}

// CheckoutConfig holds the points-to-currency conversion rate and the
// minimum chargeable amount the payment provider will accept.
type CheckoutConfig struct {
	PointsPerUnit        int64  `env:"POINTS_PER_UNIT,default=1000"`
	MinPayableMinorUnits int64  `env:"MIN_PAYABLE_MINOR_UNITS,default=50"`
	Currency             string `env:"CURRENCY,default=usd"`
	SuccessURL           string `env:"SUCCESS_URL,default=http://localhost:3000/payment-success"`
	CancelURL            string `env:"CANCEL_URL,default=http://localhost:3000/payment"`
}

type StripeConfig struct {
	SecretKey string `env:"SECRET_KEY,default="`
	APIBase   string `env:"API_BASE,default=https://api.stripe.com"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Validate JWT secret length
	if len(config.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if config.Checkout.PointsPerUnit <= 0 {
		return nil, fmt.Errorf("CHECKOUT_POINTS_PER_UNIT must be positive")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
