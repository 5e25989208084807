package config

// Config is the full configuration tree, validated as a whole by Load.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig configures the HTTP listener and logging.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig configures the Postgres connection pool.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`

	// Connection pool sizing. The defaults suit a single server
	// instance in front of a small Postgres.
	MaxOpenConns           int `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig configures token issuance and password hashing.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the validity window of access tokens.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// RefreshTokenLifetimeMinutes is the validity window of refresh
	// tokens. It should be much longer than the access token lifetime.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`

	// BCryptCost is the work factor for password hashing. Values
	// outside bcrypt's supported range fail validation.
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}
