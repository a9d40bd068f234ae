package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "yatube-dev-secret-change-in-production"

// AppConfig holds environment driven configuration values.
// Sensitive data should be provided via config/config.json or the environment.
type AppConfig struct {
	AppPort string
	AppEnv  string
	// Signing key for session tokens
	JWTSecret string
	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis backs the page cache and the token blacklist
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Feed
	PagePerPage       int
	PostSymbols       int
	IndexCacheSeconds int
	// Media storage for post images
	MediaRoot   string
	MaxUploadMB int
	// Paths
	LoginURL string
	// HTTP surface
	AllowedOrigins     []string
	RateLimitPerMinute int
	AdminUsernames     []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// binding maps a grouped config.json key onto its environment variable and default.
type binding struct {
	key string
	env string
	def any
}

var bindings = []binding{
	{"app.port", "APP_PORT", "8080"},
	{"app.env", "APP_ENV", "development"},
	{"app.jwtsecret", "JWT_SECRET", DefaultJWTSecret},
	{"app.allowedorigins", "ALLOWED_ORIGINS", []string{"*"}},
	{"app.ratelimitperminute", "RATE_LIMIT_PER_MINUTE", 60},
	{"app.adminusernames", "ADMIN_USERNAMES", []string{}},
	{"app.loginurl", "LOGIN_URL", "/auth/login/"},
	{"database.driver", "DB_DRIVER", "mysql"},
	{"database.uri", "DATABASE_URI", ""},
	{"database.host", "DB_HOST", "127.0.0.1"},
	{"database.port", "DB_PORT", "3306"},
	{"database.user", "DB_USER", "root"},
	{"database.password", "DB_PASSWORD", ""},
	{"database.name", "DB_NAME", "yatube"},
	{"redis.host", "REDIS_HOST", "127.0.0.1"},
	{"redis.port", "REDIS_PORT", 6379},
	{"redis.db", "REDIS_DB", 0},
	{"redis.password", "REDIS_PASSWORD", ""},
	{"feed.pageperpage", "PAGE_PER_PAGE", 10},
	{"feed.postsymbols", "POST_SYMBOLS", 15},
	{"feed.indexcacheseconds", "INDEX_CACHE_SECONDS", 20},
	{"media.root", "MEDIA_ROOT", "media"},
	{"media.maxuploadmb", "MAX_UPLOAD_MB", 5},
	{"gin.mode", "GIN_MODE", "release"},
	{"gin.logpath", "GIN_PATH", "logs/go_gin.log"},
	{"log.level", "LOG_LEVEL", "info"},
	{"log.path", "LOG_PATH", ""},
	{"log.maxsizemb", "LOG_MAX_SIZE_MB", 100},
	{"log.maxbackups", "LOG_MAX_BACKUPS", 3},
	{"log.maxagedays", "LOG_MAX_AGE_DAYS", 7},
	{"log.compress", "LOG_COMPRESS", false},
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}
	c, err := LoadFrom(filepath.Join("config", "config.json"))
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	cfg = c
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Set replaces the cached configuration. Tests and tools that build their own AppConfig use it.
func Set(c AppConfig) {
	cfg = c
	loaded = true
}

// LoadFrom reads path (missing file is fine), applies defaults and environment overrides.
// Precedence: defaults -> json file -> environment.
func LoadFrom(path string) (AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return AppConfig{}, err
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	c := AppConfig{
		AppPort:            v.GetString("app.port"),
		AppEnv:             strings.ToLower(v.GetString("app.env")),
		JWTSecret:          v.GetString("app.jwtsecret"),
		AllowedOrigins:     listValue(v, "app.allowedorigins"),
		RateLimitPerMinute: v.GetInt("app.ratelimitperminute"),
		AdminUsernames:     listValue(v, "app.adminusernames"),
		LoginURL:           v.GetString("app.loginurl"),
		DBDriver:           strings.ToLower(v.GetString("database.driver")),
		DatabaseURI:        v.GetString("database.uri"),
		DBHost:             v.GetString("database.host"),
		DBPort:             v.GetString("database.port"),
		DBUser:             v.GetString("database.user"),
		DBPassword:         v.GetString("database.password"),
		DBName:             v.GetString("database.name"),
		RedisHost:          v.GetString("redis.host"),
		RedisPort:          v.GetInt("redis.port"),
		RedisDB:            v.GetInt("redis.db"),
		RedisPassword:      v.GetString("redis.password"),
		PagePerPage:        v.GetInt("feed.pageperpage"),
		PostSymbols:        v.GetInt("feed.postsymbols"),
		IndexCacheSeconds:  v.GetInt("feed.indexcacheseconds"),
		MediaRoot:          v.GetString("media.root"),
		MaxUploadMB:        v.GetInt("media.maxuploadmb"),
		GinMode:            v.GetString("gin.mode"),
		GinPath:            v.GetString("gin.logpath"),
		LogLevel:           v.GetString("log.level"),
		LogPath:            v.GetString("log.path"),
		LogMaxSizeMB:       v.GetInt("log.maxsizemb"),
		LogMaxBackups:      v.GetInt("log.maxbackups"),
		LogMaxAgeDays:      v.GetInt("log.maxagedays"),
		LogCompress:        v.GetBool("log.compress"),
	}
	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

// Validate checks values the application cannot run without.
func (c AppConfig) Validate() error {
	if c.AppPort == "" {
		return errors.New("APP_PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.AppEnv == "production" && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be changed from the default value in production")
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.PagePerPage <= 0 {
		return errors.New("PAGE_PER_PAGE must be positive")
	}
	if c.PostSymbols <= 0 {
		return errors.New("POST_SYMBOLS must be positive")
	}
	return nil
}

// IsAdmin reports whether username is configured as an admin (case-insensitive).
func (c AppConfig) IsAdmin(username string) bool {
	uname := strings.TrimSpace(username)
	if uname == "" {
		return false
	}
	for _, u := range c.AdminUsernames {
		if strings.EqualFold(strings.TrimSpace(u), uname) {
			return true
		}
	}
	return false
}

// listValue accepts both json arrays and comma separated env values.
func listValue(v *viper.Viper, key string) []string {
	raw := v.GetStringSlice(key)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
