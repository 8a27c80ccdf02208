package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Cache struct {
		TTL time.Duration `yaml:"ttl" default:"5m"`
		Dir string        `yaml:"dir" default:"data/cache"`
		// InMemory skips the on-disk store entirely (useful for tests and
		// ephemeral deployments).
		InMemory bool `yaml:"in_memory" default:"false"`
	} `yaml:"cache"`

	RateLimit struct {
		MaxRequests int           `yaml:"max_requests" default:"10"`
		Window      time.Duration `yaml:"window" default:"1s"`
	} `yaml:"rate_limit"`

	Throttle struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" default:"20"`
		Burst             int     `yaml:"burst" default:"40"`
	} `yaml:"throttle"`

	Pagination struct {
		PageSize    int `yaml:"page_size" default:"20"`
		MaxPageSize int `yaml:"max_page_size" default:"100"`
	} `yaml:"pagination"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	// Expand ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	// Expand $VAR syntax
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Cache.TTL = 5 * time.Minute
	config.Cache.Dir = "data/cache"

	config.RateLimit.MaxRequests = 10
	config.RateLimit.Window = time.Second

	config.Throttle.RequestsPerSecond = 20
	config.Throttle.Burst = 40

	config.Pagination.PageSize = 20
	config.Pagination.MaxPageSize = 100

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Cache.TTL = d
		}
	}

	if dir := os.Getenv("CACHE_DIR"); dir != "" {
		c.Cache.Dir = dir
	}

	if inMemory := os.Getenv("CACHE_IN_MEMORY"); inMemory != "" {
		c.Cache.InMemory = inMemory == "true" || inMemory == "1"
	}

	if maxRequests := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); maxRequests != "" {
		if n, err := strconv.Atoi(maxRequests); err == nil {
			c.RateLimit.MaxRequests = n
		}
	}

	if window := os.Getenv("RATE_LIMIT_WINDOW"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			c.RateLimit.Window = d
		}
	}

	if rps := os.Getenv("THROTTLE_RPS"); rps != "" {
		if f, err := strconv.ParseFloat(rps, 64); err == nil {
			c.Throttle.RequestsPerSecond = f
		}
	}

	if burst := os.Getenv("THROTTLE_BURST"); burst != "" {
		if n, err := strconv.Atoi(burst); err == nil {
			c.Throttle.Burst = n
		}
	}

	if pageSize := os.Getenv("PAGE_SIZE"); pageSize != "" {
		if n, err := strconv.Atoi(pageSize); err == nil {
			c.Pagination.PageSize = n
		}
	}

	if maxPageSize := os.Getenv("MAX_PAGE_SIZE"); maxPageSize != "" {
		if n, err := strconv.Atoi(maxPageSize); err == nil {
			c.Pagination.MaxPageSize = n
		}
	}
}
