package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type UpstreamConfig struct {
	BaseURL string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
}

// TTLConfig holds per-resource freshness windows. User data expires fastest
// (new users query right after enrolling), course metadata slowest.
type TTLConfig struct {
	User        time.Duration `yaml:"user" validate:"required|min:1"`
	Course      time.Duration `yaml:"course" validate:"required|min:1"`
	CourseUsers time.Duration `yaml:"courseUsers" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type PreloadConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Courses  []string      `yaml:"courses"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Upstream  UpstreamConfig `yaml:"upstream"`
	TTL       TTLConfig      `yaml:"ttl"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Preload   PreloadConfig  `yaml:"preload"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
