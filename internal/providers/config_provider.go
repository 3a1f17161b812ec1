package providers

import (
	"fmt"
	"odh/internal/structures"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "ODH_LOG_LEVEL")
	viper.BindEnv("upstream.baseUrl", "ODH_UPSTREAM_BASE_URL")
	viper.BindEnv("upstream.timeout", "ODH_UPSTREAM_TIMEOUT")
	viper.BindEnv("ttl.user", "ODH_TTL_USER")
	viper.BindEnv("ttl.course", "ODH_TTL_COURSE")
	viper.BindEnv("ttl.courseUsers", "ODH_TTL_COURSE_USERS")
	viper.BindEnv("cache.enabled", "ODH_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ODH_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "OutreachDashboardHelper"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
