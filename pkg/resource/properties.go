package resource

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

// DefaultPropertiesPath is used when PROPERTIES_FILE_PATH is not set.
const DefaultPropertiesPath = "configs/application.yml"

var envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)

// Properties holds application properties read from a YAML file, with ${ENV:default} placeholders resolved.
type Properties struct {
	v *viper.Viper
}

// PropertiesPath returns the properties file location, honouring PROPERTIES_FILE_PATH.
func PropertiesPath() string {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		return value
	}
	return DefaultPropertiesPath
}

// Load reads the YAML file at filepath and resolves environment placeholders in every string value.
func Load(filepath string) (*Properties, error) {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}

	resolvePlaceholders(v, "", v.AllSettings())
	return &Properties{v: v}, nil
}

// resolvePlaceholders walks the settings tree and overrides every placeholder value with its resolved form
func resolvePlaceholders(v *viper.Viper, prefix string, data map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch typed := value.(type) {
		case string:
			if resolved, ok := resolveEnvVariable(typed); ok {
				v.Set(fullKey, resolved)
			}
		case map[string]any:
			resolvePlaceholders(v, fullKey, typed)
		}
	}
}

// resolveEnvVariable expands a ${NAME:default} value. The second result is false when value is not a placeholder.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value, false
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue, true
	}
	return matches[2], true
}

func (p *Properties) IsSet(key string) bool {
	return p.v.IsSet(key)
}

func (p *Properties) GetString(key string) string {
	return p.v.GetString(key)
}

func (p *Properties) GetBool(key string) bool {
	return p.v.GetBool(key)
}

func (p *Properties) GetDuration(key string) time.Duration {
	return p.v.GetDuration(key)
}

func (p *Properties) GetInt(key string) int {
	return p.v.GetInt(key)
}

func (p *Properties) GetFloat64(key string) float64 {
	return p.v.GetFloat64(key)
}

// UnmarshalKey decodes a sub-tree (for example a list of maps) into target.
func (p *Properties) UnmarshalKey(key string, target any) error {
	return p.v.UnmarshalKey(key, target)
}
