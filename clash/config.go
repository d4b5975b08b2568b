package clash

import (
	"fmt"
	"strings"
)

// Configuration keys read by the client on every call.
const (
	KeyAPIURL     = "ClashAPI"
	KeyAPIVersion = "ApiVersion"
	KeyAPIToken   = "ApiToken"
)

// ConfigProvider answers string-keyed configuration lookups.
type ConfigProvider interface {
	Value(key string) (string, bool)
}

// MapConfig is an in-memory ConfigProvider with case-insensitive keys.
type MapConfig map[string]string

// Value implements ConfigProvider. Blank values count as missing.
func (m MapConfig) Value(key string) (string, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			v = strings.TrimSpace(v)
			return v, v != ""
		}
	}
	return "", false
}

type endpointConfig struct {
	baseURL string
	version string
	token   string
}

func resolveConfig(p ConfigProvider) (endpointConfig, error) {
	var cfg endpointConfig
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyAPIURL, &cfg.baseURL},
		{KeyAPIVersion, &cfg.version},
		{KeyAPIToken, &cfg.token},
	} {
		v, ok := p.Value(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			return cfg, NewError(ErrorTypeConfiguration, fmt.Sprintf("missing configuration value %q", f.key)).WithContext("key", f.key)
		}
		*f.dst = strings.TrimSpace(v)
	}
	return cfg, nil
}
