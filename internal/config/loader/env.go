package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "FRACTALTERM_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "FRACTALTERM_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "FRACTALTERM_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the short aliases for common settings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "FPS":       "display.fps",
		prefix + "CHARSET":   "display.charset",
		prefix + "THREADS":   "fractal.threads",
		prefix + "LOG_LEVEL": "logging.level",
		prefix + "LOG_FILE":  "logging.file",
	}
}

// Load reads environment variables and returns a configuration map.
// Mapped aliases win over the generic SECTION_KEY form.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	var mapped []string

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		if _, ok := l.mapping[name]; ok {
			mapped = append(mapped, env)
			continue
		}

		// FRACTALTERM_EXPOSURE_BIAS_POLICY -> exposure.bias_policy
		if path := l.envToPath(name); path != "" {
			setByPath(config, path, parseValue(value))
		}
	}

	for _, env := range mapped {
		name, value, _ := strings.Cut(env, "=")
		setByPath(config, l.mapping[name], parseValue(value))
	}

	return config, nil
}

// envToPath converts PREFIX_SECTION_SOME_KEY to section.some_key. Names
// without a key part return "".
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	// Inline TOML array: FRACTALTERM_FRACTAL_JULIA_SEED="[-0.4, 0.6]"
	if strings.HasPrefix(s, "[") {
		var doc struct{ V any }
		if err := toml.Unmarshal([]byte("V = "+s), &doc); err == nil {
			return doc.V
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
