package configparser

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadYamlFile exports every scalar of the YAML file as an environment variable named
// after its path (database.host -> DATABASE_HOST). Values may reference the
// environment as ${VAR} or ${VAR:-default}. Variables already set are left untouched.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not read YAML file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("could not parse YAML file: %w", err)
	}

	vars := make(map[string]string)
	flatten("", doc, vars)

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, expand(vars[key])); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}
	return nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			out[key] = strings.Join(parts, ",")
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// expand substitutes ${VAR} and ${VAR:-default}. An empty variable takes the default.
func expand(value string) string {
	if !strings.Contains(value, "${") {
		return value
	}
	return os.Expand(value, func(name string) string {
		name, def, _ := strings.Cut(name, ":-")
		if v := os.Getenv(strings.TrimSpace(name)); v != "" {
			return v
		}
		return def
	})
}
