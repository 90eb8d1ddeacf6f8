package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FromFile loads path, choosing the decoder by extension.
func FromFile(path string, opts ...Option) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data, opts...)
	case ".json":
		return FromJSON(data, opts...)
	case ".env":
		return FromDotenv(data, opts...)
	default:
		return Config{}, fmt.Errorf("read config %s: unsupported extension %q", path, ext)
	}
}

// FromYAML decodes a YAML mapping.
func FromYAML(data []byte, opts ...Option) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m, opts...), nil
}

// FromJSON decodes a JSON object. Numbers decode as float64.
func FromJSON(data []byte, opts ...Option) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m, opts...), nil
}

// FromDotenv decodes KEY=value lines. Every value is a string.
func FromDotenv(data []byte, opts ...Option) (Config, error) {
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("parse dotenv: %w", err)
	}
	m := make(map[string]any, len(env))
	for k, v := range env {
		m[k] = v
	}
	return New(m, opts...), nil
}

// Variables reads dotenv files into a variable set for expansion.
// Later files override earlier ones.
func Variables(paths ...string) (map[string]string, error) {
	vars := make(map[string]string)
	for _, p := range paths {
		env, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("read variables %s: %w", p, err)
		}
		maps.Copy(vars, env)
	}
	return vars, nil
}
