package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// envFiles are read from the configuration directory. The first file to set a
// variable wins and the process environment always takes precedence.
var envFiles = []string{".env.local", ".env"}

// envReference matches ${NAME} and its escaped form $${NAME}. A bare $ is
// left alone: the file holds prose such as "from $5 per month".
var envReference = regexp.MustCompile(`\$?\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the YAML site file at configPath and builds it. ${VAR}
// references are expanded before decoding from the process environment,
// falling back to .env.local and then .env next to the configuration. The
// .env files are read on every call and never written to the process
// environment, so edits to them take effect on the next Load.
func Load(configPath string, opts ...BuildOption) (*SiteConfig, error) {
	env, err := readEnvFiles(filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).
				WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	decl, err := Decode(bytes.NewReader(expandEnv(data, env)))
	if err != nil {
		return nil, err
	}
	return BuildConfig(decl, opts...)
}

// expandEnv replaces ${NAME} with its value and $${NAME} with the literal
// ${NAME}. Unset names expand to the empty string.
func expandEnv(data []byte, fileEnv map[string]string) []byte {
	return envReference.ReplaceAllFunc(data, func(m []byte) []byte {
		if bytes.HasPrefix(m, []byte("$$")) {
			return m[1:]
		}
		name := string(m[2 : len(m)-1])
		if v, ok := os.LookupEnv(name); ok {
			return []byte(v)
		}
		return []byte(fileEnv[name])
	})
}

// readEnvFiles merges the .env files of dir, earlier files winning.
func readEnvFiles(dir string) (map[string]string, error) {
	env := make(map[string]string)
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		vars, err := godotenv.Read(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				WithContext("path", path).Fatal().UserAction().Build()
		}
		for k, v := range vars {
			if _, seen := env[k]; !seen {
				env[k] = v
			}
		}
		slog.Debug("Loaded environment variables", logfields.Path(path), logfields.Count(len(vars)))
	}
	return env, nil
}

// Decode parses a site declaration. Unknown keys are rejected so that a
// misspelled option never silently falls back to its default.
func Decode(r io.Reader) (*SiteConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var decl SiteConfig
	if err := dec.Decode(&decl); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.ConfigError("configuration file is empty").Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode configuration").
			Fatal().UserAction().Build()
	}
	return &decl, nil
}
