package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"ycp/interpreter-go/pkg/driver"
)

const defaultEnvFile = ".env"

// cliConfig holds the settings read from YCP_* variables.
type cliConfig struct {
	Language  language.Tag
	LogLevel  slog.Level
	DomainDir string
	// DomainRepo is a catalog source for driver.ParseCatalogSource.
	DomainRepo string
	CacheDir   string
}

// loadConfig reads the YCP_* variables. Values in
// the process environment win over those in envFile. An explicit envFile
// must exist; the default one is optional.
func loadConfig(envFile string) (cliConfig, error) {
	fileVars, err := readEnvFile(envFile)
	if err != nil {
		return cliConfig{}, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileVars[key])
	}

	cfg := cliConfig{Language: language.English, LogLevel: slog.LevelWarn}
	if raw := lookup("YCP_LANG"); raw != "" {
		tag, err := parseLanguage(raw)
		if err != nil {
			return cliConfig{}, err
		}
		cfg.Language = tag
	}
	if raw := lookup("YCP_LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return cliConfig{}, fmt.Errorf("YCP_LOG_LEVEL: %w", err)
		}
	}
	cfg.DomainDir = lookup("YCP_DOMAIN_DIR")
	cfg.DomainRepo = lookup("YCP_DOMAIN_REPO")
	cfg.CacheDir = lookup("YCP_CACHE_DIR")
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return vars, nil
}

// parseLanguage accepts BCP 47 tags as well as POSIX locale names such as
// de_DE.UTF-8.
func parseLanguage(raw string) (language.Tag, error) {
	name, _, _ := strings.Cut(raw, ".")
	name, _, _ = strings.Cut(name, "@")
	if name == "C" || name == "POSIX" {
		return language.English, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("YCP_LANG %q: %w", raw, err)
	}
	return tag, nil
}

// catalogDir returns the directory to load catalogs from, checking out
// DomainRepo when no local directory is configured.
func (c cliConfig) catalogDir() (string, error) {
	if c.DomainDir != "" || c.DomainRepo == "" {
		return c.DomainDir, nil
	}
	src, err := driver.ParseCatalogSource(c.DomainRepo)
	if err != nil {
		return "", err
	}
	cache := c.CacheDir
	if cache == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("YCP_CACHE_DIR unset: %w", err)
		}
		cache = filepath.Join(base, "ycp", "catalogs")
	}
	return driver.CheckoutCatalogs(cache, src)
}

func (c cliConfig) logHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel})
}
