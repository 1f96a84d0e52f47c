package config

import (
	"os"
	"path/filepath"
	"time"

	"emperror.dev/errors"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const appName = "github-sync"

type GitHub struct {
	// Token is used for every write and for GraphQL queries. Reads work
	// without it, at a lower rate limit.
	Token string
	// APIURL is the REST API root. For GitHub Enterprise this is
	// https://<host>/api/v3.
	APIURL  string `mapstructure:"apiUrl"`
	Timeout time.Duration
}

type Config struct {
	GitHub GitHub
}

var GitHubSync = defaults()

func defaults() Config {
	return Config{
		GitHub: GitHub{
			APIURL:  "https://api.github.com",
			Timeout: 30 * time.Second,
		},
	}
}

// Load initializes the configuration values.
// It may optionally be called with a list of additional paths to check for the
// config file.
// Returns a boolean indicating whether or not a config file was loaded and an
// error if one occurred.
func Load(paths []string) (bool, error) {
	loaded, err := loadFromFile(paths)
	loadFromEnv()
	return loaded, err
}

func loadFromFile(paths []string) (bool, error) {
	config := viper.New()

	// Viper has support for various formats, so it supports json, toml, yaml,
	// and more (https://github.com/spf13/viper#reading-config-files).
	config.SetConfigName("config")

	config.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
	config.AddConfigPath("$HOME/.config/" + appName)
	config.AddConfigPath("$HOME/." + appName)
	config.AddConfigPath("$GITHUB_SYNC_HOME")
	for _, path := range paths {
		config.AddConfigPath(path)
	}

	if err := config.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to read config file")
	}

	if err := config.Unmarshal(&GitHubSync); err != nil {
		return true, errors.WrapIff(err, "failed to parse config file %s", config.ConfigFileUsed())
	}

	return true, nil
}

func loadFromEnv() {
	if githubToken := os.Getenv("GITHUB_SYNC_TOKEN"); githubToken != "" {
		GitHubSync.GitHub.Token = githubToken
	} else if githubToken := os.Getenv("GITHUB_TOKEN"); githubToken != "" {
		GitHubSync.GitHub.Token = githubToken
	}
}
