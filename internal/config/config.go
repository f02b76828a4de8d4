// Package config resolves gitlab-toolbox settings from CLI flags, environment
// variables, and glab CLI config files, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no instance URL is configured anywhere.
const DefaultBaseURL = "https://gitlab.com"

// Environment variables consulted for the instance URL and token. Order
// matters: the first non-empty value wins. The list mirrors what glab and
// GitLab CI expose.
var (
	urlEnvVars = []string{"GITLAB_URL", "CI_SERVER_URL"} //nolint:gochecknoglobals // Fixed lookup order

	tokenEnvVars = []string{ //nolint:gochecknoglobals // Fixed lookup order
		"GITLAB_TOKEN",
		"GL_TOKEN",
		"CI_JOB_TOKEN",
		"CI_API_TOKEN",
		"GITLAB_ACCESS_TOKEN",
	}
)

// Settings holds the resolved connection configuration.
type Settings struct {
	// BaseURL is the GitLab instance URL without a trailing slash.
	BaseURL string

	// Token is the personal access token, empty for anonymous access.
	Token string
}

// Resolve merges flag values, environment variables, and glab config files
// into final settings. flagURL and flagToken come from the CLI and override
// everything; lookupEnv is injectable for tests (pass os.LookupEnv).
func Resolve(flagURL, flagToken string, lookupEnv func(string) (string, bool)) Settings {
	s := Settings{
		BaseURL: strings.TrimRight(flagURL, "/"),
		Token:   flagToken,
	}

	if s.BaseURL == "" {
		s.BaseURL = strings.TrimRight(firstEnv(lookupEnv, urlEnvVars), "/")
	}
	if s.Token == "" {
		s.Token = firstEnv(lookupEnv, tokenEnvVars)
	}

	// Fall back to glab config for whichever value is still missing.
	if s.BaseURL == "" || s.Token == "" {
		cfgURL, cfgToken := readGlabConfig(glabConfigPaths())
		if s.BaseURL == "" {
			s.BaseURL = cfgURL
		}
		if s.Token == "" {
			s.Token = cfgToken
		}
	}

	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	return s
}

func firstEnv(lookupEnv func(string) (string, bool), names []string) string {
	for _, name := range names {
		if v, ok := lookupEnv(name); ok && v != "" {
			return v
		}
	}
	return ""
}

// glabConfigPaths returns the candidate glab config file locations, most
// specific first.
func glabConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "glab-cli", "config.yml"),
		filepath.Join(home, ".glab-cli", "config.yml"),
	}
}

type glabConfig struct {
	Host  string              `yaml:"host"`
	Hosts map[string]glabHost `yaml:"hosts"`
}

type glabHost struct {
	Token       string `yaml:"token"`
	APIProtocol string `yaml:"api_protocol"`
	APIHost     string `yaml:"api_host"`
}

// readGlabConfig extracts a base URL and token from the first readable glab
// config file. Hosts carrying a token are preferred over the default host;
// among several, the default host wins, then lexicographic order so the
// result is stable.
func readGlabConfig(paths []string) (string, string) {
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // Fixed well-known config locations
		if err != nil {
			continue
		}

		var cfg glabConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			continue
		}

		defaultHost := cfg.Host
		if defaultHost == "" {
			defaultHost = "gitlab.com"
		}

		if host, ok := cfg.Hosts[defaultHost]; ok && strings.TrimSpace(host.Token) != "" {
			return hostBaseURL(defaultHost, host), host.Token
		}

		names := make([]string, 0, len(cfg.Hosts))
		for name := range cfg.Hosts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			host := cfg.Hosts[name]
			if strings.TrimSpace(host.Token) != "" {
				return hostBaseURL(name, host), host.Token
			}
		}

		if host, ok := cfg.Hosts[defaultHost]; ok {
			return hostBaseURL(defaultHost, host), ""
		}
	}
	return "", ""
}

func hostBaseURL(name string, host glabHost) string {
	protocol := host.APIProtocol
	if protocol == "" {
		protocol = "https"
	}
	apiHost := host.APIHost
	if apiHost == "" {
		apiHost = name
	}
	return protocol + "://" + apiHost
}
