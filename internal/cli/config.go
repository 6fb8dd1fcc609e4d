package cli

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	perrors "github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/integrations"
	"github.com/matzehuels/commitpin/pkg/integrations/github"
	"github.com/matzehuels/commitpin/pkg/manifest"
)

// Configuration keys.
const (
	keyGitHubUser     = "github.user"
	keyGitHubPassword = "github.password"
	keyGitHubToken    = "github.token"
	keyGitHubAPIURL   = "github.api_url"
	keyRetries        = "retries"
	keyProfiles       = "profiles"
)

// loadConfig reads the config file and environment. A missing default config
// file is not an error; a missing file named with --config is.
func (c *CLI) loadConfig() error {
	v := c.config
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Unprefixed names, as exported by existing CI setups.
	_ = v.BindEnv(keyGitHubUser, "GITHUB_USER")
	_ = v.BindEnv(keyGitHubPassword, "GITHUB_PASSWORD")
	_ = v.BindEnv(keyGitHubToken, "GITHUB_TOKEN")

	if c.configFile != "" {
		v.SetConfigFile(c.configFile)
		if err := v.ReadInConfig(); err != nil {
			return perrors.Wrap(perrors.ErrCodeConfiguration, err, "read config %s", c.configFile)
		}
		c.Logger.Debug("loaded config", "file", v.ConfigFileUsed())
		return nil
	}

	v.SetConfigName("." + appName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/" + appName)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return perrors.Wrap(perrors.ErrCodeConfiguration, err, "read config")
	}
	c.Logger.Debug("loaded config", "file", v.ConfigFileUsed())
	return nil
}

// credentials returns the configured GitHub credentials.
func (c *CLI) credentials() integrations.Credentials {
	return integrations.Credentials{
		User:     c.config.GetString(keyGitHubUser),
		Password: c.config.GetString(keyGitHubPassword),
		Token:    c.config.GetString(keyGitHubToken),
	}
}

// githubClient creates an API client from the configuration.
func (c *CLI) githubClient() *github.Client {
	creds := c.credentials()
	if creds.Anonymous() {
		c.Logger.Warn("no GitHub credentials, requests are limited to 60 per hour",
			"hint", "set GITHUB_USER and GITHUB_PASSWORD or GITHUB_TOKEN")
	} else {
		c.Logger.Debug("authenticating with GitHub", "method", creds.Method())
	}

	client := github.NewClient(creds, c.config.GetInt(keyRetries))
	if u := c.config.GetString(keyGitHubAPIURL); u != "" {
		client = client.WithBaseURL(strings.TrimSuffix(u, "/"))
	}
	return client
}

// profiles returns the package.json profiles from the config file, or nil
// for the built-in ones.
func (c *CLI) profiles() ([]manifest.Profile, error) {
	if !c.config.IsSet(keyProfiles) {
		return nil, nil
	}
	profiles := []manifest.Profile{}
	if err := c.config.UnmarshalKey(keyProfiles, &profiles); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeConfiguration, err, "decode %q", keyProfiles)
	}
	for i, p := range profiles {
		if p.Name == "" {
			return nil, perrors.New(perrors.ErrCodeConfiguration, "profile %d has no name", i)
		}
	}
	return profiles, nil
}
