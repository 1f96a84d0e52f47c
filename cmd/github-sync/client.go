package main

import (
	"context"

	"github.com/matomo-org/github-sync/internal/config"
	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/sirupsen/logrus"
)

// newClient returns a client for the configured API and the write credential,
// which is nil when no token is configured.
func newClient(ctx context.Context) (*gh.Client, *gh.Credential) {
	cred := gh.NewCredential(ctx, config.GitHubSync.GitHub.Token)
	if cred == nil {
		logrus.Debug("no GitHub token configured, writes will be skipped")
	}
	client := gh.NewClient(gh.ClientOpts{
		APIURL:     config.GitHubSync.GitHub.APIURL,
		Timeout:    config.GitHubSync.GitHub.Timeout,
		Credential: cred,
	})
	return client, cred
}
