package session

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akamai/AkamaiOPEN-edgegrid-golang/v9/pkg/edgegrid"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// New builds a resty client whose requests are signed with the EdgeGrid
// credentials from the configured .edgerc file. The client's base URL is the
// host named by the credentials.
func New(cfg Config) (*resty.Client, error) {
	path := cfg.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for .edgerc: %w", err)
		}
		path = filepath.Join(home, ".edgerc")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf(".edgerc file not found at %s: %w", path, err)
	}

	edge, err := edgegrid.New(
		edgegrid.WithFile(path),
		edgegrid.WithSection(cfg.Section),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load EdgeGrid credentials (section %q): %w", cfg.Section, err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = int(defaultTimeout / time.Second)
	}

	client := resty.New()
	client.SetBaseURL("https://" + edge.Host)
	client.SetTimeout(time.Duration(timeout) * time.Second)
	client.SetRetryCount(0)
	client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		edge.SignRequest(req)
		return nil
	})

	if cfg.AccountSwitchKey != "" {
		client.SetQueryParam("accountSwitchKey", cfg.AccountSwitchKey)
	}

	return client, nil
}
