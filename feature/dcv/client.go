package dcv

import (
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client talks to the domain-validation API over a pre-authenticated
// transport (see core/session).
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// NewClient wraps an authenticated resty client. A nil logger disables
// logging.
func NewClient(http *resty.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: http, log: log}
}
