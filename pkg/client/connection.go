package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
)

// ApiConnectionDetails carries everything needed to reach the quantum
// service. Token is a bearer credential; it is resolved from the --token
// flag, the QRNG_TOKEN environment variable, or the config file, and is
// never embedded in source.
type ApiConnectionDetails struct {
	ServiceUrl string
	Token      string
}

type ConnectionDetails func() *ApiConnectionDetails

// Connect validates the credential and returns a handle to the quantum
// service. The token is verified against the service immediately; a missing
// or rejected token fails with ErrAuthenticationFailed. No retry: an
// authentication failure is fatal and propagates to the top level.
func Connect(ctx context.Context, config *ApiConnectionDetails) (*ServiceClient, error) {
	if strings.TrimSpace(config.Token) == "" {
		return nil, errors.WithStack(&qrngerrors.ErrAuthenticationFailed{
			Message: "no API token provided; pass --token, set QRNG_TOKEN, or add token to the config file",
		})
	}
	c := &ServiceClient{
		serviceUrl: strings.TrimRight(config.ServiceUrl, "/"),
		token:      config.Token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	account, err := c.Account(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("Authenticated with quantum service at %s (plan: %s, remaining allowance: %ds)",
		c.serviceUrl, account.Plan, account.RemainingSeconds)
	return c, nil
}

// WithServiceClient runs action with a connected service handle.
func WithServiceClient(ctx context.Context, config *ApiConnectionDetails, action func(*ServiceClient) error) error {
	c, err := Connect(ctx, config)
	if err != nil {
		return err
	}
	return action(c)
}
