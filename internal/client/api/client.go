// Package api is the HTTP transport client for the timestamp service.
// It owns the session credential (a cookie jar), converts non-2xx responses
// into typed errors carrying the server's message, and keeps the JSON-vs-raw
// decision explicit per endpoint: the auth endpoints are JSON, the stamp
// endpoint is a binary zip stream.
package api

import (
	"context"
	"io"

	"github.com/autodate/stampctl/internal/client/intake"
)

// PriceUnknown is the sentinel price when the server omits credit_cost_gbp.
const PriceUnknown = -1

// Status is the session view the client reads: the credit balance and the
// per-job price for display.
type Status struct {
	Credits       int     `json:"credits"`
	CreditCostGBP float64 `json:"credit_cost_gbp"`
}

// Params are the scalar stamp-job fields. All values travel as strings;
// the server is authoritative on their correctness. Each field is trimmed
// of surrounding whitespace before submission.
type Params struct {
	Date       string
	StartTime  string
	EndTime    string
	CropHeight string
}

// Client defines the operations the CLI performs against the service.
// All methods honor context cancellation and deadlines.
type Client interface {
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	TopUpDemo(ctx context.Context) error
	Status(ctx context.Context) (Status, error)

	// Stamp submits a multipart job and returns the response body as a raw
	// zip stream. The caller owns the returned reader and must close it.
	Stamp(ctx context.Context, files []intake.FileRef, params Params) (io.ReadCloser, error)

	// SessionToken serializes the current session cookie for persistence;
	// RestoreSession installs a previously saved token (empty clears it).
	SessionToken() string
	RestoreSession(token string) error
}
