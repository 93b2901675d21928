// Package services contains the application services of the stampctl client:
// the session service (auth operations and the displayed credit state) and
// the stamp job service (multipart submission and artifact download).
package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/autodate/stampctl/internal/client/api"
	"github.com/autodate/stampctl/internal/client/history"
	"github.com/autodate/stampctl/internal/logging"
)

// Notifier shows a transient user-visible message, styled by ok.
type Notifier interface {
	Notify(message string, ok bool)
}

// ProgressIndicator is the in-flight indicator for a stamp job.
type ProgressIndicator interface {
	Show(message string)
	SetMessage(message string)
	Hide()
	HideAfter(d time.Duration)
}

// Placeholders shown when the status query fails (e.g. unauthenticated).
const (
	CreditsPlaceholder = "?"
	PricePlaceholder   = "–"
)

// SessionService performs the typed auth operations and keeps the displayed
// credit balance and price reconciled with the server. Interactive failures
// surface as notices; the passive status refresh never does, it degrades to
// the placeholders instead.
type SessionService struct {
	client   api.Client
	meta     history.MetadataRepository
	notifier Notifier
	logger   logging.Logger

	mu      sync.Mutex
	credits string
	price   string
	authed  bool
}

func NewSessionService(client api.Client, meta history.MetadataRepository, notifier Notifier, logger logging.Logger) *SessionService {
	return &SessionService{
		client:   client,
		meta:     meta,
		notifier: notifier,
		logger:   logger,
		credits:  CreditsPlaceholder,
		price:    PricePlaceholder,
	}
}

// Restore installs a session cookie persisted by a previous run, if any.
func (s *SessionService) Restore(ctx context.Context) {
	token, err := s.meta.Get(ctx, history.MetadataKeySession)
	if err != nil {
		s.logger.Warn(ctx, "read saved session", "err", err)
		return
	}
	if len(token) == 0 {
		return
	}
	if err := s.client.RestoreSession(string(token)); err != nil {
		s.logger.Warn(ctx, "restore saved session", "err", err)
	}
}

func (s *SessionService) persistSession(ctx context.Context) {
	token := s.client.SessionToken()
	var err error
	if token == "" {
		err = s.meta.Delete(ctx, history.MetadataKeySession)
	} else {
		err = s.meta.Set(ctx, history.MetadataKeySession, []byte(token))
	}
	if err != nil {
		s.logger.Warn(ctx, "persist session", "err", err)
	}
}

// Login authenticates and, on success, refreshes the displayed status.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	if err := s.client.Login(ctx, email, password); err != nil {
		s.notifier.Notify(api.UserMessage(err), false)
		return err
	}
	s.notifier.Notify("Logged in", true)
	s.persistSession(ctx)
	s.RefreshStatus(ctx)
	return nil
}

// Signup creates an account. It does not establish a session.
func (s *SessionService) Signup(ctx context.Context, email, password string) error {
	if err := s.client.Signup(ctx, email, password); err != nil {
		s.notifier.Notify(api.UserMessage(err), false)
		return err
	}
	s.notifier.Notify("Account created. You can login now.", true)
	return nil
}

// Logout invalidates the session and drops the persisted cookie.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		s.notifier.Notify(api.UserMessage(err), false)
		return err
	}
	s.notifier.Notify("Logged out", true)
	if err := s.client.RestoreSession(""); err != nil {
		s.logger.Warn(ctx, "clear session", "err", err)
	}
	s.persistSession(ctx)
	s.RefreshStatus(ctx)
	return nil
}

// TopUpDemo adds demo credits. The endpoint is optional infrastructure;
// any failure is reported with a fixed message and the server detail is
// discarded.
func (s *SessionService) TopUpDemo(ctx context.Context) error {
	if err := s.client.TopUpDemo(ctx); err != nil {
		s.notifier.Notify("Demo top-up not enabled", false)
		return err
	}
	s.notifier.Notify("Added 5 demo credits", true)
	s.RefreshStatus(ctx)
	return nil
}

// RefreshStatus queries the session status and updates the displayed
// balance. It runs at every significant transition and must never raise a
// blocking error: on failure the display degrades to the placeholders.
func (s *SessionService) RefreshStatus(ctx context.Context) {
	st, err := s.client.Status(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Debug(ctx, "status refresh failed", "err", err)
		s.credits = CreditsPlaceholder
		s.price = PricePlaceholder
		s.authed = false
		return
	}
	s.credits = strconv.Itoa(st.Credits)
	if st.CreditCostGBP == api.PriceUnknown {
		s.price = PricePlaceholder
	} else {
		s.price = fmt.Sprintf("£%.2f", st.CreditCostGBP)
	}
	s.authed = true
}

// CreditsDisplay returns the credit balance and price as last reconciled.
func (s *SessionService) CreditsDisplay() (credits, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credits, s.price
}

// Authenticated reports whether the last status refresh succeeded.
func (s *SessionService) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}
