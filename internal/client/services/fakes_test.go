package services

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/autodate/stampctl/internal/client/api"
	"github.com/autodate/stampctl/internal/client/history"
	"github.com/autodate/stampctl/internal/client/intake"
	"github.com/autodate/stampctl/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewCharmLogger(log.New(io.Discard))
}

// fakeClient implements api.Client with scripted results.
type fakeClient struct {
	loginErr  error
	signupErr error
	logoutErr error
	topupErr  error

	statusRet api.Status
	statusErr error

	stampBody []byte
	stampErr  error

	statusCalls int
	stampCalls  int

	token    string
	restored []string

	lastFiles  []intake.FileRef
	lastParams api.Params
}

func (f *fakeClient) Login(ctx context.Context, email, password string) error { return f.loginErr }
func (f *fakeClient) Signup(ctx context.Context, email, password string) error {
	return f.signupErr
}
func (f *fakeClient) Logout(ctx context.Context) error    { return f.logoutErr }
func (f *fakeClient) TopUpDemo(ctx context.Context) error { return f.topupErr }

func (f *fakeClient) Status(ctx context.Context) (api.Status, error) {
	f.statusCalls++
	return f.statusRet, f.statusErr
}

func (f *fakeClient) Stamp(ctx context.Context, files []intake.FileRef, params api.Params) (io.ReadCloser, error) {
	f.stampCalls++
	f.lastFiles = files
	f.lastParams = params
	if f.stampErr != nil {
		return nil, f.stampErr
	}
	return io.NopCloser(bytes.NewReader(f.stampBody)), nil
}

func (f *fakeClient) SessionToken() string { return f.token }

func (f *fakeClient) RestoreSession(token string) error {
	f.restored = append(f.restored, token)
	return nil
}

type notice struct {
	msg string
	ok  bool
}

type fakeNotifier struct {
	notices []notice
}

func (f *fakeNotifier) Notify(message string, ok bool) {
	f.notices = append(f.notices, notice{msg: message, ok: ok})
}

func (f *fakeNotifier) last() (notice, bool) {
	if len(f.notices) == 0 {
		return notice{}, false
	}
	return f.notices[len(f.notices)-1], true
}

type fakeProgress struct {
	events []string
}

func (f *fakeProgress) Show(message string)       { f.events = append(f.events, "show:"+message) }
func (f *fakeProgress) SetMessage(message string) { f.events = append(f.events, "set:"+message) }
func (f *fakeProgress) Hide()                     { f.events = append(f.events, "hide") }
func (f *fakeProgress) HideAfter(d time.Duration) { f.events = append(f.events, "hideafter") }

type fakeMeta struct {
	values map[string][]byte
}

func newFakeMeta() *fakeMeta { return &fakeMeta{values: map[string][]byte{}} }

func (f *fakeMeta) Get(ctx context.Context, key string) ([]byte, error) {
	return f.values[key], nil
}

func (f *fakeMeta) Set(ctx context.Context, key string, value []byte) error {
	f.values[key] = value
	return nil
}

func (f *fakeMeta) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

type fakeJobs struct {
	added []*history.Job
}

func (f *fakeJobs) Add(ctx context.Context, job *history.Job) error {
	f.added = append(f.added, job)
	return nil
}

func (f *fakeJobs) List(ctx context.Context, limit int) ([]*history.Job, error) {
	return f.added, nil
}
