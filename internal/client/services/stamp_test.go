package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autodate/stampctl/internal/client/api"
	"github.com/autodate/stampctl/internal/client/history"
	"github.com/autodate/stampctl/internal/client/intake"
)

type stampFixture struct {
	client   *fakeClient
	notifier *fakeNotifier
	progress *fakeProgress
	refresh  *fakeRefresher
	jobs     *fakeJobs
	service  *StampService
	dir      string
}

type fakeRefresher struct {
	calls int
}

func (f *fakeRefresher) RefreshStatus(ctx context.Context) { f.calls++ }

func newStampFixture(t *testing.T, client *fakeClient) *stampFixture {
	t.Helper()
	f := &stampFixture{
		client:   client,
		notifier: &fakeNotifier{},
		progress: &fakeProgress{},
		refresh:  &fakeRefresher{},
		jobs:     &fakeJobs{},
		dir:      t.TempDir(),
	}
	f.service = NewStampService(client, f.notifier, f.progress, f.refresh, f.jobs, f.dir, discardLogger())
	return f
}

func someFiles() []intake.FileRef {
	return []intake.FileRef{
		{Name: "a.png", Size: 2048, Path: "a.png"},
		{Name: "b.png", Size: 100, Path: "b.png"},
	}
}

func someParams() api.Params {
	return api.Params{
		Date:       "01/01/2024",
		StartTime:  "09:00:00",
		EndTime:    "09:05:00",
		CropHeight: "100",
	}
}

func TestSubmit_EmptySelectionFailsLocally(t *testing.T) {
	f := newStampFixture(t, &fakeClient{})

	_, err := f.service.Submit(context.Background(), nil, someParams())
	require.ErrorIs(t, err, api.ErrEmptySelection)

	// No network call, no progress, just the validation notice.
	require.Zero(t, f.client.stampCalls)
	require.Empty(t, f.progress.events)
	last, ok := f.notifier.last()
	require.True(t, ok)
	require.Equal(t, "Please add images or a .zip", last.msg)
	require.False(t, last.ok)
}

func TestSubmit_SuccessDownloadsArchive(t *testing.T) {
	f := newStampFixture(t, &fakeClient{stampBody: []byte("PK-zip-bytes")})

	dest, err := f.service.Submit(context.Background(), someFiles(), someParams())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.dir, DownloadName), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "PK-zip-bytes", string(data))

	// Processing… → Done → hidden after the fixed delay.
	require.Equal(t, []string{"show:Processing…", "set:Done", "hideafter"}, f.progress.events)

	// The job consumed a credit; the balance display was refreshed.
	require.Equal(t, 1, f.refresh.calls)

	last, ok := f.notifier.last()
	require.True(t, ok)
	require.True(t, last.ok)
	require.Equal(t, "Saved "+DownloadName, last.msg)

	require.Len(t, f.jobs.added, 1)
	job := f.jobs.added[0]
	require.Equal(t, history.OutcomeOK, job.Outcome)
	require.Equal(t, 2, job.FileCount)
	require.Equal(t, "01/01/2024", job.Date)
}

func TestSubmit_NoTempFileLeftBehind(t *testing.T) {
	f := newStampFixture(t, &fakeClient{stampBody: []byte("zip")})

	_, err := f.service.Submit(context.Background(), someFiles(), someParams())
	require.NoError(t, err)

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, DownloadName, entries[0].Name())
}

func TestSubmit_ServerErrorHidesProgressImmediately(t *testing.T) {
	f := newStampFixture(t, &fakeClient{stampErr: api.NewStatusError(402, "Insufficient credits")})

	_, err := f.service.Submit(context.Background(), someFiles(), someParams())
	require.Error(t, err)

	require.Equal(t, []string{"show:Processing…", "hide"}, f.progress.events)

	last, ok := f.notifier.last()
	require.True(t, ok)
	require.Equal(t, "Insufficient credits", last.msg)
	require.False(t, last.ok)

	// No download was triggered.
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	// No refresh either; the job did not consume a credit.
	require.Zero(t, f.refresh.calls)

	require.Len(t, f.jobs.added, 1)
	require.Equal(t, history.OutcomeError, f.jobs.added[0].Outcome)
	require.Equal(t, "Insufficient credits", f.jobs.added[0].Detail)
}

func TestSubmit_ParamsRecordedTrimmed(t *testing.T) {
	f := newStampFixture(t, &fakeClient{stampBody: []byte("zip")})

	params := api.Params{Date: " 01/01/2024 ", StartTime: "09:00:00", EndTime: "09:05:00", CropHeight: " 100"}
	_, err := f.service.Submit(context.Background(), someFiles(), params)
	require.NoError(t, err)

	require.Len(t, f.jobs.added, 1)
	require.Equal(t, "01/01/2024", f.jobs.added[0].Date)
	require.Equal(t, "100", f.jobs.added[0].CropHeight)
}

func TestSubmit_SaveFailureSurfacesNotice(t *testing.T) {
	f := newStampFixture(t, &fakeClient{stampBody: []byte("zip")})
	f.service.outputDir = filepath.Join(f.dir, "missing", "nested")

	_, err := f.service.Submit(context.Background(), someFiles(), someParams())
	require.Error(t, err)

	require.Equal(t, []string{"show:Processing…", "hide"}, f.progress.events)
	last, ok := f.notifier.last()
	require.True(t, ok)
	require.False(t, last.ok)
}
