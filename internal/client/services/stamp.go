package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autodate/stampctl/internal/client/api"
	"github.com/autodate/stampctl/internal/client/history"
	"github.com/autodate/stampctl/internal/client/intake"
	"github.com/autodate/stampctl/internal/logging"
)

// DownloadName is the fixed filename of a finished job's archive.
const DownloadName = "stamped_images.zip"

// ProgressHideDelay is how long "Done" stays visible after a job finishes.
const ProgressHideDelay = 500 * time.Millisecond

// StatusRefresher re-reads the session status after a balance change.
type StatusRefresher interface {
	RefreshStatus(ctx context.Context)
}

// StampService submits stamp jobs and lands the resulting archive on disk.
// Overlapping submissions are not serialized; the progress indicator and
// notice follow whichever finishes last.
type StampService struct {
	client   api.Client
	notifier Notifier
	progress ProgressIndicator
	status   StatusRefresher
	jobs     history.JobRepository
	logger   logging.Logger

	outputDir string
}

func NewStampService(client api.Client, notifier Notifier, progress ProgressIndicator, status StatusRefresher, jobs history.JobRepository, outputDir string, logger logging.Logger) *StampService {
	return &StampService{
		client:    client,
		notifier:  notifier,
		progress:  progress,
		status:    status,
		jobs:      jobs,
		logger:    logger,
		outputDir: outputDir,
	}
}

// Submit sends files and params as one multipart job and saves the returned
// zip under DownloadName in the output directory. An empty selection fails
// locally before any network traffic. On success the progress indicator
// shows "Done" briefly and the credit display is refreshed; on failure the
// indicator hides immediately and the failure message becomes a notice.
// Nothing is retried.
func (s *StampService) Submit(ctx context.Context, files []intake.FileRef, params api.Params) (string, error) {
	if len(files) == 0 {
		err := api.ErrEmptySelection
		s.notifier.Notify(api.UserMessage(err), false)
		return "", err
	}

	s.progress.Show("Processing…")

	body, err := s.client.Stamp(ctx, files, params)
	if err != nil {
		return "", s.fail(ctx, files, params, err)
	}
	defer body.Close()

	dest, err := s.saveArchive(body)
	if err != nil {
		return "", s.fail(ctx, files, params, err)
	}

	s.progress.SetMessage("Done")
	s.progress.HideAfter(ProgressHideDelay)
	s.status.RefreshStatus(ctx)
	s.notifier.Notify("Saved "+DownloadName, true)
	s.record(ctx, files, params, history.OutcomeOK, "")
	return dest, nil
}

// saveArchive streams the zip into a uuid-named temp file and renames it
// into place, so a half-written archive never lands under DownloadName and
// the temporary file is always released.
func (s *StampService) saveArchive(body io.Reader) (string, error) {
	tmp := filepath.Join(s.outputDir, "."+uuid.NewString()+".part")
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", tmp, err)
	}

	_, err = io.Copy(out, body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("download archive: %w", err)
	}

	dest := filepath.Join(s.outputDir, DownloadName)
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("save %s: %w", DownloadName, err)
	}
	return dest, nil
}

func (s *StampService) fail(ctx context.Context, files []intake.FileRef, params api.Params, err error) error {
	s.progress.Hide()
	msg := api.UserMessage(err)
	s.notifier.Notify(msg, false)
	s.record(ctx, files, params, history.OutcomeError, msg)
	return err
}

func (s *StampService) record(ctx context.Context, files []intake.FileRef, params api.Params, outcome, detail string) {
	if s.jobs == nil {
		return
	}
	job := &history.Job{
		ID:          uuid.NewString(),
		SubmittedAt: time.Now().UTC(),
		FileCount:   len(files),
		Date:        strings.TrimSpace(params.Date),
		StartTime:   strings.TrimSpace(params.StartTime),
		EndTime:     strings.TrimSpace(params.EndTime),
		CropHeight:  strings.TrimSpace(params.CropHeight),
		Outcome:     outcome,
		Detail:      detail,
	}
	if err := s.jobs.Add(ctx, job); err != nil {
		s.logger.Warn(ctx, "record job", "err", err)
	}
}
