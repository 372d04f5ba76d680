package service

import (
	"context"
	"errors"
	"fmt"

	"wallet-import/internal/models"
	"wallet-import/internal/reconcile"
	"wallet-import/internal/repository"
	"wallet-import/internal/worker"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// AccountSnapshotter provides the local accounts keyed by id.
type AccountSnapshotter interface {
	Snapshot(ctx context.Context) (map[string]models.Account, error)
}

type SessionRepository interface {
	Save(ctx context.Context, session *reconcile.Session) error
	Get(ctx context.Context, code string) (*reconcile.Session, error)
	Delete(ctx context.Context, code string) error
}

// OperationApplier executes committed operations against local storage.
type OperationApplier interface {
	Apply(ctx context.Context, ops []reconcile.Operation) error
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// FinishHook runs after a successful commit instead of the default
// background-sync handoff.
type FinishHook func(ctx context.Context, session *reconcile.Session, summary *CommitSummary) error

// ReviewView is what a client needs to render an import review.
type ReviewView struct {
	Code           string                        `json:"code"`
	Status         reconcile.SessionStatus       `json:"status"`
	Items          []reconcile.Item              `json:"items"`
	Sections       []reconcile.Section           `json:"sections"`
	Selected       []string                      `json:"selected"`
	ImportSettings bool                          `json:"import_settings"`
	HasSettings    bool                          `json:"has_settings"`
	Skipped        []reconcile.SkippedDescriptor `json:"skipped"`
	SkippedCount   int                           `json:"skipped_count"`
	Empty          bool                          `json:"empty"`
}

type CommitSummary struct {
	SessionCode      string   `json:"session_code"`
	Created          []string `json:"created"`
	Patched          []string `json:"patched"`
	SettingsImported bool     `json:"settings_imported"`
}

type ImportService struct {
	accounts   AccountSnapshotter
	sessions   SessionRepository
	store      OperationApplier
	reconciler *reconcile.Reconciler
	tasks      TaskEnqueuer
	onFinish   FinishHook
	logger     *logrus.Logger
}

// NewImportService wires the review flow. tasks may be nil, in which case the
// post-commit handoff is only logged.
func NewImportService(
	accounts AccountSnapshotter,
	sessions SessionRepository,
	store OperationApplier,
	reconciler *reconcile.Reconciler,
	tasks TaskEnqueuer,
	logger *logrus.Logger,
) *ImportService {
	return &ImportService{
		accounts:   accounts,
		sessions:   sessions,
		store:      store,
		reconciler: reconciler,
		tasks:      tasks,
		logger:     logger,
	}
}

// SetFinishHook replaces the default post-commit handoff.
func (s *ImportService) SetFinishHook(hook FinishHook) {
	s.onFinish = hook
}

// Open starts reviewing an import result for a user.
func (s *ImportService) Open(ctx context.Context, userID int, result models.ImportResult) (*ReviewView, error) {
	code := fmt.Sprintf("IMPORT-%s", uuid.New().String()[:8])
	session := reconcile.NewSession(code, userID, result)

	if err := s.recompute(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session": code,
		"user_id": userID,
		"total":   len(result.Accounts),
		"items":   len(session.Items),
		"skipped": len(session.Skipped),
	}).Info("Import review opened")

	return newReviewView(session), nil
}

// Review reconciles the session against the current local accounts.
func (s *ImportService) Review(ctx context.Context, userID int, code string) (*ReviewView, error) {
	session, err := s.load(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if session.Status == reconcile.StatusReviewing {
		if err := s.recompute(ctx, session); err != nil {
			return nil, err
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	return newReviewView(session), nil
}

func (s *ImportService) Toggle(ctx context.Context, userID int, code, accountID string, included bool) (*ReviewView, error) {
	session, err := s.load(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if err := session.Toggle(accountID, included); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return newReviewView(session), nil
}

func (s *ImportService) SetImportSettings(ctx context.Context, userID int, code string, enabled bool) (*ReviewView, error) {
	session, err := s.load(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if err := session.SetImportSettings(enabled); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return newReviewView(session), nil
}

// Commit applies the selected items and hands the session off.
func (s *ImportService) Commit(ctx context.Context, userID int, code string) (*CommitSummary, error) {
	session, err := s.load(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if session.Status != reconcile.StatusReviewing {
		return nil, reconcile.ErrSessionClosed
	}

	if err := s.recompute(ctx, session); err != nil {
		return nil, err
	}

	ops := session.Operations()
	if err := s.store.Apply(ctx, ops); err != nil {
		s.logger.WithError(err).WithField("session", code).Error("Failed to apply import")
		return nil, fmt.Errorf("failed to apply import: %w", err)
	}

	summary := summarize(code, ops)
	session.Status = reconcile.StatusCompleted
	if err := s.sessions.Save(ctx, session); err != nil {
		// The accounts are already stored; only the review state is stale.
		s.logger.WithError(err).WithField("session", code).Warn("Failed to mark import session completed")
	}

	s.logger.WithFields(logrus.Fields{
		"session":  code,
		"created":  len(summary.Created),
		"patched":  len(summary.Patched),
		"settings": summary.SettingsImported,
	}).Info("Import committed")

	s.finish(ctx, session, summary)
	return summary, nil
}

// Cancel abandons a review without touching local accounts.
func (s *ImportService) Cancel(ctx context.Context, userID int, code string) error {
	if _, err := s.load(ctx, userID, code); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.WithField("session", code).Info("Import review canceled")
	return nil
}

// Skipped returns the descriptors the review had to drop.
func (s *ImportService) Skipped(ctx context.Context, userID int, code string) ([]reconcile.SkippedDescriptor, error) {
	session, err := s.load(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	return session.Skipped, nil
}

func (s *ImportService) load(ctx context.Context, userID int, code string) (*reconcile.Session, error) {
	session, err := s.sessions.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	// Other users' sessions are reported as missing.
	if session.UserID != userID {
		return nil, repository.ErrSessionNotFound
	}
	return session, nil
}

func (s *ImportService) recompute(ctx context.Context, session *reconcile.Session) error {
	existing, err := s.accounts.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load local accounts: %w", err)
	}
	session.Recompute(s.reconciler, existing)
	return nil
}

func (s *ImportService) finish(ctx context.Context, session *reconcile.Session, summary *CommitSummary) {
	if s.onFinish != nil {
		if err := s.onFinish(ctx, session, summary); err != nil {
			s.logger.WithError(err).WithField("session", session.Code).Warn("Import finish hook failed")
		}
		return
	}

	if s.tasks == nil {
		s.logger.WithField("session", session.Code).Warn("No task queue configured, skipping account sync")
		return
	}

	task, err := worker.NewAccountsImportedTask(worker.AccountsImportedPayload{
		SessionCode:      summary.SessionCode,
		UserID:           session.UserID,
		Created:          summary.Created,
		Patched:          summary.Patched,
		SettingsImported: summary.SettingsImported,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to build accounts sync task")
		return
	}
	if _, err := s.tasks.EnqueueContext(ctx, task); err != nil {
		s.logger.WithError(err).WithField("session", session.Code).Warn("Failed to enqueue accounts sync")
	}
}

func summarize(code string, ops []reconcile.Operation) *CommitSummary {
	summary := &CommitSummary{SessionCode: code, Created: []string{}, Patched: []string{}}
	for _, op := range ops {
		switch op.Kind {
		case reconcile.OpAddAccount:
			summary.Created = append(summary.Created, op.Account.ID)
		case reconcile.OpUpdateAccount:
			summary.Patched = append(summary.Patched, op.Patch.ID)
		case reconcile.OpImportSettings:
			summary.SettingsImported = true
		}
	}
	return summary
}

func newReviewView(session *reconcile.Session) *ReviewView {
	items := session.Items
	if items == nil {
		items = []reconcile.Item{}
	}
	skipped := session.Skipped
	if skipped == nil {
		skipped = []reconcile.SkippedDescriptor{}
	}
	return &ReviewView{
		Code:           session.Code,
		Status:         session.Status,
		Items:          items,
		Sections:       reconcile.Sections(items),
		Selected:       session.Selection.IDs(),
		ImportSettings: session.ImportSettings,
		HasSettings:    session.Result.Settings != nil,
		Skipped:        skipped,
		SkippedCount:   len(skipped),
		Empty:          len(items) == 0,
	}
}

// IsNotFound reports errors that mean the session does not exist for the
// caller.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrSessionNotFound)
}
