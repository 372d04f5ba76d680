// Package reconcile classifies exported account descriptors against the
// accounts already stored locally and turns the user's selection into store
// operations.
package reconcile

import (
	"sort"

	"wallet-import/internal/models"

	"github.com/sirupsen/logrus"
)

// AccountBuilder turns a descriptor into a fresh account.
type AccountBuilder func(models.AccountData) (models.Account, error)

// SupportPredicate reports whether a descriptor's account can be added here.
type SupportPredicate func(models.AccountData) bool

type Reconciler struct {
	build    AccountBuilder
	supports SupportPredicate
	logger   *logrus.Logger
}

func NewReconciler(build AccountBuilder, supports SupportPredicate, logger *logrus.Logger) *Reconciler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reconciler{
		build:    build,
		supports: supports,
		logger:   logger,
	}
}

// Classify reconciles one descriptor. An item already present in prev is
// returned unchanged. A descriptor that cannot be built yields a nil item and
// a *ConstructionError.
func (r *Reconciler) Classify(data models.AccountData, existing map[string]models.Account, prev map[string]Item) (*Item, error) {
	if item, ok := prev[data.ID]; ok {
		return &item, nil
	}

	if account, ok := existing[data.ID]; ok {
		if account.Name == data.Name {
			return &Item{Account: account, Mode: ModeID}, nil
		}
		account.Name = data.Name
		return &Item{Account: account, Mode: ModePatch}, nil
	}

	account, err := r.build(data)
	if err != nil {
		return nil, &ConstructionError{AccountID: data.ID, Err: err}
	}

	mode := ModeUnsupported
	if r.supports(data) {
		mode = ModeCreate
	}
	return &Item{Account: account, Mode: mode}, nil
}

// BuildReconciledList classifies every descriptor, drops the ones that fail to
// build, and sorts the rest by mode rank keeping input order within a mode.
// Only the first descriptor for a given id is kept.
func (r *Reconciler) BuildReconciledList(descriptors []models.AccountData, existing map[string]models.Account, prev map[string]Item) ([]Item, []SkippedDescriptor) {
	items := make([]Item, 0, len(descriptors))
	var skipped []SkippedDescriptor
	seen := make(map[string]bool, len(descriptors))

	for _, data := range descriptors {
		if seen[data.ID] {
			r.logger.WithField("account_id", data.ID).Warn("Duplicate account in import result, keeping the first one")
			continue
		}
		seen[data.ID] = true

		item, err := r.Classify(data, existing, prev)
		if err != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{
				"account_id": data.ID,
				"currency":   data.CurrencyID,
			}).Warn("Skipping account that could not be imported")
			skipped = append(skipped, SkippedDescriptor{ID: data.ID, Name: data.Name, Reason: err.Error()})
			continue
		}
		items = append(items, *item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Mode.Rank() < items[j].Mode.Rank()
	})

	return items, skipped
}

// Index keys items by account id.
func Index(items []Item) map[string]Item {
	byID := make(map[string]Item, len(items))
	for _, item := range items {
		byID[item.Account.ID] = item
	}
	return byID
}
