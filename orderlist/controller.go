// Package orderlist reconciles a locally reordered project list against the
// persisted order. It is the only stateful piece of the admin surface: a
// two-state machine {clean, dirty} where any reorder marks the list dirty and
// only a successful commit clears the flag.
package orderlist

import (
	"context"
	"sync"

	"github.com/alexvr/portfolio-backend/models"
)

// Committer persists a full locally-ordered sequence atomically.
type Committer interface {
	ReorderCommit(ctx context.Context, ordered []models.Project) error
}

// Controller holds the authoritative in-memory display order and a dirty
// flag that is true iff that order has diverged from the last known
// persisted order. The dirty flag is the single source of truth for whether
// a save affordance should be shown.
type Controller struct {
	mu        sync.Mutex
	items     []models.Project
	dirty     bool
	committer Committer
}

func New(committer Committer) *Controller {
	return &Controller{committer: committer}
}

// Initialize resets the controller to the persisted order and clears the
// dirty flag.
func (c *Controller) Initialize(persisted []models.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items[:0:0], persisted...)
	c.dirty = false
}

// Reorder replaces the in-memory sequence and marks the list dirty. The new
// sequence is trusted to be a permutation of the current item set; the drag
// surface producing it is responsible for that.
func (c *Controller) Reorder(newSequence []models.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items[:0:0], newSequence...)
	c.dirty = true
}

// Items returns a copy of the current in-memory display order.
func (c *Controller) Items() []models.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Project(nil), c.items...)
}

// Dirty reports whether the in-memory order has uncommitted changes.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Commit persists the current order when dirty. On success the controller
// becomes clean; on failure the items and the dirty flag are left untouched
// so the caller can retry. There is no rollback to the last-known-good
// order and no automatic retry.
func (c *Controller) Commit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	if err := c.committer.ReorderCommit(ctx, c.items); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
