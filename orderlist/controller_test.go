package orderlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexvr/portfolio-backend/models"
)

type fakeCommitter struct {
	err       error
	calls     int
	committed []models.Project
}

func (f *fakeCommitter) ReorderCommit(_ context.Context, ordered []models.Project) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.committed = append([]models.Project(nil), ordered...)
	return nil
}

func projects(ids ...string) []models.Project {
	out := make([]models.Project, len(ids))
	for i, id := range ids {
		out[i] = models.Project{ID: id, Order: i}
	}
	return out
}

func ids(items []models.Project) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestInitializeStartsClean(t *testing.T) {
	c := New(&fakeCommitter{})
	c.Initialize(projects("a", "b", "c"))

	assert.False(t, c.Dirty())
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.Items()))
}

func TestReorderMarksDirty(t *testing.T) {
	c := New(&fakeCommitter{})
	c.Initialize(projects("a", "b", "c"))

	reordered := projects("a", "b", "c")
	reordered[0], reordered[2] = reordered[2], reordered[0]
	c.Reorder(reordered)

	assert.True(t, c.Dirty())
	assert.Equal(t, []string{"c", "b", "a"}, ids(c.Items()))
}

func TestReorderToIdenticalSequenceStillMarksDirty(t *testing.T) {
	// The flag tracks that a reorder happened, not whether the sequence
	// actually differs.
	c := New(&fakeCommitter{})
	c.Initialize(projects("a", "b"))

	c.Reorder(projects("a", "b"))

	assert.True(t, c.Dirty())
}

func TestCommitWhenCleanIsNoOp(t *testing.T) {
	committer := &fakeCommitter{}
	c := New(committer)
	c.Initialize(projects("a", "b"))

	require.NoError(t, c.Commit(context.Background()))
	assert.Zero(t, committer.calls)
}

func TestCommitSuccessClearsDirty(t *testing.T) {
	committer := &fakeCommitter{}
	c := New(committer)
	c.Initialize(projects("a", "b", "c"))
	c.Reorder(projects("b", "c", "a"))

	require.NoError(t, c.Commit(context.Background()))

	assert.False(t, c.Dirty())
	assert.Equal(t, 1, committer.calls)
	assert.Equal(t, []string{"b", "c", "a"}, ids(committer.committed))
	assert.Equal(t, []string{"b", "c", "a"}, ids(c.Items()))
}

func TestCommitFailureKeepsDirtyAndLocalOrder(t *testing.T) {
	commitErr := errors.New("transaction aborted")
	committer := &fakeCommitter{err: commitErr}
	c := New(committer)
	c.Initialize(projects("a", "b", "c"))
	c.Reorder(projects("c", "a", "b"))

	err := c.Commit(context.Background())

	require.ErrorIs(t, err, commitErr)
	assert.True(t, c.Dirty(), "failed commit must leave the order uncommitted")
	assert.Equal(t, []string{"c", "a", "b"}, ids(c.Items()),
		"failed commit must not roll back the local order")
}

func TestCommitRetryAfterFailureSucceeds(t *testing.T) {
	committer := &fakeCommitter{err: errors.New("unavailable")}
	c := New(committer)
	c.Initialize(projects("a", "b"))
	c.Reorder(projects("b", "a"))

	require.Error(t, c.Commit(context.Background()))

	committer.err = nil
	require.NoError(t, c.Commit(context.Background()))

	assert.False(t, c.Dirty())
	assert.Equal(t, []string{"b", "a"}, ids(committer.committed))
}

func TestInitializeAfterDirtyResets(t *testing.T) {
	c := New(&fakeCommitter{})
	c.Initialize(projects("a", "b"))
	c.Reorder(projects("b", "a"))
	require.True(t, c.Dirty())

	c.Initialize(projects("x", "y", "z"))

	assert.False(t, c.Dirty())
	assert.Equal(t, []string{"x", "y", "z"}, ids(c.Items()))
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New(&fakeCommitter{})
	c.Initialize(projects("a", "b"))

	snapshot := c.Items()
	snapshot[0] = models.Project{ID: "mutated"}

	assert.Equal(t, []string{"a", "b"}, ids(c.Items()))
}
