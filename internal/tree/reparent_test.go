package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReparent(t *testing.T) {
	t.Run("drop onto a child makes a sibling", func(t *testing.T) {
		s := newTestStore(t)
		mustProject(t, s, "P")
		a := mustTask(t, s, "A")
		b := mustSubtask(t, s, a, "B")
		c := mustTask(t, s, "C")

		require.True(t, s.Reparent(c.ID, b.ID))
		assert.Equal(t, a.ID, taskOf(t, s, c.ID).ParentID, "C adopts B's parent, not B")
		assert.Equal(t, []string{a.ID, b.ID, c.ID}, taskIDs(s))
		assert.Equal(t, "- P\n  - A\n    - B\n    - C\n", s.Outline())
	})

	t.Run("drop onto a top-level task nests under it", func(t *testing.T) {
		s := newTestStore(t)
		mustProject(t, s, "P")
		a := mustTask(t, s, "A")
		mustTask(t, s, "X")
		d := mustTask(t, s, "D")

		require.True(t, s.Reparent(d.ID, a.ID))
		assert.Equal(t, a.ID, taskOf(t, s, d.ID).ParentID)
		assert.Equal(t, "- P\n  - A\n    - D\n  - X\n", s.Outline())
	})

	t.Run("inserted directly after the target", func(t *testing.T) {
		s := newTestStore(t)
		mustProject(t, s, "P")
		a := mustTask(t, s, "A")
		a1 := mustSubtask(t, s, a, "A1")
		a2 := mustSubtask(t, s, a, "A2")
		a3 := mustSubtask(t, s, a, "A3")

		require.True(t, s.Reparent(a3.ID, a1.ID))
		assert.Equal(t, []string{a.ID, a1.ID, a3.ID, a2.ID}, taskIDs(s))
		assert.Equal(t, "- P\n  - A\n    - A1\n    - A3\n    - A2\n", s.Outline())

		// Moving forward: the target index is taken after removal.
		require.True(t, s.Reparent(a1.ID, a2.ID))
		assert.Equal(t, []string{a.ID, a3.ID, a2.ID, a1.ID}, taskIDs(s))
	})

	t.Run("child moves to another parent", func(t *testing.T) {
		s := newTestStore(t)
		mustProject(t, s, "P")
		a := mustTask(t, s, "A")
		b := mustTask(t, s, "B")
		a1 := mustSubtask(t, s, a, "A1")

		require.True(t, s.Reparent(a1.ID, b.ID))
		assert.Equal(t, b.ID, taskOf(t, s, a1.ID).ParentID)
		assert.Equal(t, "- P\n  - A\n  - B\n    - A1\n", s.Outline())
	})

	t.Run("keeps completion state", func(t *testing.T) {
		s := newTestStore(t)
		mustProject(t, s, "P")
		a := mustTask(t, s, "A")
		done := mustTask(t, s, "Done")
		require.True(t, s.ToggleCompletion(done.ID))

		require.True(t, s.Reparent(done.ID, a.ID))
		assert.Equal(t, "- P\n  - A\n    - ~~Done~~\n", s.Outline())
	})

	t.Run("publishes the resulting parent", func(t *testing.T) {
		s := newTestStore(t)
		mustProject(t, s, "P")
		a := mustTask(t, s, "A")
		b := mustSubtask(t, s, a, "B")
		c := mustTask(t, s, "C")

		rec := &recorder{}
		s.Subscribe(rec.listen)
		require.True(t, s.Reparent(c.ID, b.ID))

		u := rec.last(t)
		assert.Equal(t, TaskMoved, u.Change.Kind)
		assert.Equal(t, c.ID, u.Change.TaskID)
		assert.Equal(t, b.ID, u.Change.TargetID)
		assert.Equal(t, a.ID, u.Change.ParentID)
		assert.Equal(t, "- P\n  - A\n    - B\n    - C\n", u.Outline)
	})
}

func TestReparentRejections(t *testing.T) {
	s := newTestStore(t)
	mustProject(t, s, "P")
	a := mustTask(t, s, "A")
	a1 := mustSubtask(t, s, a, "A1")
	b := mustTask(t, s, "B")
	b1 := mustSubtask(t, s, b, "B1")
	lone := mustTask(t, s, "Lone")

	mustProject(t, s, "Q")
	q := mustTask(t, s, "Q1")

	tests := []struct {
		name    string
		dragged string
		target  string
	}{
		{"onto itself", lone.ID, lone.ID},
		{"parent onto its own child", a.ID, a1.ID},
		{"parent with children onto another parent", a.ID, b.ID},
		{"parent with children onto another child", a.ID, b1.ID},
		{"across projects", lone.ID, q.ID},
		{"unknown dragged", "missing", a.ID},
		{"unknown target", lone.ID, "missing"},
		{"empty ids", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			stop := s.Subscribe(rec.listen)
			defer stop()

			before := s.Snapshot()
			assert.False(t, s.Reparent(tt.dragged, tt.target))
			assert.Equal(t, before, s.Snapshot())
			assert.Empty(t, rec.updates, "rejected moves do not regenerate the outline")
		})
	}
}

func TestReparentKeepsTwoLevels(t *testing.T) {
	s := newTestStore(t)
	mustProject(t, s, "P")
	a := mustTask(t, s, "A")
	b := mustTask(t, s, "B")
	a1 := mustSubtask(t, s, a, "A1")
	b1 := mustSubtask(t, s, b, "B1")
	c := mustTask(t, s, "C")

	moves := [][2]string{
		{c.ID, a1.ID},
		{a1.ID, b1.ID},
		{c.ID, b.ID},
		{b1.ID, a.ID},
		{a1.ID, a.ID},
	}
	for _, m := range moves {
		s.Reparent(m[0], m[1])

		snap := s.Snapshot()
		for _, task := range snap.Tasks {
			if task.IsTopLevel() {
				continue
			}
			parent, ok := snap.Task(task.ParentID)
			require.True(t, ok, "parent of %s exists", task.ID)
			assert.True(t, parent.IsTopLevel(), "parent of %s is top-level", task.ID)
			assert.NotEqual(t, task.ID, task.ParentID)
		}
	}
}
