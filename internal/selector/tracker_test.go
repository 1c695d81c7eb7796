package selector

import (
	"testing"

	"github.com/dokzlo13/glowd/internal/region"
)

func TestTrackerCommit(t *testing.T) {
	cases := []struct {
		name           string
		px, py, rx, ry int
		want           region.Region
	}{
		{name: "left-to-right", px: 10, py: 20, rx: 300, ry: 400, want: region.Region{X1: 10, Y1: 20, X2: 300, Y2: 400}},
		{name: "right-to-left", px: 300, py: 400, rx: 10, ry: 20, want: region.Region{X1: 10, Y1: 20, X2: 300, Y2: 400}},
		{name: "up-right", px: 10, py: 400, rx: 300, ry: 20, want: region.Region{X1: 10, Y1: 20, X2: 300, Y2: 400}},
		{name: "down-left", px: 300, py: 20, rx: 10, ry: 400, want: region.Region{X1: 10, Y1: 20, X2: 300, Y2: 400}},
		{name: "click in place", px: 50, py: 60, rx: 50, ry: 60, want: region.Region{X1: 50, Y1: 60, X2: 50, Y2: 60}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tr Tracker
			tr.Press(tc.px, tc.py)
			tr.Move((tc.px+tc.rx)/2, (tc.py+tc.ry)/2)
			tr.Release(tc.rx, tc.ry)

			if tr.Phase() != PhaseCommitted {
				t.Fatalf("phase = %v, want PhaseCommitted", tr.Phase())
			}
			got, ok := tr.Result()
			if !ok {
				t.Fatal("Result() not ok after commit")
			}
			if got != tc.want {
				t.Errorf("Result() = %v, want %v", got, tc.want)
			}
			if got.X1 > got.X2 || got.Y1 > got.Y2 {
				t.Errorf("result %v not normalized", got)
			}
		})
	}
}

func TestTrackerCancel(t *testing.T) {
	t.Run("from idle", func(t *testing.T) {
		var tr Tracker
		tr.Cancel()
		if tr.Phase() != PhaseCancelled {
			t.Fatalf("phase = %v, want PhaseCancelled", tr.Phase())
		}
		if _, ok := tr.Result(); ok {
			t.Error("cancelled tracker should not yield a result")
		}
	})

	t.Run("mid-drag", func(t *testing.T) {
		var tr Tracker
		tr.Press(10, 10)
		tr.Move(200, 200)
		tr.Cancel()
		if tr.Phase() != PhaseCancelled {
			t.Fatalf("phase = %v, want PhaseCancelled", tr.Phase())
		}
		if r, ok := tr.Result(); ok {
			t.Errorf("cancelled tracker yielded %v", r)
		}
	})

	t.Run("after commit is ignored", func(t *testing.T) {
		var tr Tracker
		tr.Press(1, 2)
		tr.Release(3, 4)
		tr.Cancel()
		if tr.Phase() != PhaseCommitted {
			t.Fatalf("phase = %v, want PhaseCommitted", tr.Phase())
		}
		if _, ok := tr.Result(); !ok {
			t.Error("committed result lost after late Cancel")
		}
	})
}

func TestTrackerIgnoresOutOfOrderInput(t *testing.T) {
	t.Run("move before press", func(t *testing.T) {
		var tr Tracker
		tr.Move(100, 100)
		if tr.Phase() != PhaseIdle {
			t.Fatalf("phase = %v, want PhaseIdle", tr.Phase())
		}
	})

	t.Run("release before press", func(t *testing.T) {
		var tr Tracker
		tr.Release(100, 100)
		if tr.Phase() != PhaseIdle {
			t.Fatalf("phase = %v, want PhaseIdle", tr.Phase())
		}
		if _, ok := tr.Result(); ok {
			t.Error("stray release produced a result")
		}
	})

	t.Run("second press ignored", func(t *testing.T) {
		var tr Tracker
		tr.Press(10, 10)
		tr.Press(500, 500)
		tr.Release(20, 20)
		got, ok := tr.Result()
		if !ok {
			t.Fatal("Result() not ok")
		}
		want := region.Region{X1: 10, Y1: 10, X2: 20, Y2: 20}
		if got != want {
			t.Errorf("Result() = %v, want %v (anchor from first press)", got, want)
		}
	})
}

func TestTrackerOutline(t *testing.T) {
	var tr Tracker
	if _, ok := tr.Outline(); ok {
		t.Error("idle tracker should have no outline")
	}
	tr.Press(100, 100)
	tr.Move(40, 250)
	out, ok := tr.Outline()
	if !ok {
		t.Fatal("Outline() not ok mid-drag")
	}
	want := region.Region{X1: 40, Y1: 100, X2: 100, Y2: 250}
	if out != want {
		t.Errorf("Outline() = %v, want %v", out, want)
	}
	tr.Release(40, 250)
	if _, ok := tr.Outline(); ok {
		t.Error("committed tracker should have no outline")
	}
}
