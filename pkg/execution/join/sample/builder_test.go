package sample

import "testing"

func TestBuilderBuildsReadyLinearIndex(t *testing.T) {
	src := newFakeSource()
	for i, v := range []JoinKey{1, 2} {
		src.set(tblT0, 0, RecordID(i), v)
		src.set(tblT1, 0, RecordID(i), v)
	}

	b := NewBuilder(src, LevelSpec{
		LeftTableID:     tblT0,
		RightTableID:    tblT1,
		LeftJoinColumn:  0,
		RightJoinColumn: 0,
	})

	idx, err := b.Build(func(idx *LinearIndex) error {
		if err := b.Load(idx, tblT0, []RecordID{0, 1}); err != nil {
			return err
		}
		return b.Load(idx, tblT1, []RecordID{0, 1})
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	total, err := idx.GetTotal()
	if err != nil {
		t.Fatalf("GetTotal: %v", err)
	}
	if total != 2 {
		t.Fatalf("GetTotal = %d, want 2", total)
	}
}

func TestBuilderLoadPropagatesInsertError(t *testing.T) {
	src := newFakeSource() // no values configured, every JoinValue call fails
	b := NewBuilder(src, LevelSpec{LeftTableID: tblT0, RightTableID: tblT1})

	idx, err := b.Build(func(idx *LinearIndex) error {
		return b.Load(idx, tblT0, []RecordID{0})
	})
	if err == nil {
		t.Fatal("expected Build to surface the Load error")
	}
	if idx != nil {
		t.Fatal("expected nil index on Build failure")
	}
}

func TestForkBuilderBuildsReadyForkIndex(t *testing.T) {
	src := newFakeSource()
	src.set(tblT0, 0, 0, 7)
	src.set(tblT1, 0, 0, 7)
	src.set(tblT2, 0, 0, 7)

	fb := NewForkBuilder(src)
	fb.AddLevel(LevelSpec{LeftTableID: tblT0, RightTableID: tblT1, LeftJoinColumn: 0, RightJoinColumn: 0}, 0, false)
	fb.AddLevel(LevelSpec{LeftTableID: tblT0, RightTableID: tblT2, LeftJoinColumn: 0, RightJoinColumn: 0}, 0, true)

	idx, err := fb.Build(func(idx *ForkIndex) error {
		if err := idx.Insert(tblT0, 0); err != nil {
			return err
		}
		if err := idx.Insert(tblT1, 0); err != nil {
			return err
		}
		return idx.Insert(tblT2, 0)
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	total, err := idx.GetTotal()
	if err != nil {
		t.Fatalf("GetTotal: %v", err)
	}
	if total != 1 {
		t.Fatalf("GetTotal = %d, want 1", total)
	}
}
