package bridge

import (
	"testing"

	"storemy/pkg/execution/join/sample"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

func newRow(t *testing.T, value int64) *tuple.Tuple {
	t.Helper()
	desc, err := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"id"})
	if err != nil {
		t.Fatalf("NewTupleDesc: %v", err)
	}
	row := tuple.NewTuple(desc)
	if err := row.SetField(0, types.NewIntField(value)); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	return row
}

func TestTableSourceLoadAssignsRecordIDsByPosition(t *testing.T) {
	src := NewTableSource()
	rows := []*tuple.Tuple{newRow(t, 10), newRow(t, 20), newRow(t, 30)}

	ids := src.Load(1, rows)
	if len(ids) != 3 {
		t.Fatalf("len(ids) = %d, want 3", len(ids))
	}
	for i, id := range ids {
		if id != sample.RecordID(i) {
			t.Errorf("ids[%d] = %d, want %d", i, id, i)
		}
	}
}

func TestTableSourceJoinValueReadsConfiguredColumn(t *testing.T) {
	src := NewTableSource()
	rows := []*tuple.Tuple{newRow(t, 42), newRow(t, 7)}
	src.Load(1, rows)

	v, err := src.JoinValue(1, 0, 0)
	if err != nil {
		t.Fatalf("JoinValue: %v", err)
	}
	if v != 42 {
		t.Errorf("JoinValue(1,0,0) = %d, want 42", v)
	}

	v, err = src.JoinValue(1, 0, 1)
	if err != nil {
		t.Fatalf("JoinValue: %v", err)
	}
	if v != 7 {
		t.Errorf("JoinValue(1,0,1) = %d, want 7", v)
	}
}

func TestTableSourceJoinValueUnknownTable(t *testing.T) {
	src := NewTableSource()
	if _, err := src.JoinValue(99, 0, 0); err == nil {
		t.Fatal("expected error for an unloaded table")
	}
}

func TestTableSourceJoinValueOutOfRange(t *testing.T) {
	src := NewTableSource()
	src.Load(1, []*tuple.Tuple{newRow(t, 1)})

	if _, err := src.JoinValue(1, 0, 5); err == nil {
		t.Fatal("expected error for an out-of-range record id")
	}
}

func TestTableSourceLoadReplacesPriorRows(t *testing.T) {
	src := NewTableSource()
	src.Load(1, []*tuple.Tuple{newRow(t, 1), newRow(t, 2), newRow(t, 3)})
	src.Load(1, []*tuple.Tuple{newRow(t, 99)})

	if _, err := src.JoinValue(1, 0, 1); err == nil {
		t.Fatal("expected the second Load to have replaced the first table's rows")
	}
	v, err := src.JoinValue(1, 0, 0)
	if err != nil {
		t.Fatalf("JoinValue: %v", err)
	}
	if v != 99 {
		t.Errorf("JoinValue(1,0,0) = %d, want 99", v)
	}
}

func TestTableSourceTuple(t *testing.T) {
	src := NewTableSource()
	rows := []*tuple.Tuple{newRow(t, 5)}
	src.Load(1, rows)

	got, err := src.Tuple(1, 0)
	if err != nil {
		t.Fatalf("Tuple: %v", err)
	}
	if got != rows[0] {
		t.Error("Tuple returned a different tuple than was loaded")
	}
}
