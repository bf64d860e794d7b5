package db

import "testing"

type embedded struct {
	CreatedAt string `db:"created_at"`
}

type row struct {
	ID     string `db:"id"`
	Name   string `db:"name,omitempty"`
	Secret string `db:"-"`
	Memo   string
	embedded
}

func TestGetCols(t *testing.T) {
	cols := GetCols(row{})

	expected := []string{"id", "name", "created_at"}

	if len(cols) != len(expected) {
		t.Fatalf("expected %d cols, got %d (%v)", len(expected), len(cols), cols)
	}

	for i := range expected {
		if cols[i] != expected[i] {
			t.Errorf("col %d: expected %s, got %s", i, expected[i], cols[i])
		}
	}
}

func TestGetColsPointer(t *testing.T) {
	if len(GetCols(&row{})) != 3 {
		t.Error("pointer input should behave like value input")
	}
}
