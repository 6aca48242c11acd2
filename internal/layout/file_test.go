package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `
name: Main warehouse
floors:
  - height: 3
    matrix:
      - [5, 5, 0]
      - [5, 5, 2]
  - height: 2.5
    matrix:
      - [1]
occupied:
  - {floor: 0, group_id: 0, group_row: 1, group_column: 0}
  - {floor: 0, group_id: 1, group_row: 0, group_column: 0, group_depth: 0}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if l.Name != "Main warehouse" {
		t.Errorf("Name = %q", l.Name)
	}
	if len(l.Floors) != 2 || l.Floors[1].Height != 2.5 {
		t.Fatalf("Floors = %+v", l.Floors)
	}
	if l.Floors[0].Matrix.At(1, 2) != 2 {
		t.Errorf("matrix cell (1,2) = %d, want 2", l.Floors[0].Matrix.At(1, 2))
	}
	if len(l.Occupied) != 2 {
		t.Fatalf("Occupied len = %d, want 2", len(l.Occupied))
	}
	if l.Occupied[0].GroupDepth != nil {
		t.Error("first occupied entry should have no depth")
	}
	if l.Occupied[1].GroupDepth == nil {
		t.Error("second occupied entry should carry depth 0")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	in := &Layout{Name: "x", Floors: []Floor{{Height: 2, Matrix: Matrix{{1, 0}, {0, 2}}}}}
	if err := in.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	out, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if Hash(out.Floors[0].Matrix) != Hash(in.Floors[0].Matrix) {
		t.Error("matrix changed across save/load")
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("floors: [[[:"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil, want decode error")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}

func TestValidate(t *testing.T) {
	good := []Floor{{Height: 3, Matrix: Matrix{{5, 5, 2}, {5, 5, 2}}}}
	if err := Validate(good); err != nil {
		t.Errorf("Validate(good) = %v, want nil", err)
	}

	bad := []Floor{
		{Height: 0, Matrix: Matrix{{1, 1}, {1}}},
		{Height: 2, Matrix: Matrix{{3, 3}, {3, 0}}},
		{Height: 2, Matrix: Matrix{{-1}}},
	}
	err := Validate(bad)
	if err == nil {
		t.Fatal("Validate(bad) = nil, want issues")
	}
	msg := err.Error()
	for _, want := range []string{"height 0 must be positive", "row has 1 cells", "does not fill", "negative value -1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() error missing %q:\n%s", want, msg)
		}
	}
}
