package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const twoParamFixture = `[Design]
Version=1.0

[Parameter0]
Name=ProjectName
Value=Widget Controller

[Parameter1]
Name=Rev
Value=3

[Document1]
DocumentPath=board.PcbDoc
`

func TestScan_TwoParameters(t *testing.T) {
	t.Parallel()
	params, err := Scan(strings.NewReader(twoParamFixture))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if params.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", params.Len())
	}
	if got := params.Names(); !reflect.DeepEqual(got, []string{"ProjectName", "Rev"}) {
		t.Errorf("Names() = %v, want discovery order", got)
	}
	if v, _ := params.Get("ProjectName"); v != "Widget Controller" {
		t.Errorf("Get(ProjectName) = %q, want %q", v, "Widget Controller")
	}
	if v, _ := params.Get("Rev"); v != "3" {
		t.Errorf("Get(Rev) = %q, want %q", v, "3")
	}
}

func TestScan_EmptyInput(t *testing.T) {
	t.Parallel()
	params, err := Scan(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if params.Len() != 0 {
		t.Errorf("Len() = %d, want 0", params.Len())
	}
}

func TestScan_IgnoresUnrelatedSections(t *testing.T) {
	t.Parallel()
	input := "[Design]\nVersion=1.0\n[ProjectVariant1]\nDescription=x\n"
	params, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if params.Len() != 0 {
		t.Errorf("Len() = %d, want 0", params.Len())
	}
}

func TestScan_DuplicateNameLastWins(t *testing.T) {
	t.Parallel()
	input := `[Parameter0]
Name=Rev
Value=1
[Parameter1]
Name=Rev
Value=2
`
	params, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if params.Len() != 1 {
		t.Errorf("Len() = %d, want 1", params.Len())
	}
	if v, _ := params.Get("Rev"); v != "2" {
		t.Errorf("Get(Rev) = %q, want last occurrence %q", v, "2")
	}
}

func TestScan_ValueContainingEquals(t *testing.T) {
	t.Parallel()
	input := "[Parameter0]\nName=Formula\nValue=a=b+c\n"
	params, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if v, _ := params.Get("Formula"); v != "a=b+c" {
		t.Errorf("Get(Formula) = %q, want split on first = only", v)
	}
}

func TestScan_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"eof after marker", "[Parameter0]\n"},
		{"eof after name", "[Parameter0]\nName=Rev\n"},
		{"name line without assignment", "[Parameter0]\njunk\n"},
		{"value line without assignment", "[Parameter0]\nName=Rev\njunk\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Scan(strings.NewReader(tt.input))
			var malformed *MalformedError
			if !errors.As(err, &malformed) {
				t.Fatalf("Scan() error = %v, want *MalformedError", err)
			}
			if malformed.Line == 0 {
				t.Error("MalformedError.Line not set")
			}
		})
	}
}

func TestScanFile(t *testing.T) {
	t.Parallel()

	t.Run("reads fixture from disk", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "demo.PrjPcb")
		if err := os.WriteFile(path, []byte(twoParamFixture), 0o644); err != nil {
			t.Fatal(err)
		}
		params, err := ScanFile(path)
		if err != nil {
			t.Fatalf("ScanFile() error = %v", err)
		}
		if params.Len() != 2 {
			t.Errorf("Len() = %d, want 2", params.Len())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := ScanFile(filepath.Join(t.TempDir(), "nope.PrjPcb")); err == nil {
			t.Error("ScanFile() = nil error for missing file")
		}
	})
}
