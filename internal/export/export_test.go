package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/layout"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"ASCII", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := layout.DefaultParams()
	c := config.DefaultCatalog()

	a := Build(p, c, 42, 3, 3)
	b := Build(p, c, 42, 3, 3)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and index should give identical chunks")
	}
	if len(a.Rows) != p.RowsPerChunk {
		t.Errorf("rows = %d, want %d", len(a.Rows), p.RowsPerChunk)
	}
	if a.Length != p.ChunkLength() {
		t.Errorf("Length = %v, want %v", a.Length, p.ChunkLength())
	}
}

func TestBuildRange(t *testing.T) {
	p := layout.DefaultParams()
	c := config.DefaultCatalog()

	chunks := BuildRange(p, c, 7, 2, 3, func(i int) int { return i * 2 })
	if len(chunks) != 3 {
		t.Fatalf("len = %d, want 3", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Index != 2+i {
			t.Errorf("chunk %d index = %d, want %d", i, ch.Index, 2+i)
		}
		if ch.Level != (2+i)*2 {
			t.Errorf("chunk %d level = %d, want %d", i, ch.Level, (2+i)*2)
		}
		// Any chunk regenerates on its own.
		if single := Build(p, c, 7, ch.Index, ch.Level); !reflect.DeepEqual(single, ch) {
			t.Errorf("chunk %d differs when built alone", ch.Index)
		}
	}

	if got := BuildRange(p, c, 7, 0, 0, nil); len(got) != 0 {
		t.Errorf("empty range returned %d chunks", len(got))
	}
}

func TestWriteText(t *testing.T) {
	chunks := BuildRange(layout.DefaultParams(), config.DefaultCatalog(), 1, 0, 2, nil)

	var buf bytes.Buffer
	if err := Write(&buf, FormatText, chunks); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "chunk 0  level 0  seed 1  length 18.00\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "\nchunk 1  level 1  seed 1") {
		t.Errorf("second chunk missing:\n%s", out)
	}
	if out != Text(chunks) {
		t.Error("Text should match the text writer")
	}
}

func TestWriteJSON(t *testing.T) {
	chunks := BuildRange(layout.DefaultParams(), config.DefaultCatalog(), 99, 0, 2, nil)

	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, chunks); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded []ChunkLayout
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Index != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if len(decoded[0].Rows) != len(chunks[0].Rows) {
		t.Errorf("rows = %d, want %d", len(decoded[0].Rows), len(chunks[0].Rows))
	}
}

func TestWriteYAML(t *testing.T) {
	chunks := BuildRange(layout.DefaultParams(), config.DefaultCatalog(), 5, 0, 1, nil)

	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, chunks); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d chunks, want 1", len(decoded))
	}
	if decoded[0]["seed"] != 5 {
		t.Errorf("seed = %v, want 5", decoded[0]["seed"])
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("xml"), nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
