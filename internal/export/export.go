// Package export builds chunk layouts for a run seed and writes them as text,
// JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/layout"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat converts a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "ascii":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("export: unknown format %q (want text, json or yaml)", s)
}

// ChunkLayout is the generated layout of one chunk of a run.
type ChunkLayout struct {
	Index  int                `json:"index" yaml:"index"`
	Seed   int64              `json:"seed" yaml:"seed"`
	Level  int                `json:"level" yaml:"level"`
	Length float64            `json:"length" yaml:"length"`
	Rows   []layout.RowLayout `json:"rows" yaml:"rows"`
}

// Build generates chunk index of the run with the given seed.
func Build(p layout.Params, c layout.Catalog, seed int64, index, level int) ChunkLayout {
	rows := layout.Generate(p, c, level, layout.NewChunkSource(seed, index))
	return ChunkLayout{
		Index:  index,
		Seed:   seed,
		Level:  level,
		Length: layout.EffectiveParams(p, level).ChunkLength(),
		Rows:   rows,
	}
}

// BuildRange generates count consecutive chunks starting at first. levelFor
// maps a chunk index to its difficulty level; nil means the index itself.
func BuildRange(p layout.Params, c layout.Catalog, seed int64, first, count int, levelFor func(int) int) []ChunkLayout {
	if levelFor == nil {
		levelFor = func(i int) int { return i }
	}
	out := make([]ChunkLayout, 0, max(count, 0))
	for i := first; i < first+count; i++ {
		out = append(out, Build(p, c, seed, i, levelFor(i)))
	}
	return out
}

// Write encodes chunks to w in the given format.
func Write(w io.Writer, f Format, chunks []ChunkLayout) error {
	switch f {
	case FormatText:
		return writeText(w, chunks)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(chunks); err != nil {
			return fmt.Errorf("export: encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(chunks); err != nil {
			return fmt.Errorf("export: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("export: encode yaml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("export: unknown format %q", f)
}

// Text renders chunks the way the text format writes them.
func Text(chunks []ChunkLayout) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = writeText(&sb, chunks)
	return sb.String()
}

func writeText(w io.Writer, chunks []ChunkLayout) error {
	for i, c := range chunks {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		header := fmt.Sprintf("chunk %d  level %d  seed %d  length %.2f\n", c.Index, c.Level, c.Seed, c.Length)
		if _, err := io.WriteString(w, header+layout.RenderASCII(c.Rows)); err != nil {
			return err
		}
	}
	return nil
}
