package state

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ts4z/pkoledger/defaults"
	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/model"
	"github.com/ts4z/pkoledger/ocsv"
)

// levelsFile is the YAML form of a blind structure:
//
//	levels:
//	  - blinds: 25/50
//	    duration: 20m
//	  - blinds: 100/200/25
//	    duration: 20m
type levelsFile struct {
	Levels []levelFile `yaml:"levels"`
}

type levelFile struct {
	Blinds   string `yaml:"blinds"`
	Duration string `yaml:"duration"`
}

// LoadLevels reads a blind structure.  An empty path means the house
// structure.  Files ending in .yaml or .yml are YAML, .csv is an Oakleaf
// export, and anything else is the one-level-per-line text form.
func LoadLevels(path string) ([]model.BlindLevel, error) {
	if path == "" {
		return defaults.Structure(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read blind structure: %w", err)
	}

	var levels []model.BlindLevel
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		levels, err = ParseLevelsYAML(data)
	case ".csv":
		levels, err = ocsv.ReadLevels(bytes.NewReader(data))
		if err != nil {
			err = fault.New(fault.InvalidInput, err)
		}
	default:
		levels, err = model.ParseLevels(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(levels) == 0 {
		return nil, fault.Errorf(fault.InvalidInput, "%s: no levels", path)
	}
	return levels, nil
}

// ParseLevelsYAML decodes the YAML form of a blind structure.
func ParseLevelsYAML(data []byte) ([]model.BlindLevel, error) {
	var f levelsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fault.New(fault.InvalidInput, err)
	}
	levels := make([]model.BlindLevel, 0, len(f.Levels))
	for i, lf := range f.Levels {
		// Reuse the text form so both syntaxes accept the same blinds.
		parsed, err := model.ParseLevels(lf.Blinds + " -- " + lf.Duration)
		if err != nil {
			return nil, fault.Errorf(fault.InvalidInput, "level %d: %w", i+1, err)
		}
		if len(parsed) != 1 {
			return nil, fault.Errorf(fault.InvalidInput, "level %d is empty", i+1)
		}
		levels = append(levels, parsed[0])
	}
	return levels, nil
}

// FormatLevels renders levels in the text form model.ParseLevels reads.
func FormatLevels(levels []model.BlindLevel) string {
	sb := strings.Builder{}
	for _, l := range levels {
		fmt.Fprintf(&sb, "%d/%d", l.SmallBlind, l.BigBlind)
		if l.Ante > 0 {
			fmt.Fprintf(&sb, "/%d", l.Ante)
		}
		fmt.Fprintf(&sb, " -- %s\n", formatDuration(l.Duration))
	}
	return sb.String()
}

// formatDuration drops the zero units time.Duration prints: "20m", not
// "20m0s".
func formatDuration(d time.Duration) string {
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}
