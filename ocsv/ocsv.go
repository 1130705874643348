/*
Package ocsv reads and writes blind structures in a format that is
_somewhat_ compatible with Patrick Milligan's Oakleaf Timer, which keeps its
data in CSV.

The Oakleaf format reads like this:

	B, 5,run, Green, silent, , , GAME,STUD, , , , , SEATING,In Progress
	R,20,pause,Green, 3chimes,ROUND,1, GAME,STUD,BUTTON,15, BRING IN,5, LIMITS,15-30
	R,20,run, Brown, 3chimes,ROUND,2, GAME,STUD,ANTE,5, BRING IN,10, LIMITS,25-50

Column 1 is the row type, B for a break and R for a round.  Column 2 is the
time in minutes; zero means the round never ends.  Columns 3 to 5 are the
timer state, background and sound.  Columns 6 to 15 are five label/data
pairs for the display areas.

On import, breaks are dropped, the LIMITS or BLINDS area becomes the small
and big blind, and an ANTE area becomes the ante.  Everything else is
ignored, so the conversion is lossy.
*/
package ocsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ts4z/pkoledger/model"
)

const (
	colType    = 0
	colMinutes = 1
	// first label column; data follows each label
	colAreas = 5
)

// ReadLevels imports the rounds of an Oakleaf structure.
func ReadLevels(r io.Reader) ([]model.BlindLevel, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	levels := []model.BlindLevel{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return levels, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		switch strings.ToUpper(strings.TrimSpace(rec[colType])) {
		case "B", "":
			continue
		case "R":
		default:
			return nil, fmt.Errorf("line %d: unknown row type %q", line, rec[colType])
		}

		lvl, err := parseRound(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		levels = append(levels, lvl)
	}
}

func parseRound(rec []string) (model.BlindLevel, error) {
	var lvl model.BlindLevel
	if len(rec) <= colMinutes {
		return lvl, fmt.Errorf("round has no time")
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(rec[colMinutes]))
	if err != nil {
		return lvl, fmt.Errorf("can't parse minutes %q: %w", rec[colMinutes], err)
	}
	if minutes <= 0 {
		return lvl, fmt.Errorf("untimed rounds are not supported")
	}
	lvl.Duration = time.Duration(minutes) * time.Minute

	haveBlinds := false
	for i := colAreas; i+1 < len(rec); i += 2 {
		label := strings.ToUpper(strings.TrimSpace(rec[i]))
		data := strings.TrimSpace(rec[i+1])
		switch label {
		case "BLINDS", "LIMITS":
			sb, bb, ok := strings.Cut(data, "-")
			if !ok {
				return lvl, fmt.Errorf("%s %q is not SB-BB", label, data)
			}
			if lvl.SmallBlind, err = parseChips(sb); err != nil {
				return lvl, err
			}
			if lvl.BigBlind, err = parseChips(bb); err != nil {
				return lvl, err
			}
			haveBlinds = true
		case "ANTE":
			if lvl.Ante, err = parseChips(data); err != nil {
				return lvl, err
			}
		}
	}
	if !haveBlinds {
		return lvl, fmt.Errorf("round has no BLINDS or LIMITS")
	}
	return lvl, lvl.Validate()
}

func parseChips(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("can't parse chips %q: %w", s, err)
	}
	return n, nil
}

// WriteLevels exports levels as Oakleaf rounds of no-limit hold'em.
func WriteLevels(w io.Writer, levels []model.BlindLevel) error {
	cw := csv.NewWriter(w)
	for i, l := range levels {
		anteLabel, ante := "", ""
		if l.Ante > 0 {
			anteLabel, ante = "ANTE", strconv.FormatInt(l.Ante, 10)
		}
		rec := []string{
			"R",
			strconv.Itoa(int(l.Duration / time.Minute)),
			"run",
			"Green",
			"3chimes",
			"ROUND", strconv.Itoa(i + 1),
			"GAME", "NLHE",
			anteLabel, ante,
			"", "",
			"BLINDS", fmt.Sprintf("%d-%d", l.SmallBlind, l.BigBlind),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
