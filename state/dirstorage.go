package state

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/paytable"
)

// paytableFile is the on-disk form of a paytable:
//
//	name: Club Night
//	structures:
//	  - min_players: 2
//	    payouts: [0.65, 0.35]
//	  - min_players: 7
//	    payouts: ["50%", "30%", "20%"]
//
// Payouts are listed from first place down, as fractions or percentages.
type paytableFile struct {
	Name       string          `yaml:"name"`
	Structures []structureFile `yaml:"structures"`
}

type structureFile struct {
	MinPlayers int      `yaml:"min_players"`
	Payouts    []string `yaml:"payouts"`
}

// DirPaytableStorage reads paytables from *.yaml and *.yml files in one
// directory.  Files are read on every fetch; put a CachingPaytableStorage in
// front of it.
type DirPaytableStorage struct {
	dir string
}

var _ PaytableStorage = (*DirPaytableStorage)(nil)

func NewDirPaytableStorage(dir string) *DirPaytableStorage {
	return &DirPaytableStorage{dir: dir}
}

func (ds *DirPaytableStorage) Close() {}

// FetchPaytableByName implements PaytableStorage.
func (ds *DirPaytableStorage) FetchPaytableByName(ctx context.Context, name string) (*paytable.Paytable, error) {
	paths, err := ds.files()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pt, err := ReadPaytableFile(path)
		if err != nil {
			log.Printf("skipping paytable file %s: %v", path, err)
			continue
		}
		if pt.Name == name {
			return pt, nil
		}
	}
	return nil, fault.Errorf(fault.NotFound, "paytable %q not found in %s", name, ds.dir)
}

// FetchPaytableSlugs implements PaytableStorage.
func (ds *DirPaytableStorage) FetchPaytableSlugs(ctx context.Context) ([]*paytable.PaytableSlug, error) {
	paths, err := ds.files()
	if err != nil {
		return nil, err
	}
	slugs := []*paytable.PaytableSlug{}
	for _, path := range paths {
		pt, err := ReadPaytableFile(path)
		if err != nil {
			log.Printf("skipping paytable file %s: %v", path, err)
			continue
		}
		slug := pt.Slug()
		slugs = append(slugs, &slug)
	}
	sortSlugs(slugs)
	return slugs, nil
}

func (ds *DirPaytableStorage) files() ([]string, error) {
	entries, err := os.ReadDir(ds.dir)
	if err != nil {
		return nil, fmt.Errorf("can't read paytable directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(ds.dir, e.Name()))
		}
	}
	return paths, nil
}

// ReadPaytableFile loads and validates one paytable file.
func ReadPaytableFile(path string) (*paytable.Paytable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pt, err := ParsePaytable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pt, nil
}

// ParsePaytable decodes the YAML form of a paytable and validates it.
func ParsePaytable(data []byte) (*paytable.Paytable, error) {
	var f paytableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fault.New(fault.InvalidInput, err)
	}
	if strings.TrimSpace(f.Name) == "" {
		return nil, fault.Errorf(fault.InvalidInput, "paytable has no name")
	}

	var structures []*paytable.Structure
	for _, sf := range f.Structures {
		s := &paytable.Structure{
			MinPlayers: sf.MinPlayers,
			Positions:  make(map[int]decimal.Decimal, len(sf.Payouts)),
		}
		for i, text := range sf.Payouts {
			share, err := parseShare(text)
			if err != nil {
				return nil, fault.Errorf(fault.InvalidInput, "paytable %q, %d+ players, place %d: %w", f.Name, sf.MinPlayers, i+1, err)
			}
			s.Positions[i+1] = share
		}
		structures = append(structures, s)
	}

	pt, err := paytable.New(f.Name, structures...)
	if err != nil {
		return nil, fault.Errorf(fault.InvalidInput, "paytable %q: %w", f.Name, err)
	}
	if err := pt.Validate(); err != nil {
		return nil, fault.New(fault.InvalidInput, err)
	}
	return pt, nil
}

var hundred = decimal.NewFromInt(100)

// parseShare reads "0.35" or "35%".
func parseShare(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if pct, ok := strings.CutSuffix(text, "%"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return decimal.Zero, err
		}
		return d.Div(hundred), nil
	}
	return decimal.NewFromString(text)
}

// MarshalPaytable renders pt in the file form ParsePaytable reads.
func MarshalPaytable(pt *paytable.Paytable) ([]byte, error) {
	f := paytableFile{Name: pt.Name}
	for _, s := range pt.Structures {
		sf := structureFile{MinPlayers: s.MinPlayers}
		for _, place := range s.Places() {
			for len(sf.Payouts) < place-1 {
				sf.Payouts = append(sf.Payouts, "0")
			}
			sf.Payouts = append(sf.Payouts, s.Positions[place].String())
		}
		f.Structures = append(f.Structures, sf)
	}
	return yaml.Marshal(&f)
}
