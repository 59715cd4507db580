package chemcomp

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/seq"
	"golang.org/x/sync/singleflight"
)

// Dir reads component definitions from a directory of Chemical Component
// Dictionary files. A component "ATP" is looked for in "ATP.cif",
// "A/ATP.cif" and "A/ATP/ATP.cif" (each optionally gzipped). Definitions
// are read at most once.
type Dir struct {
	Path     string
	Fallback Dictionary

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]*Component // nil value: known to be missing
}

// NewDir returns a dictionary over the directory at path. Components not
// found there are looked up in fallback, which may be nil.
func NewDir(path string, fallback Dictionary) *Dir {
	return &Dir{
		Path:     path,
		Fallback: fallback,
		cache:    make(map[string]*Component, 64),
	}
}

func (d *Dir) Component(compID string) (*Component, bool) {
	id := strings.ToUpper(compID)
	if len(id) == 0 {
		return nil, false
	}
	d.mu.RLock()
	c, seen := d.cache[id]
	d.mu.RUnlock()
	if !seen {
		v, _, _ := d.group.Do(id, func() (interface{}, error) {
			c, err := d.load(id)
			if err != nil {
				c = nil
			}
			d.mu.Lock()
			d.cache[id] = c
			d.mu.Unlock()
			return c, nil
		})
		c = v.(*Component)
	}
	if c != nil {
		return c, true
	}
	if d.Fallback != nil {
		return d.Fallback.Component(id)
	}
	return nil, false
}

func (d *Dir) load(id string) (*Component, error) {
	first := id[:1]
	candidates := []string{
		filepath.Join(d.Path, id+".cif"),
		filepath.Join(d.Path, first, id+".cif"),
		filepath.Join(d.Path, first, id, id+".cif"),
	}
	for _, name := range candidates {
		for _, ext := range []string{"", ".gz"} {
			f, err := os.Open(name + ext)
			if err != nil {
				continue
			}
			defer f.Close()

			var r io.Reader = f
			if ext == ".gz" {
				gz, err := gzip.NewReader(f)
				if err != nil {
					return nil, err
				}
				defer gz.Close()
				r = gz
			}
			return Read(r)
		}
	}
	return nil, fmt.Errorf("no definition of component %s in %s", id, d.Path)
}

// Read reads a single component definition in PDBx/mmCIF format.
func Read(r io.Reader) (*Component, error) {
	cf, err := cif.Read(r)
	if err != nil {
		return nil, err
	}
	for _, block := range cf.Blocks {
		return readBlock(block)
	}
	return nil, fmt.Errorf("no data block in component definition")
}

func readBlock(b *cif.DataBlock) (*Component, error) {
	c := &Component{
		ID:   strings.ToUpper(item(b, "chem_comp.id")),
		Type: strings.ToUpper(item(b, "chem_comp.type")),
	}
	if len(c.ID) == 0 {
		c.ID = strings.ToUpper(b.Name)
	}
	c.OneLetter = OneLetter(c.ID)
	if s := item(b, "chem_comp.one_letter_code"); len(s) == 1 && s != "?" {
		c.OneLetter = OneLetter(s)
		if c.OneLetter == 'X' {
			c.OneLetter = seq.Residue(s[0])
		}
	}

	atoms := columns(b, "chem_comp_atom.atom_id", "chem_comp_atom.type_symbol",
		"chem_comp_atom.pdbx_leaving_atom_flag")
	if atoms[0] == nil {
		return nil, fmt.Errorf("component %s has no atoms", c.ID)
	}
	for i, id := range atoms[0] {
		a := Atom{ID: id}
		if atoms[1] != nil {
			a.TypeSymbol = strings.ToUpper(atoms[1][i])
		}
		if atoms[2] != nil {
			a.Leaving = strings.EqualFold(atoms[2][i], "Y")
		}
		c.Atoms = append(c.Atoms, a)
	}

	bonds := columns(b, "chem_comp_bond.atom_id_1", "chem_comp_bond.atom_id_2",
		"chem_comp_bond.value_order")
	for i := range bonds[0] {
		bond := Bond{Atom1: bonds[0][i], Atom2: bonds[1][i]}
		if bonds[2] != nil {
			bond.Order = strings.ToUpper(bonds[2][i])
		}
		c.Bonds = append(c.Bonds, bond)
	}
	return c.finish(), nil
}

// item returns the single valued data item tagged by key as a string.
func item(b *cif.DataBlock, key string) string {
	v, ok := b.Items[key]
	if !ok {
		return ""
	}
	return rawString(v.Raw())
}

// columns returns the string columns of the tags given, which must all
// belong to the same category. A category written without a loop is read
// as a loop of one row. Absent tags yield nil columns.
func columns(b *cif.DataBlock, tags ...string) [][]string {
	cols := make([][]string, len(tags))
	if lp, ok := b.Loops[tags[0]]; ok {
		for i, tag := range tags {
			if j, ok := lp.Columns[tag]; ok {
				cols[i] = loopStrings(lp.Values[j])
			}
		}
		return cols
	}
	for i, tag := range tags {
		if v, ok := b.Items[tag]; ok {
			cols[i] = []string{rawString(v.Raw())}
		}
	}
	return cols
}

func loopStrings(vl cif.ValueLoop) []string {
	if ss := vl.Strings(); ss != nil {
		return ss
	}
	if ns := vl.Ints(); ns != nil {
		ss := make([]string, len(ns))
		for i, n := range ns {
			ss[i] = strconv.Itoa(n)
		}
		return ss
	}
	if fs := vl.Floats(); fs != nil {
		ss := make([]string, len(fs))
		for i, f := range fs {
			ss[i] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		return ss
	}
	return nil
}

func rawString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
