package pdbx

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/structure"
)

var (
	ef = fmt.Errorf
	sf = fmt.Sprintf
)

// Read reads exactly one PDB entry from the reader given. If there are 0
// entries or more than 1 entry, an error is returned.
//
// An error is also returned if the reader could not be interpreted as a valid
// PDBx/mmCIF file (which must be a valid CIF file).
func Read(r io.Reader) (*Entry, error) {
	entries, err := ReadAll(r)
	if err != nil {
		return nil, err
	} else if len(entries) != 1 {
		return nil, ef("Expected one PDB entry but got %d.", len(entries))
	}
	return entries[0], nil
}

// ReadAll reads all PDB entries from the reader provided, sorted by data
// block name.
func ReadAll(r io.Reader) ([]*Entry, error) {
	cf, err := cif.Read(r)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cf.Blocks))
	for name := range cf.Blocks {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []*Entry
	for _, name := range names {
		e, err := ReadCIFDataBlock(cf.Blocks[name])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Open reads the entry in the named file. Files ending in ".gz" are
// decompressed.
func Open(path string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, ef("%s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	e, err := Read(r)
	if err != nil {
		return nil, ef("%s: %w", path, err)
	}
	return e, nil
}

// Lazy reads a coordinate file the first time its entry is asked for.
// Later calls, from any goroutine, return the same entry.
type Lazy struct {
	Path string

	once  sync.Once
	entry *Entry
	err   error
}

// Entry returns the entry, reading it if necessary.
func (lz *Lazy) Entry() (*Entry, error) {
	lz.once.Do(func() {
		lz.entry, lz.err = Open(lz.Path)
	})
	return lz.entry, lz.err
}

// ReadCIFDataBlock converts a PDBx/mmCIF data block to a PDB entry.
//
// An error is returned if the data block has neither sequence schemes nor
// atom sites.
func ReadCIFDataBlock(b *cif.DataBlock) (*Entry, error) {
	e := &Entry{CIF: b}
	if err := e.read(b); err != nil {
		return nil, err
	}
	e.index()
	return e, nil
}

func (e *Entry) read(b *cif.DataBlock) error {
	e.Id = strings.ToLower(value(b, "entry.id"))
	if len(e.Id) == 0 {
		e.Id = strings.ToLower(b.Name)
	}
	e.Title = value(b, "struct.title")

	if err := e.readAtomSites(b); err != nil {
		return err
	}
	e.readPolySeqScheme(b)
	if len(e.Polymers) == 0 {
		e.polymersFromSites()
	}
	e.readNonPolyScheme(b)
	e.readUnobserved(b)
	if len(e.Polymers) == 0 && len(e.NonPolymers) == 0 {
		return ef("The given PDBx/mmCIF data has no polymer or non-polymer " +
			"residues.")
	}
	return nil
}

func (e *Entry) readPolySeqScheme(b *cif.DataBlock) {
	cols := asLoop(b, "pdbx_poly_seq_scheme.asym_id",
		"pdbx_poly_seq_scheme.entity_id", "pdbx_poly_seq_scheme.seq_id",
		"pdbx_poly_seq_scheme.mon_id", "pdbx_poly_seq_scheme.pdb_seq_num",
		"pdbx_poly_seq_scheme.pdb_mon_id", "pdbx_poly_seq_scheme.pdb_strand_id",
		"pdbx_poly_seq_scheme.auth_mon_id")
	asyms, eids := strs(cols[0]), strs(cols[1])
	seqids, mons := ints(cols[2]), strs(cols[3])
	pdbSeqs, pdbMons, strands := ints(cols[4]), strs(cols[5]), strs(cols[6])
	if asyms == nil || seqids == nil || mons == nil {
		return
	}

	var cur, alt *PolySeq
	for i := range asyms {
		if cur == nil || cur.LabelChainID != asyms[i] {
			cur = &PolySeq{LabelChainID: asyms[i], AuthChainID: asyms[i]}
			alt = nil
			e.Polymers = append(e.Polymers, cur)
		}
		if eids != nil {
			cur.EntityID = eids[i]
		}
		if strands != nil && len(strands[i]) > 0 {
			cur.AuthChainID = strands[i]
		}
		authSeq := seqids[i]
		if pdbSeqs != nil {
			authSeq = pdbSeqs[i]
		}
		authComp := mons[i]
		if pdbMons != nil && pdbMons[i] != "?" && pdbMons[i] != "." && len(pdbMons[i]) > 0 {
			authComp = pdbMons[i]
		}

		n := len(cur.LabelSeqIDs)
		if n > 0 && cur.LabelSeqIDs[n-1] == seqids[i] {
			// Micro-heterogeneity: same position, another component.
			if alt == nil {
				alt = &PolySeq{
					EntityID:     cur.EntityID,
					AuthChainID:  cur.AuthChainID,
					LabelChainID: cur.LabelChainID,
				}
				e.AltPolymers = append(e.AltPolymers, alt)
			}
			alt.appendAt(cur, n-1, mons[i])
			continue
		}
		cur.LabelSeqIDs = append(cur.LabelSeqIDs, seqids[i])
		cur.AuthSeqIDs = append(cur.AuthSeqIDs, authSeq)
		cur.CompIDs = append(cur.CompIDs, mons[i])
		cur.AuthCompIDs = append(cur.AuthCompIDs, authComp)
	}
	// Alternative chains are completed with the regular residues.
	for _, alt := range e.AltPolymers {
		ps, _ := e.PolymerByLabel(alt.LabelChainID)
		alt.fill(ps)
	}
}

// appendAt records comp as the alternative of position i of ps. The
// alternative chain is completed later by fill.
func (alt *PolySeq) appendAt(ps *PolySeq, i int, comp string) {
	alt.LabelSeqIDs = append(alt.LabelSeqIDs, ps.LabelSeqIDs[i])
	alt.AuthSeqIDs = append(alt.AuthSeqIDs, ps.AuthSeqIDs[i])
	alt.CompIDs = append(alt.CompIDs, comp)
	alt.AuthCompIDs = append(alt.AuthCompIDs, comp)
}

func (alt *PolySeq) fill(ps *PolySeq) {
	if ps == nil {
		return
	}
	comps := make(map[int]string, len(alt.LabelSeqIDs))
	for i, s := range alt.LabelSeqIDs {
		comps[s] = alt.CompIDs[i]
	}
	alt.LabelSeqIDs = append([]int(nil), ps.LabelSeqIDs...)
	alt.AuthSeqIDs = append([]int(nil), ps.AuthSeqIDs...)
	alt.CompIDs = make([]string, len(ps.CompIDs))
	for i, s := range ps.LabelSeqIDs {
		if c, ok := comps[s]; ok {
			alt.CompIDs[i] = c
		} else {
			alt.CompIDs[i] = ps.CompIDs[i]
		}
	}
	alt.AuthCompIDs = alt.CompIDs
}

func (e *Entry) readNonPolyScheme(b *cif.DataBlock) {
	cols := asLoop(b, "pdbx_nonpoly_scheme.asym_id",
		"pdbx_nonpoly_scheme.entity_id", "pdbx_nonpoly_scheme.mon_id",
		"pdbx_nonpoly_scheme.pdb_seq_num", "pdbx_nonpoly_scheme.pdb_strand_id")
	asyms, eids, mons := strs(cols[0]), strs(cols[1]), strs(cols[2])
	seqs, strands := ints(cols[3]), strs(cols[4])
	if asyms == nil || mons == nil || seqs == nil {
		e.nonPolymersFromSites()
		return
	}
	for i := range asyms {
		np := &NonPoly{
			LabelChainID: asyms[i],
			AuthChainID:  asyms[i],
			AuthSeqID:    seqs[i],
			CompID:       mons[i],
		}
		if eids != nil {
			np.EntityID = eids[i]
		}
		if strands != nil {
			np.AuthChainID = strands[i]
		}
		if np.CompID == "HOH" {
			continue
		}
		e.NonPolymers = append(e.NonPolymers, np)
	}
}

func (e *Entry) readUnobserved(b *cif.DataBlock) {
	cols := asLoop(b, "pdbx_unobs_or_zero_occ_residues.auth_asym_id",
		"pdbx_unobs_or_zero_occ_residues.auth_seq_id",
		"pdbx_unobs_or_zero_occ_residues.pdb_model_num")
	chains, seqs, models := strs(cols[0]), ints(cols[1]), ints(cols[2])
	if chains == nil || seqs == nil {
		return
	}
	seen := make(map[ResidueKey]bool)
	for i := range chains {
		if models != nil && models[i] > 1 {
			continue
		}
		k := ResidueKey{chains[i], seqs[i]}
		if !seen[k] {
			seen[k] = true
			e.Unobserved = append(e.Unobserved, k)
		}
	}
}

func (e *Entry) readAtomSites(b *cif.DataBlock) error {
	cols := asLoop(b, "atom_site.group_pdb", "atom_site.label_atom_id",
		"atom_site.label_comp_id", "atom_site.label_asym_id",
		"atom_site.label_seq_id", "atom_site.auth_asym_id",
		"atom_site.auth_seq_id", "atom_site.type_symbol",
		"atom_site.cartn_x", "atom_site.cartn_y", "atom_site.cartn_z",
		"atom_site.pdbx_pdb_model_num", "atom_site.label_alt_id")
	atoms, comps := strs(cols[1]), strs(cols[2])
	labelChains, labelSeqs := strs(cols[3]), ints(cols[4])
	authChains, authSeqs := strs(cols[5]), ints(cols[6])
	elements := strs(cols[7])
	xs, ys, zs := floats(cols[8]), floats(cols[9]), floats(cols[10])
	models, alts := ints(cols[11]), strs(cols[12])
	if atoms == nil || comps == nil || labelChains == nil ||
		xs == nil || ys == nil || zs == nil {
		return nil
	}
	if authChains == nil {
		authChains = labelChains
	}
	if authSeqs == nil {
		authSeqs = labelSeqs
	}
	if authSeqs == nil {
		return ef("The given PDBx/mmCIF data has atom sites without " +
			"residue numbers.")
	}

	e.sites = make(map[ResidueKey]*Site, 128)
	firstModel := 0
	modelSeen := make(map[int]bool)

	// The first alternate location of each component of a residue is kept.
	type altKey struct {
		ResidueKey
		comp string
	}
	altSeen := make(map[altKey]string)
	var order []ResidueKey
	for i := range atoms {
		if models != nil {
			if !modelSeen[models[i]] {
				modelSeen[models[i]] = true
			}
			if firstModel == 0 {
				firstModel = models[i]
			}
			if models[i] != firstModel {
				continue
			}
		}
		k := ResidueKey{authChains[i], authSeqs[i]}
		atom := Atom{
			Name:   atoms[i],
			Coords: structure.Coords{X: xs[i], Y: ys[i], Z: zs[i]},
		}
		if elements != nil {
			atom.Element = elements[i]
		}
		if alts != nil && alts[i] != "." && alts[i] != "?" && len(alts[i]) > 0 {
			ak := altKey{k, comps[i]}
			if a, ok := altSeen[ak]; ok && a != alts[i] {
				continue
			}
			altSeen[ak] = alts[i]
			atom.AltID = alts[i]
		}
		site, ok := e.sites[k]
		if !ok {
			site = &Site{ResidueKey: k, CompID: comps[i], LabelChainID: labelChains[i]}
			if labelSeqs != nil {
				site.LabelSeqID = labelSeqs[i]
			}
			e.sites[k] = site
			order = append(order, k)
		}
		if comps[i] != site.CompID {
			if site.Alt == nil {
				site.Alt = make(map[string][]Atom)
			}
			site.Alt[comps[i]] = append(site.Alt[comps[i]], atom)
			continue
		}
		site.Atoms = append(site.Atoms, atom)
	}
	e.NumModels = len(modelSeen)
	if e.NumModels == 0 {
		e.NumModels = 1
	}
	e.siteOrder = order
	return nil
}

// polymersFromSites builds polymer chains from the atom sites of a model
// only file: residues with a label sequence number, in file order.
func (e *Entry) polymersFromSites() {
	var cur *PolySeq
	for _, k := range e.siteOrder {
		s := e.sites[k]
		if s.LabelSeqID <= 0 {
			continue
		}
		if cur == nil || cur.LabelChainID != s.LabelChainID {
			cur, _ = e.PolymerByLabel(s.LabelChainID)
			if cur == nil {
				cur = &PolySeq{LabelChainID: s.LabelChainID, AuthChainID: s.Chain}
				e.Polymers = append(e.Polymers, cur)
			}
		}
		cur.LabelSeqIDs = append(cur.LabelSeqIDs, s.LabelSeqID)
		cur.AuthSeqIDs = append(cur.AuthSeqIDs, s.Seq)
		cur.CompIDs = append(cur.CompIDs, s.CompID)
		cur.AuthCompIDs = append(cur.AuthCompIDs, s.CompID)
	}
}

func (e *Entry) nonPolymersFromSites() {
	for _, k := range e.siteOrder {
		s := e.sites[k]
		if s.LabelSeqID > 0 || s.CompID == "HOH" {
			continue
		}
		e.NonPolymers = append(e.NonPolymers, &NonPoly{
			AuthChainID:  s.Chain,
			LabelChainID: s.LabelChainID,
			AuthSeqID:    s.Seq,
			CompID:       s.CompID,
		})
	}
}

// value returns the data value tagged by "key" as a string. If it does not
// exist, then an empty string is returned.
func value(b *cif.DataBlock, key string) string {
	if v, ok := b.Items[key]; ok {
		return rawString(v.Raw())
	}
	return ""
}

// asLoop retrieves the columns of the loop containing the data tag "key"
// for "key" and each of the tags in "others". If a loop does not exist,
// one is made with a single row from the data items. Tags that do not
// exist yield nil columns.
//
// The purpose of this function is to abstract over whether some data set in
// a PDBx/CIF file is represented as a loop or not. For example, if a PDBx file
// has only one entity, then the "entity.*" tags are not in a loop. But if there
// is more than one entity, they are declared as a loop.
func asLoop(b *cif.DataBlock, key string, others ...string) []cif.ValueLoop {
	tags := append([]string{key}, others...)
	cols := make([]cif.ValueLoop, len(tags))
	if loop, ok := b.Loops[key]; ok {
		for i, tag := range tags {
			if j, ok := loop.Columns[tag]; ok {
				cols[i] = loop.Values[j]
			}
		}
		return cols
	}
	for i, tag := range tags {
		v, ok := b.Items[tag]
		if !ok {
			continue
		}
		switch v := v.Raw().(type) {
		case string:
			cols[i] = cif.AsValues([]string{v})
		case int:
			cols[i] = cif.AsValues([]int{v})
		case float64:
			cols[i] = cif.AsValues([]float64{v})
		}
	}
	return cols
}

// strs returns a column as strings, whatever its type.
func strs(vl cif.ValueLoop) []string {
	if vl == nil {
		return nil
	}
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

// ints returns a column as integers. Values that are not integers, such as
// "." or "?", become 0.
func ints(vl cif.ValueLoop) []int {
	if vl == nil {
		return nil
	}
	if ns := vl.Ints(); ns != nil {
		return ns
	}
	ss := strs(vl)
	if ss == nil {
		return nil
	}
	ns := make([]int, len(ss))
	for i, s := range ss {
		if n, err := strconv.Atoi(s); err == nil {
			ns[i] = n
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			ns[i] = int(f)
		}
	}
	return ns
}

// floats returns a column as floats.
func floats(vl cif.ValueLoop) []float64 {
	if vl == nil {
		return nil
	}
	if fs := vl.Floats(); fs != nil {
		return fs
	}
	if ns := vl.Ints(); ns != nil {
		fs := make([]float64, len(ns))
		for i, n := range ns {
			fs[i] = float64(n)
		}
		return fs
	}
	ss := vl.Strings()
	if ss == nil {
		return nil
	}
	fs := make([]float64, len(ss))
	for i, s := range ss {
		fs[i], _ = strconv.ParseFloat(s, 64)
	}
	return fs
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
	return sf("%v", raw)
}
