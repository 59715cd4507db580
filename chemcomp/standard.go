package chemcomp

import (
	"strings"
	"sync"
)

// residueDef is a compact component definition. Heavy atoms are listed in
// definition order, bonds as "A-B" pairs between heavy atoms and hydrogens
// as "PARENT:H1,H2" groups.
type residueDef struct {
	heavy, bonds, hydrogens string
}

var standardAmino = []string{
	"ALA", "ARG", "ASN", "ASP", "CYS", "GLN", "GLU", "GLY", "HIS", "ILE",
	"LEU", "LYS", "MET", "PHE", "PRO", "SER", "THR", "TRP", "TYR", "VAL",
}

// side chains of the amino acids; the backbone is added by aminoDef.
var sideChains = map[string]residueDef{
	"ALA": {"CB", "CA-CB", "CB:HB1,HB2,HB3"},
	"ARG": {"CB CG CD NE CZ NH1 NH2",
		"CA-CB CB-CG CG-CD CD-NE NE-CZ CZ-NH1 CZ-NH2",
		"CB:HB2,HB3 CG:HG2,HG3 CD:HD2,HD3 NE:HE NH1:HH11,HH12 NH2:HH21,HH22"},
	"ASN": {"CB CG OD1 ND2", "CA-CB CB-CG CG-OD1 CG-ND2",
		"CB:HB2,HB3 ND2:HD21,HD22"},
	"ASP": {"CB CG OD1 OD2", "CA-CB CB-CG CG-OD1 CG-OD2",
		"CB:HB2,HB3 OD2:HD2"},
	"CYS": {"CB SG", "CA-CB CB-SG", "CB:HB2,HB3 SG:HG"},
	"GLN": {"CB CG CD OE1 NE2", "CA-CB CB-CG CG-CD CD-OE1 CD-NE2",
		"CB:HB2,HB3 CG:HG2,HG3 NE2:HE21,HE22"},
	"GLU": {"CB CG CD OE1 OE2", "CA-CB CB-CG CG-CD CD-OE1 CD-OE2",
		"CB:HB2,HB3 CG:HG2,HG3 OE2:HE2"},
	"GLY": {"", "", ""},
	"HIS": {"CB CG ND1 CD2 CE1 NE2",
		"CA-CB CB-CG CG-ND1 CG-CD2 ND1-CE1 CD2-NE2 CE1-NE2",
		"CB:HB2,HB3 ND1:HD1 CD2:HD2 CE1:HE1 NE2:HE2"},
	"ILE": {"CB CG1 CG2 CD1", "CA-CB CB-CG1 CB-CG2 CG1-CD1",
		"CB:HB CG1:HG12,HG13 CG2:HG21,HG22,HG23 CD1:HD11,HD12,HD13"},
	"LEU": {"CB CG CD1 CD2", "CA-CB CB-CG CG-CD1 CG-CD2",
		"CB:HB2,HB3 CG:HG CD1:HD11,HD12,HD13 CD2:HD21,HD22,HD23"},
	"LYS": {"CB CG CD CE NZ", "CA-CB CB-CG CG-CD CD-CE CE-NZ",
		"CB:HB2,HB3 CG:HG2,HG3 CD:HD2,HD3 CE:HE2,HE3 NZ:HZ1,HZ2,HZ3"},
	"MET": {"CB CG SD CE", "CA-CB CB-CG CG-SD SD-CE",
		"CB:HB2,HB3 CG:HG2,HG3 CE:HE1,HE2,HE3"},
	"PHE": {"CB CG CD1 CD2 CE1 CE2 CZ",
		"CA-CB CB-CG CG-CD1 CG-CD2 CD1-CE1 CD2-CE2 CE1-CZ CE2-CZ",
		"CB:HB2,HB3 CD1:HD1 CD2:HD2 CE1:HE1 CE2:HE2 CZ:HZ"},
	"PRO": {"CB CG CD", "CA-CB CB-CG CG-CD N-CD",
		"CB:HB2,HB3 CG:HG2,HG3 CD:HD2,HD3"},
	"SER": {"CB OG", "CA-CB CB-OG", "CB:HB2,HB3 OG:HG"},
	"THR": {"CB OG1 CG2", "CA-CB CB-OG1 CB-CG2",
		"CB:HB OG1:HG1 CG2:HG21,HG22,HG23"},
	"TRP": {"CB CG CD1 CD2 NE1 CE2 CE3 CZ2 CZ3 CH2",
		"CA-CB CB-CG CG-CD1 CG-CD2 CD1-NE1 CD2-CE2 CD2-CE3 NE1-CE2 " +
			"CE2-CZ2 CE3-CZ3 CZ2-CH2 CZ3-CH2",
		"CB:HB2,HB3 CD1:HD1 NE1:HE1 CE3:HE3 CZ2:HZ2 CZ3:HZ3 CH2:HH2"},
	"TYR": {"CB CG CD1 CD2 CE1 CE2 CZ OH",
		"CA-CB CB-CG CG-CD1 CG-CD2 CD1-CE1 CD2-CE2 CE1-CZ CE2-CZ CZ-OH",
		"CB:HB2,HB3 CD1:HD1 CD2:HD2 CE1:HE1 CE2:HE2 OH:HH"},
	"VAL": {"CB CG1 CG2", "CA-CB CB-CG1 CB-CG2",
		"CB:HB CG1:HG11,HG12,HG13 CG2:HG21,HG22,HG23"},
}

func aminoDef(id string) residueDef {
	side := sideChains[id]
	alpha := "CA:HA"
	if id == "GLY" {
		alpha = "CA:HA2,HA3"
	}
	amide := "N:H,H2"
	if id == "PRO" {
		amide = "N:H"
	}
	return residueDef{
		heavy:     join("N CA C O", side.heavy, "OXT"),
		bonds:     join("N-CA CA-C C-O", side.bonds, "C-OXT"),
		hydrogens: join(amide, alpha, side.hydrogens, "OXT:HXT"),
	}
}

const (
	phosphate     = "OP3 P OP1 OP2 O5' C5' C4' O4' C3' O3'"
	phosphateBond = "OP3-P P-OP1 P-OP2 P-O5' O5'-C5' C5'-C4' C4'-O4' " +
		"C4'-C3' C3'-O3' C3'-C2' C2'-C1' O4'-C1'"
	phosphateH = "OP3:HOP3 OP2:HOP2 C5':H5',H5'' C4':H4' C3':H3' " +
		"O3':HO3' C1':H1'"
)

// bases of the nucleotides, keyed by the ribonucleotide identifier.
var bases = map[string]residueDef{
	"A": {"N9 C8 N7 C5 C6 N6 N1 C2 N3 C4",
		"C1'-N9 N9-C8 C8-N7 N7-C5 C5-C6 C6-N6 C6-N1 N1-C2 C2-N3 N3-C4 " +
			"C4-C5 N9-C4",
		"C8:H8 N6:H61,H62 C2:H2"},
	"C": {"N1 C2 O2 N3 C4 N4 C5 C6",
		"C1'-N1 N1-C2 C2-O2 C2-N3 N3-C4 C4-N4 C4-C5 C5-C6 C6-N1",
		"N4:H41,H42 C5:H5 C6:H6"},
	"G": {"N9 C8 N7 C5 C6 O6 N1 C2 N2 N3 C4",
		"C1'-N9 N9-C8 C8-N7 N7-C5 C5-C6 C6-O6 C6-N1 N1-C2 C2-N2 C2-N3 " +
			"N3-C4 C4-C5 N9-C4",
		"C8:H8 N1:H1 N2:H21,H22"},
	"U": {"N1 C2 O2 N3 C4 O4 C5 C6",
		"C1'-N1 N1-C2 C2-O2 C2-N3 N3-C4 C4-O4 C4-C5 C5-C6 C6-N1",
		"N3:H3 C5:H5 C6:H6"},
	"T": {"N1 C2 O2 N3 C4 O4 C5 C7 C6",
		"C1'-N1 N1-C2 C2-O2 C2-N3 N3-C4 C4-O4 C4-C5 C5-C7 C5-C6 C6-N1",
		"N3:H3 C7:H71,H72,H73 C6:H6"},
}

func nucleotideDef(base string, deoxy bool) residueDef {
	b := bases[base]
	if deoxy {
		return residueDef{
			heavy:     join(phosphate, "C2' C1'", b.heavy),
			bonds:     join(phosphateBond, b.bonds),
			hydrogens: join(phosphateH, "C2':H2',H2''", b.hydrogens),
		}
	}
	return residueDef{
		heavy:     join(phosphate, "C2' O2' C1'", b.heavy),
		bonds:     join(phosphateBond, "C2'-O2'", b.bonds),
		hydrogens: join(phosphateH, "C2':H2' O2':HO2'", b.hydrogens),
	}
}

func join(parts ...string) string {
	var keep []string
	for _, p := range parts {
		if len(p) > 0 {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, " ")
}

func (def residueDef) build(id, typ string) *Component {
	c := &Component{ID: id, Type: typ, OneLetter: OneLetter(id)}
	for _, name := range strings.Fields(def.heavy) {
		c.Atoms = append(c.Atoms, Atom{
			ID:         name,
			TypeSymbol: name[:1],
			Leaving:    name == "OXT" || name == "OP3",
		})
	}
	for _, pair := range strings.Fields(def.bonds) {
		ab := strings.SplitN(pair, "-", 2)
		c.Bonds = append(c.Bonds, Bond{ab[0], ab[1], "SING"})
	}
	for _, group := range strings.Fields(def.hydrogens) {
		pieces := strings.SplitN(group, ":", 2)
		for _, h := range strings.Split(pieces[1], ",") {
			c.Atoms = append(c.Atoms, Atom{
				ID:         h,
				TypeSymbol: "H",
				Leaving:    h == "H2" && c.IsPeptide() || h == "HXT" || h == "HOP3",
			})
			c.Bonds = append(c.Bonds, Bond{pieces[0], h, "SING"})
		}
	}
	return c.finish()
}

type builtin struct {
	once  sync.Once
	comps map[string]*Component
}

// Standard holds the standard amino acids and nucleotides.
var Standard Dictionary = &builtin{}

func (b *builtin) init() {
	b.comps = make(map[string]*Component, 30)
	for _, id := range standardAmino {
		b.comps[id] = aminoDef(id).build(id, TypePeptide)
	}
	for _, base := range []string{"A", "C", "G", "U"} {
		b.comps[base] = nucleotideDef(base, false).build(base, TypeRNA)
	}
	for _, base := range []string{"A", "C", "G", "T"} {
		id := "D" + base
		b.comps[id] = nucleotideDef(base, true).build(id, TypeDNA)
	}
}

func (b *builtin) Component(compID string) (*Component, bool) {
	b.once.Do(b.init)
	c, ok := b.comps[strings.ToUpper(compID)]
	return c, ok
}
