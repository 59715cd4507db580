/*
Package rosetta reads Rosetta constraint files. AtomPair lines become
distance restraints, Dihedral lines dihedral angle restraints, and the
AtomPair lines of an AmbiguousConstraint block become the alternatives of
a single distance restraint.

	AtomPair  HA 2A  HB2 4A  BOUNDED 1.8 4.5 0.5 NOE
	Dihedral  C 1 N 2 CA 2 C 2  CIRCULARHARMONIC -1.05 0.35

Residues are numbered as in the coordinate file and may carry a chain
letter. The constraint functions HARMONIC, BOUNDED, FLAT_HARMONIC,
CIRCULARHARMONIC and SCALARWEIGHTEDFUNC are understood. Angles are read in
radians.
*/
package rosetta
