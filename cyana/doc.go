/*
Package cyana reads the restraint files of CYANA and DYANA: upper and
lower distance limits (.upl, .lol), dihedral angle restraints (.aco),
residual dipolar couplings (.rdc) and pseudocontact shifts (.pcs).

Every line holds one restraint. An atom is written as residue number,
residue name and atom name, optionally followed by a chain identifier:

	   12 ALA  HA    20 LEU  QD1    4.50
	OR 12 ALA  HA    21 LEU  QD1
	    3 CYS  PHI   -80.0  -40.0

A line starting with OR adds an alternative pair of atoms to the distance
restraint above it. How the numbers of a distance line are read depends on
the Mode.
*/
package cyana
