/*
Package xeasy reads XEASY atom lists (.prot files), the chemical shift
format shared by XEASY and CYANA.

Each line gives an atom number, the chemical shift, its error, the atom
name in CYANA nomenclature and the residue number:

	   1 121.100 0.000 N        1
	   2   8.450 0.010 HN       1
	   3  52.300 0.000 CA       1

A shift of 999.000 marks an atom without an assignment.
*/
package xeasy
