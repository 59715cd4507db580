/*
Package sparky reads Sparky peak lists and resonance lists.

A peak list starts with a header naming its columns, followed by one peak
per line. The assignment names one atom per dimension; a part without a
residue inherits the residue of the part before it and "?" leaves a
dimension unassigned:

	      Assignment         w1         w2   Data Height     Volume
	          G16N-H    119.400      8.201       1.23e+05   2.10e+06 ga
	             ?-?    120.100      7.900       4.00e+04   0.00e+00 --

A resonance list gives one chemical shift per line:

	 Group   Atom  Nuc    Shift   SDev  Assignments
	   G16      N  15N  119.400  0.012            3
*/
package sparky
