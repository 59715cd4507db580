/*
Package nomenclature maps the atom names written by NMR programs onto the
atom names of the chemical component dictionary.

Besides plain names, authors use wildcards ("HB%", "HB*", "HB#"),
stereo selectors for prochiral pairs ("HBx", "CDy"), pseudo atoms for
methyl and methylene groups ("QB", "MD1", "QQD") and a handful of legacy
names ("HN", "OT1", "C1*"). Normalize expands all of them into a sorted
list of dictionary atoms and an ambiguity code:

	0  a single, plain atom
	1  every member of a wildcard family
	2  one member of a prochiral pair, chosen by the x/y selector

ToCommunity goes the other way and writes a set of atoms with a single
community style (NEF) name where one exists.
*/
package nomenclature
