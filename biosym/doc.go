/*
Package biosym reads distance restraints written for BIOSYM Discover.

Each line names two atoms as chain:residue_number:atom followed by the
lower and upper distance limits. The chain may be left empty:

	A:LEU_12:HA    A:ALA_20:HB*    1.800   5.000
	 :GLY_3:HN      :SER_4:HN      1.800   3.300
*/
package biosym
