/*
Package chemcomp provides chemical component definitions: the atoms of a
residue type, its covalent bonds and its classification.

Standard is a built-in dictionary of the twenty standard amino acids and
the eight standard nucleotides. Dir reads definitions on demand from a
directory of Chemical Component Dictionary files (one PDBx/mmCIF file per
component) and falls back to another dictionary for components it does not
have. Both are safe for concurrent use and never change a Component once it
has been returned.
*/
package chemcomp
