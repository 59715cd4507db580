// Package shiftstat answers classification questions about residue types
// and their atoms that chemical shift handling needs: polymer type and the
// largest ambiguity code an atom can carry without an ambiguity set.
package shiftstat
