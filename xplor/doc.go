/*
Package xplor reads XPLOR-NIH and CNS restraint files: distance restraints
("assign sel sel d dminus dplus", with "or" alternatives), dihedral angle
restraints (four selections), residual dipolar couplings ("sani", four axis
selections and two atoms) and pseudocontact shifts ("xpcs", four axis
selections and one atom).

Selections are the usual XPLOR expressions built from segid, resid (with
ranges such as "resid 1:3"), resname, name and atom terms joined with and,
or and not. Comments start with "!" or are enclosed in braces.

Parse builds a syntax tree without interpreting any number. A Listener
walks the tree and hands every statement to a listener.Context.
*/
package xplor
