/*
Package seqmap relates the residue numbers written in restraint files to the
residues of a coordinate model.

A coordinate model numbers every residue twice: with the author's numbering
(auth_seq_id) and with a sequential label numbering (label_seq_id). Restraint
files normally use author numbering, but some use label numbering, some are
off by a constant offset, and some give ligands a number of their own.
Resolver answers lookups under both schemes, SchemeTracker notices files
that consistently use label numbering, and OffsetInferrer finds a constant
offset explaining a set of failed lookups.
*/
package seqmap
