/*
Package emit holds translated restraint, chemical shift and peak lists and
writes them as curator style (NMR-STAR) or community style (NEF) documents.

A List is a sequence of Records in input order. A Record keeps one selection
of atoms per atom position, so a wildcard name is a single selection of
several atoms; Rows expands the selections into output rows, which share the
record's Index_ID and are told apart by Member_ID.
*/
package emit
