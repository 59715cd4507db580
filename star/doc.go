/*
Package star writes STAR documents: the tagged-loop text format shared by
NMR-STAR and NEF files.

Unlike a CIF writer, which may order items freely, a Document keeps the
order in which frames, items, loops and rows were added, so writing the same
document twice gives the same bytes.
*/
package star
