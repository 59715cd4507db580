/*
Package listener holds the state shared by the dialect listeners while they
walk a parse tree: the coordinate entry and reference dictionaries, the
plan of the current pass, the warnings collected so far and the lists
being built.

A dialect listener never resolves residues itself. For each row it calls
Reset, then AssignCoordPolymerSequence and SelectCoordAtoms once per atom
position, then one of the Emit or Add methods with the numbers it read.
Finish closes the pass and records what a second pass should do
differently.
*/
package listener
