/*
Package reparse implements the two pass negotiation used when a first pass
over an input cannot resolve identifiers without knowledge that only
becomes available at the end of the pass.

During a pass, code records Reasons. At the end of the pass the reasons are
frozen into a Plan and, if any were recorded, the input is parsed a second
time with the plan available for reading. A pass never sees reasons it
records itself. At most one re-parse happens.
*/
package reparse
