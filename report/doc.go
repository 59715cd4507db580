/*
Package report defines the warning and error taxonomy shared by every stage
of restraint translation, and Log, an ordered and de-duplicated collection of
messages.

Every Kind carries a disposition that tells a caller what happened to the
data that raised it: the assignment was dropped, the row was dropped, the
value was kept and annotated, and so on. Only I/O failures are fatal; those
are returned as Go errors and never stored in a Log.
*/
package report
