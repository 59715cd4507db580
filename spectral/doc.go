// Package spectral infers the metadata of the dimensions of a peak list
// (atom type, isotope, axis code, acquisition and under-sampling) when the
// file itself does not give it.
package spectral
