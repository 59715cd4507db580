package spectral

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		ppm      float64
		atomType string
		isotope  int
		axisCode string
		ok       bool
	}{
		{119.4, "N", 15, "N_ami", true},
		{127.0, "C", 13, "C_aro", true},
		{175.5, "C", 13, "CO", true},
		{56.0, "", 0, "", false},
		{62.0, "C", 13, "C", true},
		{40.0, "C", 13, "C_ali", true},
		{8.2, "H", 1, "H_ami_or_aro", true},
		{4.5, "H", 1, "H", true},
		{1.2, "", 0, "", false},
		{125.0, "C", 13, "C_aro", true},
	}
	for _, test := range tests {
		typ, iso, code, ok := Classify(test.ppm)
		if typ != test.atomType || iso != test.isotope || code != test.axisCode || ok != test.ok {
			t.Errorf("Classify(%v) = %s, %d, %s, %v", test.ppm, typ, iso, code, ok)
		}
	}
}

func TestInferHSQC(t *testing.T) {
	dims := NewDims(2)
	for _, p := range [][2]float64{{8.1, 118.9}, {8.5, 120.2}, {7.9, 119.1}} {
		dims[0].Observe(p[0])
		dims[1].Observe(p[1])
	}
	if c, _ := dims[1].Center(); math.Abs(c-119.4) > 1e-9 {
		t.Fatalf("center %v", c)
	}
	Infer(dims, false)

	n := dims[1]
	if n.AtomType != "N" || n.Isotope != 15 || n.AxisCode != "N_ami" {
		t.Fatalf("dimension 2: %s %d %s", n.AtomType, n.Isotope, n.AxisCode)
	}
	h := dims[0]
	if h.AtomType != "H" || h.AxisCode != "H_ami_or_aro" || !h.Acquisition {
		t.Fatalf("dimension 1: %s %s acquisition %v", h.AtomType, h.AxisCode, h.Acquisition)
	}
	if n.Acquisition {
		t.Fatal("15N dimension must not be the acquisition dimension")
	}
	if n.UnderSampling != NotObserved {
		t.Fatalf("under-sampling %q", n.UnderSampling)
	}
}

func TestInferAcquisitionHighestID(t *testing.T) {
	dims := NewDims(3)
	for _, p := range [][3]float64{{4.5, 8.2, 120}, {4.3, 8.4, 118}} {
		for i, v := range p {
			dims[i].Observe(v)
		}
	}
	Infer(dims, false)
	if dims[0].Acquisition || !dims[1].Acquisition || dims[2].Acquisition {
		t.Fatal("dimension 2 should be the acquisition dimension")
	}
}

func TestInferSolidState(t *testing.T) {
	dims := NewDims(2)
	dims[0].Observe(55)
	dims[0].Observe(175)
	dims[1].Observe(45)
	dims[1].Observe(47)
	dims[0].ObserveAtom("C")
	Infer(dims, true)
	if !dims[1].Acquisition {
		t.Fatal("highest 13C dimension should acquire in solid state")
	}
	if dims[0].AtomType != "C" || dims[0].UnderSampling != NotObserved {
		t.Fatalf("dimension 1: %s %s", dims[0].AtomType, dims[0].UnderSampling)
	}
}

func TestInferFolded(t *testing.T) {
	dims := NewDims(1)
	dims[0].ObserveAtom("C")
	dims[0].Observe(20)
	dims[0].Observe(75)
	Infer(dims, false)
	if dims[0].UnderSampling != Folded {
		t.Fatalf("under-sampling %q", dims[0].UnderSampling)
	}
	if !dims[0].Acquisition {
		t.Fatal("fallback acquisition dimension is 1")
	}
}

func TestInferKeepsHeader(t *testing.T) {
	dims := NewDims(1)
	dims[0].AtomType, dims[0].Isotope, dims[0].AxisCode = "C", 13, "C_ali"
	dims[0].Observe(8.0)
	Infer(dims, false)
	if dims[0].AxisCode != "C_ali" {
		t.Fatalf("axis code overwritten: %s", dims[0].AxisCode)
	}
}

func TestParseIsotope(t *testing.T) {
	for _, s := range []string{"15N", "N"} {
		if typ, iso, ok := ParseIsotope(s); !ok || typ != "N" || iso != 15 {
			t.Errorf("ParseIsotope(%q) = %s %d %v", s, typ, iso, ok)
		}
	}
	if _, _, ok := ParseIsotope("12X"); ok {
		t.Error("12X should not parse")
	}
}
