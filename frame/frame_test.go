/*
 * frame_test.go, part of gonuc.
 *
 * Copyright 2026 The goNuc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package frame

import (
	"errors"
	"math"
	"testing"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/internal/ideal"
	v3 "github.com/rmera/gonuc/v3"
	matrix "github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/mat"
)

func classified(Te *testing.T, B *ideal.Builder) *nuc.Structure {
	Te.Helper()
	S, err := B.Structure()
	if err != nil {
		Te.Fatal(err)
	}
	S.Classify(nuc.DefaultRegistry())
	return S
}

func TestFitRecoversFrame(Te *testing.T) {
	orient := nuc.RotatorAroundAxis(v3.Vec(-1, 0.5, 2), 2.2)
	origin := v3.Vec(10, -4, 3.3)
	B := new(ideal.Builder)
	B.Add('G', "DG", "A", orient, origin)
	S := classified(Te, B)
	fit, err := FitResidue(S, 0, nuc.StandardTemplates(), DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if !mat.EqualApprox(fit.Frame.Orient, orient, 1e-9) || !mat.EqualApprox(fit.Frame.Origin, origin, 1e-9) {
		Te.Errorf("frame not recovered:\n%s", fit.Frame)
	}
	if fit.RMSD > 1e-6 || fit.Fallback || len(fit.Matched) != 9 {
		Te.Errorf("unexpected diagnostics: rmsd %f fallback %t matched %v", fit.RMSD, fit.Fallback, fit.Matched)
	}
}

//The frames are checked against an independent matrix library.
func TestFrameGoMatrix(Te *testing.T) {
	S, err := ideal.Duplex("GATC", 36, 3.38)
	if err != nil {
		Te.Fatal(err)
	}
	S.Classify(nuc.DefaultRegistry())
	fits := FitAll(S, nuc.StandardTemplates(), DefaultOptions())
	for i, f := range fits {
		if f == nil {
			Te.Fatalf("residue %d not fitted", i)
		}
		R := matrix.MakeDenseMatrix(append([]float64(nil), f.Frame.Orient.RawMatrix().Data...), 3, 3)
		if d := R.Det(); math.Abs(d-1) > 1e-9 {
			Te.Errorf("residue %d: determinant %f", i, d)
		}
		RRt, _ := R.TimesDense(R.Transpose())
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				exp := 0.0
				if j == k {
					exp = 1
				}
				if math.Abs(RRt.Get(j, k)-exp) > 1e-9 {
					Te.Errorf("residue %d: axes not orthonormal", i)
				}
			}
		}
		tmpl, _ := nuc.StandardTemplates().Template(S.Residue(i).Type().Letter)
		loc, _ := tmpl.Sub(f.Matched)
		L := matrix.MakeDenseMatrix(append([]float64(nil), loc.RawMatrix().Data...), len(f.Matched), 3)
		G, _ := L.TimesDense(R)
		for j, at := range f.Atoms {
			for k := 0; k < 3; k++ {
				if math.Abs(G.Get(j, k)+f.Frame.Origin.At(0, k)-S.Coords.At(at, k)) > 1e-6 {
					Te.Errorf("residue %d atom %s not in place", i, f.Matched[j])
				}
			}
		}
	}
}

func TestTooFewAtoms(Te *testing.T) {
	B := new(ideal.Builder)
	B.Add('C', "DC", "A", v3.Eye(), v3.Zeros(1))
	S, _ := B.Structure()
	//keep only C1', N1 and C2
	ats := []*nuc.Atom{S.Atom(0).Copy(), S.Atom(1).Copy(), S.Atom(2).Copy()}
	c := v3.Zeros(3)
	c.SomeVecs(S.Coords, []int{0, 1, 2})
	S2, err := nuc.NewStructure(ats, c)
	if err != nil {
		Te.Fatal(err)
	}
	S2.Classify(nuc.DefaultRegistry())
	_, err = FitResidue(S2, 0, nuc.StandardTemplates(), DefaultOptions())
	if !errors.Is(err, ErrTooFewAtoms) {
		Te.Errorf("expected ErrTooFewAtoms, got %v", err)
	}
	if fits := FitAll(S2, nuc.StandardTemplates(), DefaultOptions()); fits[0] != nil {
		Te.Errorf("an unfittable residue must get a nil Fit")
	}
}

func TestFallbackKeepsType(Te *testing.T) {
	B := new(ideal.Builder)
	B.Add('A', "DA", "A", v3.Eye(), v3.Zeros(1))
	S := classified(Te, B)
	//move the five-membered ring out of the plane
	for _, n := range []string{"N7", "C8", "N9"} {
		i := S.AtomIndex(0, n)
		S.Coords.Set(i, 2, 1.2)
	}
	O := DefaultOptions()
	fit, err := FitResidue(S, 0, nuc.StandardTemplates(), O)
	if err != nil {
		Te.Fatal(err)
	}
	if !fit.Fallback || len(fit.Matched) != 6 {
		Te.Errorf("expected a fallback fit with 6 atoms, got %v", fit.Matched)
	}
	if S.Residue(0).Type().Letter != 'A' || !S.Residue(0).Type().Purine {
		Te.Errorf("the base type must not change")
	}
	O.Fallback(false)
	if _, err := FitResidue(S, 0, nuc.StandardTemplates(), O); !errors.Is(err, ErrUnfittable) {
		Te.Errorf("expected ErrUnfittable without fallback, got %v", err)
	}
	O.Fallback(true)
	O.StrictRMSD(1.0)
	if fit, _ := FitResidue(S, 0, nuc.StandardTemplates(), O); fit == nil || fit.Fallback {
		Te.Errorf("with a loose cutoff the full purine ring should be accepted")
	}
}

func TestRNAUsesC1Prime(Te *testing.T) {
	B := new(ideal.Builder)
	B.Add('U', "U", "A", v3.Eye(), v3.Zeros(1))
	B.AddAtom("O2'", "O", -3.0, 6.0, 1.0)
	S := classified(Te, B)
	fit, err := FitResidue(S, 0, nuc.StandardTemplates(), DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if fit.Matched[0] != "C1'" || len(fit.Matched) != 7 {
		Te.Errorf("expected C1' plus the 6 ring atoms, got %v", fit.Matched)
	}
	O := DefaultOptions()
	O.C1PrimeForRNA(false)
	fit, _ = FitResidue(S, 0, nuc.StandardTemplates(), O)
	if len(fit.Matched) != 6 {
		Te.Errorf("expected only the ring atoms, got %v", fit.Matched)
	}
}

func TestFrameOps(Te *testing.T) {
	F := New(nuc.RotatorAroundAxis(v3.Vec(0, 0, 1), 0.3), v3.Vec(1, 2, 3))
	p := v3.Vec(0.5, -1, 2)
	back := F.ToLocal(F.ToGlobal(p))
	if !mat.EqualApprox(back, p, 1e-12) {
		Te.Errorf("ToLocal is not the inverse of ToGlobal: %v", back)
	}
	G := F.Flipped()
	if !mat.EqualApprox(G.X(), F.X(), 0) || G.Y().Dot(F.Y()) > -0.999999 || G.Z().Dot(F.Z()) > -0.999999 {
		Te.Errorf("bad flipped frame %s", G)
	}
	if v3.Det(G.Orient) < 0 {
		Te.Errorf("a flipped frame must stay right-handed")
	}
}
