/*
 * selection_test.go, part of gonuc.
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

package selection

import (
	"math"
	"reflect"
	"testing"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/frame"
	"github.com/rmera/gonuc/internal/ideal"
	"github.com/rmera/gonuc/pairs"
	v3 "github.com/rmera/gonuc/v3"
)

//table is a Scorer with fixed scores. Pairs not in the table are invalid.
type table struct {
	n      int
	scores map[[2]int]float64
}

func (T *table) Candidates() []int {
	ret := make([]int, T.n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

func (T *table) Score(i, j int) (float64, bool) {
	s, ok := T.scores[key(i, j)]
	return s, ok
}

func TestSelectFour(Te *testing.T) {
	T := &table{4, map[[2]int]float64{{0, 1}: 4, {2, 3}: 4, {0, 2}: 5, {0, 3}: 5, {1, 2}: 5, {1, 3}: 5}}
	sel, err := Select(T)
	if err != nil {
		Te.Fatal(err)
	}
	if exp := [][2]int{{0, 1}, {2, 3}}; !reflect.DeepEqual(sel, exp) {
		Te.Errorf("expected %v, got %v", exp, sel)
	}
	checkUnique(Te, sel)
	best := BestPartners(T, T.Candidates())
	for _, p := range sel {
		if best[p[0]] != p[1] || best[p[1]] != p[0] {
			Te.Errorf("%v is not a mutual best pair", p)
		}
	}
}

//checkUnique verifies that no residue is in two pairs.
func checkUnique(Te *testing.T, sel [][2]int) {
	Te.Helper()
	used := make(map[int]bool)
	for _, p := range sel {
		if used[p[0]] || used[p[1]] {
			Te.Errorf("residue used twice in %v", sel)
		}
		used[p[0]], used[p[1]] = true, true
	}
}

func TestSelectTies(Te *testing.T) {
	T := &table{3, map[[2]int]float64{{0, 1}: 1, {0, 2}: 1, {1, 2}: 1}}
	sel, err := Select(T)
	if err != nil {
		Te.Fatal(err)
	}
	if exp := [][2]int{{0, 1}}; !reflect.DeepEqual(sel, exp) {
		Te.Errorf("ties must go to the smallest index: expected %v, got %v", exp, sel)
	}
	best := BestPartners(T, []int{0, 1, 2})
	if best[0] != 1 || best[1] != 0 || best[2] != 0 {
		Te.Errorf("bad best partners %v", best)
	}
}

func TestSelectPasses(Te *testing.T) {
	//0 and 3 only pair once 1 and 2 are taken.
	T := &table{4, map[[2]int]float64{{0, 1}: 1, {1, 2}: 0.5, {2, 3}: 1, {0, 3}: 3}}
	sel, err := Select(T)
	if err != nil {
		Te.Fatal(err)
	}
	if exp := [][2]int{{1, 2}, {0, 3}}; !reflect.DeepEqual(sel, exp) {
		Te.Errorf("expected %v, got %v", exp, sel)
	}
	checkUnique(Te, sel)
	if sel, _ := Select(&table{5, nil}); len(sel) != 0 {
		Te.Errorf("no valid pairs, but got %v", sel)
	}
}

//counter counts the recordings of each pair.
type counter map[[2]int]int

func (C counter) Record(S *nuc.Structure, r *pairs.Result) error {
	C[key(r.I, r.J)]++
	return nil
}

func TestFindDuplex(Te *testing.T) {
	seq := "GCATGC"
	S, err := ideal.Duplex(seq, 36, 3.38)
	if err != nil {
		Te.Fatal(err)
	}
	O := DefaultOptions()
	rec := make(counter)
	O.Recorder = rec
	bps, err := Find(S, O)
	if err != nil {
		Te.Fatal(err)
	}
	n := len(seq)
	if len(bps) != n {
		Te.Fatalf("expected %d pairs, got %d", n, len(bps))
	}
	for k, bp := range bps {
		if bp.I != k || bp.J != 2*n-1-k || bp.BPType != pairs.WatsonCrick {
			Te.Errorf("bad pair %s", bp.String(S))
		}
		if bp.Letters[0] != seq[k] {
			Te.Errorf("bad letters %s for pair %d", bp.Letters, k)
		}
		if !bp.Result.Valid || bp.Score >= bp.Result.BaseScore {
			Te.Errorf("bad result for pair %d: %s", k, bp.Result)
		}
	}
	if len(rec) != 2*n*(2*n-1)/2 {
		Te.Errorf("expected every pair to be recorded, got %d", len(rec))
	}
	for k, v := range rec {
		if v != 1 {
			Te.Errorf("pair %v recorded %d times", k, v)
		}
	}
	st := StepsFor(bps)
	if len(st) != n-1 {
		Te.Fatalf("expected %d steps, got %d", n-1, len(st))
	}
	for _, s := range st {
		if math.Abs(s.Steps.Twist-36) > 1e-4 || math.Abs(s.Steps.Rise-3.38) > 1e-4 || math.Abs(s.Steps.Roll) > 1e-4 {
			Te.Errorf("bad step %s", s.Steps)
		}
		if s.Helical.Undefined != 0 || math.Abs(s.Helical.Twist-36) > 1e-4 || math.Abs(s.Helical.XDisp) > 1e-4 {
			Te.Errorf("bad helical step %s", s.Helical)
		}
	}
}

//A residue 20 A away from the others is never anybody's best partner, and is left unpaired.
func TestFarResidue(Te *testing.T) {
	B := new(ideal.Builder)
	B.Add('G', "DG", "A", v3.Eye(), v3.Zeros(1))
	B.Add('C', "DC", "B", ideal.Flip(v3.Eye()), v3.Zeros(1))
	B.Add('A', "DA", "C", v3.Eye(), v3.Vec(20, 0, 0))
	S, err := B.Structure()
	if err != nil {
		Te.Fatal(err)
	}
	S.Classify(nuc.DefaultRegistry())
	fits := frame.FitAll(S, nuc.StandardTemplates(), frame.DefaultOptions())
	C, err := NewContext(S, fits, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	cand := C.Candidates()
	if len(cand) != 3 {
		Te.Fatalf("expected 3 fitted residues, got %d", len(cand))
	}
	C.Prepare(cand)
	for _, i := range []int{0, 1} {
		r := C.Result(i, 2)
		if r.Valid || r.Reason != pairs.BadDOrg || math.Abs(r.Dorg-20) > 1e-6 {
			Te.Errorf("expected an invalid pair by dorg, got %s", r)
		}
	}
	best := BestPartners(C, cand)
	if best[0] != 1 || best[1] != 0 || best[2] >= 0 {
		Te.Errorf("bad best partners %v", best)
	}
	sel, err := Select(C)
	if err != nil {
		Te.Fatal(err)
	}
	if exp := [][2]int{{0, 1}}; !reflect.DeepEqual(sel, exp) {
		Te.Errorf("expected %v, got %v", exp, sel)
	}
}

//Pairs found in a later pass are not left at the end: steps always join neighbour pairs.
func TestStepsOrder(Te *testing.T) {
	S, err := ideal.Duplex("GCATGCAT", 36, 3.38)
	if err != nil {
		Te.Fatal(err)
	}
	bps, err := Find(S, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(bps) != 8 {
		Te.Fatalf("expected 8 pairs, got %d", len(bps))
	}
	//as Select would return it if pair 2 had been found in the second pass
	late := append(append(append([]*BasePair(nil), bps[:2]...), bps[3:]...), bps[2])
	st := StepsFor(late)
	if len(st) != 7 {
		Te.Fatalf("expected 7 steps, got %d", len(st))
	}
	for k, s := range st {
		if s.First.I != k || s.Second.I != k+1 {
			Te.Errorf("step %d joins pairs %d and %d", k, s.First.I, s.Second.I)
		}
		if math.Abs(s.Steps.Twist-36) > 1e-4 || math.Abs(s.Steps.Rise-3.38) > 1e-4 {
			Te.Errorf("bad step %s", s.Steps)
		}
	}
	if late[7] != bps[2] {
		Te.Errorf("StepsFor modified its argument")
	}
}

func TestPairFrame(Te *testing.T) {
	fi := frame.New(ideal.RotZ(30), v3.Vec(1, 2, 3))
	fj := frame.New(ideal.Flip(ideal.RotZ(30)), v3.Vec(1, 2, 3))
	bp := PairFrame(fi, fj)
	if v3.Det(bp.Orient) < 0.999 || bp.Z().Dot(fi.Z()) < 0.999999 || bp.Origin.Distance(fi.Origin) > 1e-9 {
		Te.Errorf("bad pair frame %s", bp)
	}
}

//The results of a pass are computed in parallel, but the choices and recordings follow
//the index order.
func TestContextDeterministic(Te *testing.T) {
	S, err := ideal.Duplex("GATTACA", 36, 3.38)
	if err != nil {
		Te.Fatal(err)
	}
	var first []*BasePair
	for _, cpus := range []int{1, 4} {
		O := DefaultOptions()
		O.Pairs.Cpus(cpus)
		bps, err := Find(S, O)
		if err != nil {
			Te.Fatal(err)
		}
		if first == nil {
			first = bps
			continue
		}
		if len(bps) != len(first) {
			Te.Fatalf("different number of pairs: %d and %d", len(first), len(bps))
		}
		for k := range bps {
			if bps[k].I != first[k].I || bps[k].J != first[k].J || bps[k].Score != first[k].Score {
				Te.Errorf("pair %d differs", k)
			}
		}
	}
}
