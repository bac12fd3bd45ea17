/*
 * pairs.go, part of gonuc.
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

//Package pairs decides whether two fitted bases form a pair. It measures the
//geometry of the two reference frames, looks for H-bonds between the residues, scores the
//pair (lower is better) and classifies it as Watson-Crick, wobble or neither.
package pairs

import (
	"fmt"
	"math"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/frame"
	"github.com/rmera/gonuc/steps"
)

//Pair types
const (
	Unclassified = -1
	Wobble       = 1
	WatsonCrick  = 2
)

//Reasons for a pair to be rejected.
const (
	NoFrame       = "no frame"
	NoGlycosidic  = "no glycosidic atom"
	BadDOrg       = "dorg out of range"
	BadDNN        = "dNN out of range"
	BadPlaneAngle = "plane angle out of range"
	BadDV         = "d_v out of range"
	Stacked       = "overlap"
	FewBaseHBonds = "too few base H-bonds"
)

//the pairs that can be Watson-Crick.
var wcPairs = map[string]bool{"AT": true, "AU": true, "TA": true, "UA": true, "GC": true, "CG": true, "IC": true, "CI": true}

//Result contains all the measures taken for a pair of residues. Measures that were not taken because an
//earlier test failed are left at 0.
type Result struct {
	I, J        int //residue indexes
	Dorg        float64
	DNN         float64
	PlaneAngle  float64
	DV          float64
	Overlap     float64
	HBonds      []*HBond
	GoodHBonds  int
	BaseScore   float64
	HBondAdjust float64
	TypeAdjust  float64
	Score       float64
	BPType      int
	Valid       bool
	Reason      string //why the pair is not valid
}

func (R *Result) String() string {
	if !R.Valid {
		return fmt.Sprintf("%d-%d invalid: %s", R.I, R.J, R.Reason)
	}
	return fmt.Sprintf("%d-%d dorg %.2f dNN %.2f plane %.1f d_v %.2f hbonds %d score %.2f type %d", R.I, R.J, R.Dorg, R.DNN, R.PlaneAngle, R.DV, R.GoodHBonds, R.Score, R.BPType)
}

func inRange(v float64, r [2]float64) bool {
	return v >= r[0] && v <= r[1]
}

//BaseScore is the geometric part of the score of a pair.
func BaseScore(dorg, dv, plane float64) float64 {
	return dorg + 2.0*dv + plane/20.0
}

//HBondAdjust is the change in the score given by good H-bonds: -3 for 2 or more, -1 for 1.
func HBondAdjust(good int) float64 {
	if good >= 2 {
		return -3.0
	}
	return -1.0 * float64(good)
}

//TypeAdjust is the change in the score given by the pair type: -2 for Watson-Crick pairs.
func TypeAdjust(bptype int) float64 {
	if bptype == WatsonCrick {
		return -2.0
	}
	return 0
}

//Validator checks pairs of residues in one structure, with the frames fitted for them.
//It is safe for concurrent use.
type Validator struct {
	S      *nuc.Structure
	Frames []*frame.Frame //indexed by residue, nil if the residue has no frame
	O      *Options
	glyco  []int
}

//NewValidator returns a validator for S. frames must have one element per residue.
func NewValidator(S *nuc.Structure, frames []*frame.Frame, O *Options) (*Validator, error) {
	if len(frames) != len(S.Residues) {
		return nil, Error{fmt.Sprintf("%d frames given for %d residues", len(frames), len(S.Residues)), []string{"NewValidator"}, true}
	}
	if O == nil {
		O = DefaultOptions()
	}
	V := &Validator{S: S, Frames: frames, O: O, glyco: make([]int, len(frames))}
	for i := range frames {
		V.glyco[i] = -1
		if frames[i] != nil {
			V.glyco[i] = GlycosidicAtom(S, i, O.Policy())
		}
	}
	return V, nil
}

//Check measures the pair formed by residues i and j. The geometric tests are done first, and
//the first one that fails ends the check. H-bonds are only searched for pairs that pass all of them.
func (V *Validator) Check(i, j int) *Result {
	R := &Result{I: i, J: j, BPType: Unclassified}
	fi, fj := V.Frames[i], V.Frames[j]
	if fi == nil || fj == nil {
		R.Reason = NoFrame
		return R
	}
	O := V.O
	R.Dorg = fi.Origin.Distance(fj.Origin)
	if !inRange(R.Dorg, O.dorg) {
		R.Reason = BadDOrg
		return R
	}
	gi, gj := V.glyco[i], V.glyco[j]
	if gi < 0 || gj < 0 {
		R.Reason = NoGlycosidic
		return R
	}
	R.DNN = V.S.Coord(gi).Distance(V.S.Coord(gj))
	if !inRange(R.DNN, O.dnn) {
		R.Reason = BadDNN
		return R
	}
	R.PlaneAngle = planeAngle(fi, fj)
	if !inRange(R.PlaneAngle, O.plane) {
		R.Reason = BadPlaneAngle
		return R
	}
	R.DV = verticalDistance(fi, fj)
	if !inRange(R.DV, O.dv) {
		R.Reason = BadDV
		return R
	}
	R.Overlap = OverlapArea(V.S, i, j, fi, fj)
	if R.Overlap >= O.overlap {
		R.Reason = Stacked
		return R
	}
	R.HBonds = HBonds(V.S, i, j, O)
	base := 0
	for _, h := range R.HBonds {
		if h.Good(O.Legacy()) {
			R.GoodHBonds++
		}
		if h.Status == Confirmed && h.Base() {
			base++
		}
	}
	if base < O.MinBaseHBonds() {
		R.Reason = FewBaseHBonds
		return R
	}
	R.Valid = true
	R.BPType = V.pairType(i, j)
	R.BaseScore = BaseScore(R.Dorg, R.DV, R.PlaneAngle)
	R.HBondAdjust = HBondAdjust(R.GoodHBonds)
	R.TypeAdjust = TypeAdjust(R.BPType)
	R.Score = R.BaseScore + R.HBondAdjust + R.TypeAdjust
	return R
}

//pairType classifies the pair i, j as Watson-Crick, wobble or unclassified. Only pairs
//whose frames have x axes on the same side, and y and z axes on opposite sides, are classified.
func (V *Validator) pairType(i, j int) int {
	fi, fj := V.Frames[i], V.Frames[j]
	if fi.X().Dot(fj.X()) <= 0 || fi.Y().Dot(fj.Y()) >= 0 || fi.Z().Dot(fj.Z()) >= 0 {
		return Unclassified
	}
	p, _ := steps.Pars(fj.Flipped(), fi)
	shear, stretch, opening := math.Abs(p.Shift), math.Abs(p.Slide), math.Abs(p.Twist)
	if stretch > 2.0 || opening > 60 {
		return Unclassified
	}
	if shear >= 1.8 && shear <= 2.8 {
		return Wobble
	}
	if shear <= 1.8 && wcPairs[string([]byte{letter(V.S, i), letter(V.S, j)})] {
		return WatsonCrick
	}
	return Unclassified
}

//Errors

//Error is the error type of the pairs package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }
