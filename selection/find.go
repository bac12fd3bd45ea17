/*
 * find.go, part of gonuc.
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
	"fmt"
	"sort"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/frame"
	"github.com/rmera/gonuc/pairs"
	"github.com/rmera/gonuc/steps"
)

//BasePair is a selected pair of residues.
type BasePair struct {
	I, J    int //residue indexes, I<J
	Letters string
	FrameI  *frame.Frame
	FrameJ  *frame.Frame
	Frame   *frame.Frame //the frame of the pair
	Score   float64
	BPType  int
	Result  *pairs.Result
}

//String returns the pair in a human-readable form, with the residues taken from S.
func (B *BasePair) String(S *nuc.Structure) string {
	t := ""
	switch B.BPType {
	case pairs.WatsonCrick:
		t = "WC"
	case pairs.Wobble:
		t = "wobble"
	}
	return fmt.Sprintf("%-12s %-12s %s %7.2f %s", S.Residue(B.I), S.Residue(B.J), B.Letters, B.Score, t)
}

//PairFrame returns the frame of the pair formed by the bases with frames fi and fj: the middle frame
//between fi and fj. If the z axes point to opposite sides, fj is first turned around its x axis.
func PairFrame(fi, fj *frame.Frame) *frame.Frame {
	if fi.Z().Dot(fj.Z()) < 0 {
		fj = fj.Flipped()
	}
	_, mid := steps.Pars(fi, fj)
	return mid
}

//Step contains the parameters that relate two consecutive base pairs.
type Step struct {
	First, Second *BasePair
	Steps         *steps.Steps
	Helical       *steps.Helical
	Mid           *frame.Frame
	MidHelical    *frame.Frame //nil if the helical axis is undefined
}

//StepsFor returns the step and helical parameters between each pair in bps and the next one
//along the strand of the first residues. bps is not modified.
func StepsFor(bps []*BasePair) []*Step {
	if len(bps) < 2 {
		return nil
	}
	bps = sortedPairs(bps)
	ret := make([]*Step, 0, len(bps)-1)
	for k := 0; k < len(bps)-1; k++ {
		s := &Step{First: bps[k], Second: bps[k+1]}
		s.Steps, s.Mid = steps.Pars(bps[k].Frame, bps[k+1].Frame)
		s.Helical, s.MidHelical = steps.HelicalPars(bps[k].Frame, bps[k+1].Frame)
		ret = append(ret, s)
	}
	return ret
}

//sortedPairs returns a copy of bps sorted by the index of the first residue of each pair.
func sortedPairs(bps []*BasePair) []*BasePair {
	ret := append([]*BasePair(nil), bps...)
	sort.SliceStable(ret, func(k, l int) bool { return ret[k].I < ret[l].I })
	return ret
}

//Options contains everything needed to find the pairs of a structure.
type Options struct {
	Registry  *nuc.Registry
	Templates nuc.TemplateProvider
	Frame     *frame.Options
	Pairs     *pairs.Options
	Recorder  Recorder //can be nil
}

//DefaultOptions returns the default registry and templates, and the default options
//for the frame and pairs packages, without a recorder.
func DefaultOptions() *Options {
	return &Options{
		Registry:  nuc.DefaultRegistry(),
		Templates: nuc.StandardTemplates(),
		Frame:     frame.DefaultOptions(),
		Pairs:     pairs.DefaultOptions(),
	}
}

//NewBasePair builds the pair i, j from the context.
func (C *Context) NewBasePair(i, j int) *BasePair {
	r := C.Result(i, j)
	fi, fj := C.Fits[i].Frame, C.Fits[j].Frame
	letters := []byte{'?', '?'}
	for k, res := range []int{i, j} {
		if t := C.S.Residue(res).Type(); t != nil {
			letters[k] = t.Letter
		}
	}
	return &BasePair{I: i, J: j, Letters: string(letters), FrameI: fi, FrameJ: fj, Frame: PairFrame(fi, fj), Score: r.Score, BPType: r.BPType, Result: r}
}

//Find classifies the residues of S, fits their frames and selects the base pairs.
//The pairs are returned sorted by their first residue, not in the order they were selected.
func Find(S *nuc.Structure, O *Options) ([]*BasePair, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if n := S.Classify(O.Registry); n < 2 {
		nuc.Logger().Printf("selection: only %d nucleotides found", n)
	}
	fits := frame.FitAll(S, O.Templates, O.Frame)
	C, err := NewContext(S, fits, O.Pairs, O.Recorder)
	if err != nil {
		return nil, errDecorate(err, "Find")
	}
	sel, err := Select(C)
	if err != nil {
		return nil, err
	}
	ret := make([]*BasePair, 0, len(sel))
	for _, p := range sel {
		ret = append(ret, C.NewBasePair(p[0], p[1]))
	}
	ret = sortedPairs(ret)
	nuc.Logger().Printf("selection: %d base pairs from %d fitted residues", len(ret), len(C.Candidates()))
	if err := C.Err(); err != nil {
		return ret, Error{"recording failed: " + err.Error(), []string{"Find"}, false}
	}
	return ret, nil
}

//Errors

//Error is the error type of the selection package.
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

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(nuc.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
