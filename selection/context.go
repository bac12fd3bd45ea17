/*
 * context.go, part of gonuc.
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
	"sync"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/frame"
	"github.com/rmera/gonuc/pairs"
)

//Recorder receives the result of every pair tested during a selection.
type Recorder interface {
	Record(S *nuc.Structure, r *pairs.Result) error
}

//Context holds the working state of the analysis of one structure: the fitted
//frames, the results of the current pass and the recorder. It implements Scorer and Preparer.
//A Context is not safe for concurrent use.
type Context struct {
	S        *nuc.Structure
	Fits     []*frame.Fit //indexed by residue, nil for residues without a frame
	V        *pairs.Validator
	rec      Recorder
	cpus     int
	cache    map[[2]int]*pairs.Result
	recorded map[[2]int]bool
	err      error
}

//NewContext returns a context for S, with the fits obtained for its residues. rec can be nil.
func NewContext(S *nuc.Structure, fits []*frame.Fit, O *pairs.Options, rec Recorder) (*Context, error) {
	if O == nil {
		O = pairs.DefaultOptions()
	}
	frames := make([]*frame.Frame, len(fits))
	for i, f := range fits {
		if f != nil {
			frames[i] = f.Frame
		}
	}
	V, err := pairs.NewValidator(S, frames, O)
	if err != nil {
		return nil, err
	}
	return &Context{S: S, Fits: fits, V: V, rec: rec, cpus: O.Cpus(), cache: make(map[[2]int]*pairs.Result), recorded: make(map[[2]int]bool)}, nil
}

func key(i, j int) [2]int {
	if i > j {
		return [2]int{j, i}
	}
	return [2]int{i, j}
}

//Candidates returns the residues with a frame.
func (C *Context) Candidates() []int {
	ret := make([]int, 0, len(C.Fits))
	for i, f := range C.Fits {
		if f != nil {
			ret = append(ret, i)
		}
	}
	return ret
}

//Prepare forgets the results of the previous pass and validates all the pairs among the unpaired
//residues, using several gorutines. Nothing is recorded here.
func (C *Context) Prepare(unpaired []int) {
	C.cache = make(map[[2]int]*pairs.Result, len(unpaired)*len(unpaired)/2)
	rows := make([][]*pairs.Result, len(unpaired))
	jobs := make(chan int, len(unpaired))
	for k := range unpaired {
		jobs <- k
	}
	close(jobs)
	cpus := C.cpus
	if cpus < 1 {
		cpus = 1
	}
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				row := make([]*pairs.Result, 0, len(unpaired)-k-1)
				for _, j := range unpaired[k+1:] {
					row = append(row, C.V.Check(unpaired[k], j))
				}
				rows[k] = row
			}
		}()
	}
	wg.Wait()
	for _, row := range rows {
		for _, r := range row {
			C.cache[key(r.I, r.J)] = r
		}
	}
}

//Result returns the result for the pair i, j from the current pass, validating the pair if it is not
//there yet. The result is the same for i, j and j, i.
func (C *Context) Result(i, j int) *pairs.Result {
	k := key(i, j)
	r, ok := C.cache[k]
	if !ok {
		r = C.V.Check(k[0], k[1])
		C.cache[k] = r
	}
	return r
}

//Score returns the score of the pair i, j and whether it is valid. The first time a pair
//is queried its result is passed to the recorder.
func (C *Context) Score(i, j int) (float64, bool) {
	r := C.Result(i, j)
	k := key(i, j)
	if C.rec != nil && !C.recorded[k] {
		C.recorded[k] = true
		if err := C.rec.Record(C.S, r); err != nil && C.err == nil {
			C.err = err
		}
	}
	return r.Score, r.Valid
}

//Err returns the first error returned by the recorder, if any.
func (C *Context) Err() error {
	return C.err
}
