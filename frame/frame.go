/*
 * frame.go, part of gonuc.
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

//Package frame fits the standard reference frame of a base to each nucleotide
//of a structure.
package frame

import (
	"fmt"

	v3 "github.com/rmera/gonuc/v3"
)

//Frame is a right-handed orthonormal reference frame. The rows of Orient are the
//x, y and z axes, so a point with local coordinates l has global coordinates
//l*Orient + Origin.
type Frame struct {
	Orient *v3.Matrix
	Origin *v3.Matrix
}

//New returns a frame with copies of the given orientation (3x3) and origin (1x3).
func New(orient, origin *v3.Matrix) *Frame {
	return &Frame{Orient: orient.Clone(), Origin: origin.Clone()}
}

//Identity returns the global reference frame.
func Identity() *Frame {
	return &Frame{Orient: v3.Eye(), Origin: v3.Zeros(1)}
}

//X returns a view of the x axis of the frame.
func (F *Frame) X() *v3.Matrix { return F.Orient.VecView(0) }

//Y returns a view of the y axis of the frame.
func (F *Frame) Y() *v3.Matrix { return F.Orient.VecView(1) }

//Z returns a view of the z axis of the frame.
func (F *Frame) Z() *v3.Matrix { return F.Orient.VecView(2) }

//Copy returns a deep copy of the frame.
func (F *Frame) Copy() *Frame {
	return New(F.Orient, F.Origin)
}

//Flipped returns a new frame turned 180 degrees around the x axis of F, i.e.
//with the y and z axes reversed.
func (F *Frame) Flipped() *Frame {
	r := F.Copy()
	for i := 1; i < 3; i++ {
		row := r.Orient.RawRowView(i)
		for j := range row {
			row[j] = -row[j]
		}
	}
	return r
}

//ToGlobal returns the global coordinates of points given in the frame.
func (F *Frame) ToGlobal(local *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(local.NVecs())
	ret.Mul(local, F.Orient)
	ret.AddVec(ret, F.Origin)
	return ret
}

//ToLocal returns the coordinates, in the frame, of the points given in global coordinates.
func (F *Frame) ToLocal(global *v3.Matrix) *v3.Matrix {
	tmp := v3.Zeros(global.NVecs())
	tmp.SubVec(global, F.Origin)
	ret := v3.Zeros(global.NVecs())
	ret.Mul(tmp, F.Orient.T())
	return ret
}

//String returns the origin and axes of the frame, one per line.
func (F *Frame) String() string {
	o := F.Origin.RawRowView(0)
	s := fmt.Sprintf("origin %8.3f %8.3f %8.3f\n", o[0], o[1], o[2])
	for i, n := range []string{"x", "y", "z"} {
		v := F.Orient.RawRowView(i)
		s += fmt.Sprintf("%s-axis %8.3f %8.3f %8.3f\n", n, v[0], v[1], v[2])
	}
	return s
}

//Errors

//Error is the error type of the frame package.
type Error struct {
	message  string
	deco     []string
	critical bool
	cause    error
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

//Unwrap returns the error that caused this one, so it can be checked with errors.Is.
func (err Error) Unwrap() error { return err.cause }

//these are the causes of the errors returned by Fit.
var (
	ErrNotNucleotide = fmt.Errorf("residue has no base type")
	ErrTooFewAtoms   = fmt.Errorf("fewer than 3 ring atoms matched the template")
	ErrUnfittable    = fmt.Errorf("no fit within the RMSD cutoff")
)
