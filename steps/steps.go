/*
 * steps.go, part of gonuc.
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

//Package steps calculates the rigid-body parameters that relate two reference frames:
//the six step parameters (shift, slide, rise, tilt, roll and twist) and the six
//helical parameters (x- and y-displacement, helical rise, inclination, tip and helical twist).
//Distances are in A and angles in degrees.
package steps

import (
	"fmt"
	"math"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/frame"
	v3 "github.com/rmera/gonuc/v3"
)

const (
	xeps     = 1e-7 //used to decide if two axes are (anti)parallel
	axisEps  = 1e-6 //smallest length of the helical axis before normalization
	twistEps = 1e-3 //in degrees, below this the helical twist is taken as zero
)

//Steps contains the six step parameters.
type Steps struct {
	Shift float64
	Slide float64
	Rise  float64
	Tilt  float64
	Roll  float64
	Twist float64
}

//String returns the six parameters in the usual order.
func (S *Steps) String() string {
	return fmt.Sprintf("%8.2f %8.2f %8.2f %8.2f %8.2f %8.2f", S.Shift, S.Slide, S.Rise, S.Tilt, S.Roll, S.Twist)
}

//Slice returns the six parameters in the usual order.
func (S *Steps) Slice() []float64 {
	return []float64{S.Shift, S.Slide, S.Rise, S.Tilt, S.Roll, S.Twist}
}

//Undefined flags the helical parameters that can't be defined for a given geometry.
type Undefined uint8

const (
	UndefXDisp Undefined = 1 << iota
	UndefYDisp
	UndefRise
	UndefInclination
	UndefTip
	UndefTwist
)

//Helical contains the six helical parameters. Undefined parameters are set to 0 and flagged.
type Helical struct {
	XDisp       float64
	YDisp       float64
	Rise        float64
	Inclination float64
	Tip         float64
	Twist       float64
	Undefined   Undefined
}

//Defined returns true if none of the parameters flagged in u is undefined.
func (H *Helical) Defined(u Undefined) bool {
	return H.Undefined&u == 0
}

//String returns the six parameters in the usual order, with "----" for the undefined ones.
func (H *Helical) String() string {
	vals := H.Slice()
	s := ""
	for i, v := range vals {
		if !H.Defined(1 << uint(i)) {
			s += fmt.Sprintf(" %8s", "----")
			continue
		}
		s += fmt.Sprintf(" %8.2f", v)
	}
	return s[1:]
}

//Slice returns the six parameters in the usual order.
func (H *Helical) Slice() []float64 {
	return []float64{H.XDisp, H.YDisp, H.Rise, H.Inclination, H.Tip, H.Twist}
}

//rotated returns a new orientation with the axes of orient rotated angle degrees around axis.
func rotated(orient, axis *v3.Matrix, angle float64) *v3.Matrix {
	ret := v3.Zeros(3)
	ret.Mul(orient, nuc.RotatorAroundAxis(axis, angle*nuc.Deg2Rad))
	return ret
}

func sub(a, b *v3.Matrix) *v3.Matrix {
	r := v3.Zeros(1)
	r.Dense.Sub(a.Dense, b.Dense)
	return r
}

func add(a ...*v3.Matrix) *v3.Matrix {
	r := v3.Zeros(1)
	for _, v := range a {
		r.Dense.Add(r.Dense, v.Dense)
	}
	return r
}

func scaled(s float64, a *v3.Matrix) *v3.Matrix {
	r := v3.Zeros(1)
	r.Dense.Scale(s, a.Dense)
	return r
}

func cross(a, b *v3.Matrix) *v3.Matrix {
	r := v3.Zeros(1)
	r.Cross(a, b)
	return r
}

func unit(a *v3.Matrix) *v3.Matrix {
	r := v3.Zeros(1)
	r.Unit(a)
	return r
}

//angle returns the angle between a and b in degrees, 0 if one of them is a zero vector.
func angle(a, b *v3.Matrix) float64 {
	if a.Norm() < xeps || b.Norm() < xeps {
		return 0
	}
	return nuc.Angle(a, b) * nuc.Rad2Deg
}

//vecAng returns the angle, in degrees, between the projections of a and b on the plane
//perpendicular to ref. The angle is positive if a goes to b counterclockwise when looking
//from the tip of ref.
func vecAng(a, b, ref *v3.Matrix) float64 {
	r := unit(ref)
	pa := sub(a, scaled(a.Dot(r), r))
	pb := sub(b, scaled(b.Dot(r), r))
	ang := angle(pa, pb)
	if cross(pa, pb).Dot(r) < 0 {
		return -ang
	}
	return ang
}

//order returns -1, 0 or 1 if f1 goes before, is equal to or goes after f2, comparing
//their axes, and then their origins, element by element.
func order(f1, f2 *frame.Frame) int {
	for _, m := range [][2]*v3.Matrix{{f1.Orient, f2.Orient}, {f1.Origin, f2.Origin}} {
		for i := 0; i < m[0].NVecs(); i++ {
			a, b := m[0].RawRowView(i), m[1].RawRowView(i)
			for k := range a {
				if a[k] < b[k] {
					return -1
				} else if a[k] > b[k] {
					return 1
				}
			}
		}
	}
	return 0
}

//Pars returns the six step parameters of f2 relative to f1, and the middle step frame.
func Pars(f1, f2 *frame.Frame) (*Steps, *frame.Frame) {
	z1, z2 := f1.Z(), f2.Z()
	hinge := cross(z1, z2)
	rolltilt := angle(z1, z2)
	if hinge.Norm() < xeps {
		//(anti)parallel z axes. This hinge is the same for both orders of the frames,
		//so the frames are always taken in the same order, and the signs are fixed later.
		if order(f1, f2) > 0 {
			ret, mid := Pars(f2, f1)
			ret.Shift, ret.Slide, ret.Rise = -ret.Shift, -ret.Slide, -ret.Rise
			ret.Tilt, ret.Roll, ret.Twist = -ret.Tilt, -ret.Roll, -ret.Twist
			return ret, mid
		}
		hinge = add(f1.X(), f2.X(), f1.Y(), f2.Y())
		if hinge.Norm() < xeps {
			hinge = f1.X().Clone()
		}
	}
	hinge = unit(hinge)
	para1 := rotated(f1.Orient, hinge, 0.5*rolltilt)
	para2 := rotated(f2.Orient, hinge, -0.5*rolltilt)
	mstz := para2.VecView(2)
	y1 := para1.VecView(1)
	ret := new(Steps)
	ret.Twist = vecAng(y1, para2.VecView(1), mstz)
	msty := v3.Zeros(1)
	msty.Mul(y1, nuc.RotatorAroundAxis(mstz, 0.5*ret.Twist*nuc.Deg2Rad))
	mstx := cross(msty, mstz)
	d := sub(f2.Origin, f1.Origin)
	ret.Shift = d.Dot(mstx)
	ret.Slide = d.Dot(msty)
	ret.Rise = d.Dot(mstz)
	phi := vecAng(hinge, msty, mstz) * nuc.Deg2Rad
	ret.Roll = rolltilt * math.Cos(phi)
	ret.Tilt = rolltilt * math.Sin(phi)
	orient := v3.Zeros(3)
	orient.SetRow(0, mstx.RawRowView(0))
	orient.SetRow(1, msty.RawRowView(0))
	orient.SetRow(2, mstz.RawRowView(0))
	return ret, &frame.Frame{Orient: orient, Origin: scaled(0.5, add(f1.Origin, f2.Origin))}
}

//HelicalPars returns the six helical parameters of f2 relative to f1, and the middle helical
//frame. If the helical axis can't be defined (the relative rotation is the identity or a 180 degree turn)
//rise, twist and both displacements are flagged as undefined, and the returned frame is nil.
//If the helical twist is zero, the displacements are flagged as undefined.
func HelicalPars(f1, f2 *frame.Frame) (*Helical, *frame.Frame) {
	ret := new(Helical)
	hx := cross(sub(f2.X(), f1.X()), sub(f2.Y(), f1.Y()))
	if hx.Norm() < axisEps {
		ret.Undefined = UndefXDisp | UndefYDisp | UndefRise | UndefTwist
		return ret, nil
	}
	hx = unit(hx)
	z1, z2 := f1.Z(), f2.Z()
	//each frame is tilted so its z axis becomes the helical axis.
	tipinc1 := angle(hx, z1)
	rot1h := f1.Orient.Clone()
	hinge1 := cross(hx, z1)
	if hinge1.Norm() > xeps {
		rot1h = rotated(f1.Orient, hinge1, -tipinc1)
	}
	tipinc2 := angle(hx, z2)
	rot2h := f2.Orient.Clone()
	if hinge2 := cross(hx, z2); hinge2.Norm() > xeps {
		rot2h = rotated(f2.Orient, hinge2, -tipinc2)
	}
	ret.Twist = vecAng(rot1h.VecView(1), rot2h.VecView(1), hx)
	d := sub(f2.Origin, f1.Origin)
	ret.Rise = d.Dot(hx)
	msty := v3.Zeros(1)
	msty.Mul(rot1h.VecView(1), nuc.RotatorAroundAxis(hx, 0.5*ret.Twist*nuc.Deg2Rad))
	mstx := cross(msty, hx)
	if hinge1.Norm() > xeps {
		phi := vecAng(hinge1, msty, hx) * nuc.Deg2Rad
		ret.Tip = tipinc1 * math.Cos(phi)
		ret.Inclination = tipinc1 * math.Sin(phi)
	}
	//the point of the axis closest to each origin
	ad := sub(d, scaled(ret.Rise, hx))
	org1h := add(f1.Origin, scaled(0.5, ad))
	if math.Abs(ret.Twist) < twistEps {
		ret.Undefined |= UndefXDisp | UndefYDisp
	} else if ad.Norm() > xeps {
		perp := cross(hx, unit(ad))
		half := 0.5 * ret.Twist * nuc.Deg2Rad
		org1h = add(org1h, scaled(0.5*ad.Norm()/math.Tan(half), perp))
	}
	if ret.Defined(UndefXDisp) {
		o := sub(f1.Origin, org1h)
		ret.XDisp = o.Dot(rot1h.VecView(0))
		ret.YDisp = o.Dot(rot1h.VecView(1))
	}
	org2h := add(org1h, scaled(ret.Rise, hx))
	orient := v3.Zeros(3)
	orient.SetRow(0, mstx.RawRowView(0))
	orient.SetRow(1, msty.RawRowView(0))
	orient.SetRow(2, hx.RawRowView(0))
	return ret, &frame.Frame{Orient: orient, Origin: scaled(0.5, add(org1h, org2h))}
}
