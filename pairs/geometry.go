/*
 * geometry.go, part of gonuc.
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

package pairs

import (
	"math"
	"strings"

	"github.com/golang/geo/r2"
	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/frame"
	v3 "github.com/rmera/gonuc/v3"
)

//GlycosidicAtom returns the index in S of the glycosidic atom of residue res: N9 for purines and N1 for
//pyrimidines. If the residue lacks it, the Legacy policy takes the first base atom with the same digit in its name
//and, failing that, the base atom nearest to C1'. It returns -1 if no atom is found, or if the residue has no base type.
func GlycosidicAtom(S *nuc.Structure, res int, policy GlycosidicPolicy) int {
	typ := S.Residue(res).Type()
	if typ == nil {
		return -1
	}
	name, digit := "N1", "1"
	if typ.Purine {
		name, digit = "N9", "9"
	}
	if i := S.AtomIndex(res, name); i >= 0 || policy == Strict {
		return i
	}
	base := make([]int, 0, len(S.Residue(res).Atoms))
	for _, i := range S.Residue(res).Atoms {
		at := S.Atom(i)
		if at.IsHydrogen() || nuc.IsBackbone(at.Name) {
			continue
		}
		if strings.Contains(at.Name, digit) {
			return i
		}
		base = append(base, i)
	}
	c1 := S.AtomIndex(res, "C1'")
	if c1 < 0 {
		return -1
	}
	ret := -1
	best := math.Inf(1)
	for _, i := range base {
		if d := S.Coord(i).Distance(S.Coord(c1)); d < best {
			best = d
			ret = i
		}
	}
	return ret
}

//planeAngle returns the angle between the z axes of the frames, in degrees, folded into [0,90].
func planeAngle(fi, fj *frame.Frame) float64 {
	a := nuc.Angle(fi.Z(), fj.Z()) * nuc.Rad2Deg
	if a > 90 {
		a = 180 - a
	}
	return a
}

//meanNormal returns the normalized average of the z axes of the frames. If the axes point to
//opposite sides, the second one is reversed first.
func meanNormal(fi, fj *frame.Frame) *v3.Matrix {
	n := v3.Zeros(1)
	if fi.Z().Dot(fj.Z()) < 0 {
		n.Dense.Sub(fi.Z().Dense, fj.Z().Dense)
	} else {
		n.Dense.Add(fi.Z().Dense, fj.Z().Dense)
	}
	n.Unit(n)
	return n
}

//verticalDistance returns the absolute value of the component of the origin
//displacement along the mean normal.
func verticalDistance(fi, fj *frame.Frame) float64 {
	d := v3.Zeros(1)
	d.Dense.Sub(fj.Origin.Dense, fi.Origin.Dense)
	return math.Abs(d.Dot(meanNormal(fi, fj)))
}

//ringOutline returns the indexes of the ring atoms of residue res, in ring order, each one followed
//by its exocyclic substituent, if it has one. The substituent is the nearest heavy atom out of the ring within
//nuc.SubstituentDist A.
func ringOutline(S *nuc.Structure, res int) []int {
	typ := S.Residue(res).Type()
	ring, _ := S.ResidueAtoms(res, frame.RingAtoms(typ.Purine, false))
	ret := make([]int, 0, 2*len(ring))
	for _, r := range ring {
		ret = append(ret, r)
		sub := -1
		best := nuc.SubstituentDist
		for _, i := range S.Residue(res).Atoms {
			if S.Atom(i).IsHydrogen() || isIn(ring, i) {
				continue
			}
			if d := S.Coord(i).Distance(S.Coord(r)); d <= best {
				best = d
				sub = i
			}
		}
		if sub >= 0 {
			ret = append(ret, sub)
		}
	}
	return ret
}

func isIn(s []int, v int) bool {
	for _, i := range s {
		if i == v {
			return true
		}
	}
	return false
}

//planeBasis returns two unit vectors that span the plane perpendicular to the unit vector n.
func planeBasis(n *v3.Matrix) (*v3.Matrix, *v3.Matrix) {
	ref := v3.Vec(1, 0, 0)
	if math.Abs(n.At(0, 0)) > 0.9 {
		ref = v3.Vec(0, 1, 0)
	}
	u := v3.Zeros(1)
	u.Cross(n, ref)
	u.Unit(u)
	v := v3.Zeros(1)
	v.Cross(n, u)
	return u, v
}

//project returns the atoms in ind projected on the plane that goes through origin
//and is spanned by u and v.
func project(S *nuc.Structure, ind []int, origin, u, v *v3.Matrix) []r2.Point {
	ret := make([]r2.Point, len(ind))
	d := v3.Zeros(1)
	for k, i := range ind {
		d.Dense.Sub(S.Coord(i).Dense, origin.Dense)
		ret[k] = r2.Point{X: d.Dot(u), Y: d.Dot(v)}
	}
	return ret
}

//OverlapArea returns the area shared by the outlines (ring atoms plus exocyclic substituents) of residues i and j,
//both projected on the mean base plane of their frames fi and fj.
func OverlapArea(S *nuc.Structure, i, j int, fi, fj *frame.Frame) float64 {
	n := meanNormal(fi, fj)
	origin := v3.Zeros(1)
	origin.Dense.Add(fi.Origin.Dense, fj.Origin.Dense)
	origin.Dense.Scale(0.5, origin.Dense)
	u, v := planeBasis(n)
	a := project(S, ringOutline(S, i), origin, u, v)
	b := project(S, ringOutline(S, j), origin, u, v)
	if len(a) < 3 || len(b) < 3 {
		return 0
	}
	return polygonIntersection(a, b)
}

//polygonIntersection returns the area of the intersection of two simple polygons, convex or not.
//Each polygon is decomposed in triangles that share the point (0,0), signed by their orientation, and the
//signed areas of the intersections of each pair of triangles are added.
func polygonIntersection(a, b []r2.Point) float64 {
	var total float64
	for k := range a {
		ta, sa := fanTriangle(a, k)
		if sa == 0 {
			continue
		}
		for l := range b {
			tb, sb := fanTriangle(b, l)
			if sb == 0 {
				continue
			}
			total += sa * sb * polygonArea(clip(tb[:], ta))
		}
	}
	return math.Abs(total)
}

//fanTriangle returns the counterclockwise triangle formed by (0,0) and the kth edge of p,
//and +1 or -1 depending on the orientation of the original triangle, or 0 if it is degenerate.
func fanTriangle(p []r2.Point, k int) ([3]r2.Point, float64) {
	t := [3]r2.Point{{}, p[k], p[(k+1)%len(p)]}
	c := t[1].Cross(t[2])
	switch {
	case c > 0:
		return t, 1
	case c < 0:
		t[1], t[2] = t[2], t[1]
		return t, -1
	}
	return t, 0
}

//clip returns the part of the polygon subject that lies inside the counterclockwise triangle tri
//(Sutherland-Hodgman).
func clip(subject []r2.Point, tri [3]r2.Point) []r2.Point {
	out := subject
	for k := 0; k < 3 && len(out) > 0; k++ {
		a, b := tri[k], tri[(k+1)%3]
		e := b.Sub(a)
		in := out
		out = make([]r2.Point, 0, len(in)+2)
		prev := in[len(in)-1]
		previn := e.Cross(prev.Sub(a)) >= 0
		for _, cur := range in {
			curin := e.Cross(cur.Sub(a)) >= 0
			if curin != previn {
				d := cur.Sub(prev)
				t := a.Sub(prev).Cross(e) / d.Cross(e)
				out = append(out, prev.Add(d.Mul(t)))
			}
			if curin {
				out = append(out, cur)
			}
			prev, previn = cur, curin
		}
	}
	return out
}

//polygonArea returns the absolute area of p (shoelace formula).
func polygonArea(p []r2.Point) float64 {
	if len(p) < 3 {
		return 0
	}
	var a float64
	for k := range p {
		a += p[k].Cross(p[(k+1)%len(p)])
	}
	return math.Abs(a) / 2
}
