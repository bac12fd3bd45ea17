/*
 * options.go, part of gonuc.
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

import "runtime"

//GlycosidicPolicy decides how the glycosidic atom of a residue is found
//when the residue lacks N9 (purines) or N1 (pyrimidines).
type GlycosidicPolicy int

const (
	//Legacy takes any base atom with a '9' (or '1') in its name, and if there is none, the base atom nearest C1'.
	Legacy GlycosidicPolicy = iota
	//Strict takes only N9 or N1. A residue without it can't pair.
	Strict
)

func (G GlycosidicPolicy) String() string {
	if G == Strict {
		return "strict"
	}
	return "legacy"
}

//Options contains the acceptance ranges and switches used to validate a pair.
type Options struct {
	dorg    [2]float64
	dnn     [2]float64
	plane   [2]float64
	dv      [2]float64
	overlap float64
	hbLower float64
	hbDist  float64
	hbAngle float64
	minBase int
	policy  GlycosidicPolicy
	legacy  bool
	cpus    int
}

//DefaultOptions returns the usual options:
//dorg up to 15 A, dNN at least 4.5 A, plane angle up to 65 degrees, d_v up to 2.5 A,
//overlap below 0.01 A^2, H-bonds between 1.8 and 4.0 A with a D-H...A angle of at least 90 degrees,
//at least one H-bond between base atoms, the legacy glycosidic policy, rounding of H-bond distances
//and all logical CPUs.
func DefaultOptions() *Options {
	O := new(Options)
	O.dorg = [2]float64{0, 15}
	O.dnn = [2]float64{4.5, 1e18}
	O.plane = [2]float64{0, 65}
	O.dv = [2]float64{0, 2.5}
	O.overlap = 0.01
	O.hbLower = 1.8
	O.hbDist = 4.0
	O.hbAngle = 90
	O.minBase = 1
	O.policy = Legacy
	O.legacy = true
	O.cpus = runtime.NumCPU()
	return O
}

func setRange(r *[2]float64, v []float64) (float64, float64) {
	if len(v) > 1 && v[0] <= v[1] {
		r[0], r[1] = v[0], v[1]
	}
	return r[0], r[1]
}

//Returns the accepted range for the distance between origins,
//and sets it to min, max, if given.
func (O *Options) DOrg(minmax ...float64) (float64, float64) {
	return setRange(&O.dorg, minmax)
}

//Returns the accepted range for the distance between glycosidic atoms,
//and sets it to min, max, if given.
func (O *Options) DNN(minmax ...float64) (float64, float64) {
	return setRange(&O.dnn, minmax)
}

//Returns the accepted range for the angle between the base planes, in degrees,
//and sets it to min, max, if given.
func (O *Options) PlaneAngle(minmax ...float64) (float64, float64) {
	return setRange(&O.plane, minmax)
}

//Returns the accepted range for the vertical separation of the bases,
//and sets it to min, max, if given.
func (O *Options) DV(minmax ...float64) (float64, float64) {
	return setRange(&O.dv, minmax)
}

//Returns the overlap area from which a pair is taken as stacked,
//and sets it to a new value, if given.
func (O *Options) Overlap(a ...float64) float64 {
	if len(a) > 0 && a[0] >= 0 {
		O.overlap = a[0]
	}
	return O.overlap
}

//Returns the shortest donor-acceptor distance for an H-bond,
//and sets it to a new value, if given.
func (O *Options) HBLower(d ...float64) float64 {
	if len(d) > 0 && d[0] >= 0 {
		O.hbLower = d[0]
	}
	return O.hbLower
}

//Returns the longest donor-acceptor distance for an H-bond,
//and sets it to a new value, if given.
func (O *Options) HBDist(d ...float64) float64 {
	if len(d) > 0 && d[0] > 0 {
		O.hbDist = d[0]
	}
	return O.hbDist
}

//Returns the smallest D-H...A angle, in degrees, for an H-bond whose donor has hydrogens,
//and sets it to a new value, if given.
func (O *Options) HBAngle(a ...float64) float64 {
	if len(a) > 0 && a[0] >= 0 {
		O.hbAngle = a[0]
	}
	return O.hbAngle
}

//Returns the number of H-bonds between base atoms needed for a valid pair,
//and sets it to a new value, if given. 0 disables the check.
func (O *Options) MinBaseHBonds(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.minBase = n[0]
	}
	return O.minBase
}

//Returns the glycosidic atom policy,
//and sets it to a new value, if given.
func (O *Options) Policy(p ...GlycosidicPolicy) GlycosidicPolicy {
	if len(p) > 0 {
		O.policy = p[0]
	}
	return O.policy
}

//Returns whether H-bond distances are rounded to 2 decimals before they are classified as good,
//and sets it to a new value, if given.
func (O *Options) Legacy(l ...bool) bool {
	if len(l) > 0 {
		O.legacy = l[0]
	}
	return O.legacy
}

//Returns the number of gorutines used to validate pairs in parallel,
//and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}
