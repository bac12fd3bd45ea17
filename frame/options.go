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

package frame

import "runtime"

//Options contains the options for fitting frames.
type Options struct {
	strictRMSD  float64
	relaxedRMSD float64
	c1p         bool
	fallback    bool
	cpus        int
}

//DefaultOptions returns the usual options: a 0.2618 A RMSD cutoff (0.5 A for the relaxed bases),
//C1' included in the fit of RNA bases, the purine fallback on, and all logical CPUs.
func DefaultOptions() *Options {
	r := new(Options)
	r.strictRMSD = 0.2618
	r.relaxedRMSD = 0.5
	r.c1p = true
	r.fallback = true
	r.cpus = runtime.NumCPU()
	return r
}

//Returns the RMSD cutoff for a fit to be accepted,
//and sets it to a new value, if given.
func (O *Options) StrictRMSD(rmsd ...float64) float64 {
	if len(rmsd) > 0 && rmsd[0] > 0 {
		O.strictRMSD = rmsd[0]
	}
	return O.strictRMSD
}

//Returns the RMSD cutoff for the bases marked as relaxed in the registry,
//and sets it to a new value, if given.
func (O *Options) RelaxedRMSD(rmsd ...float64) float64 {
	if len(rmsd) > 0 && rmsd[0] > 0 {
		O.relaxedRMSD = rmsd[0]
	}
	return O.relaxedRMSD
}

//Returns whether C1' is added to the fitted atoms in RNA structures,
//and sets it to a new value, if given.
func (O *Options) C1PrimeForRNA(c ...bool) bool {
	if len(c) > 0 {
		O.c1p = c[0]
	}
	return O.c1p
}

//Returns whether purines that fail the fit are refitted with only their six-membered ring,
//and sets it to a new value, if given.
func (O *Options) Fallback(f ...bool) bool {
	if len(f) > 0 {
		O.fallback = f[0]
	}
	return O.fallback
}

//Returns the number of gorutines to be used,
//and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}
