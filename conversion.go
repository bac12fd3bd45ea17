/*
 * conversion.go, part of gonuc.
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

package nuc

import "math"

//This provides useful conversion factors and other constants

//Conversions
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

//Others
const (
	//HDonorDist is the largest distance, in A, at which a hydrogen is considered bonded
	//to a hydrogen-bond donor.
	HDonorDist = 1.3
	//SubstituentDist is the largest distance, in A, at which a non-hydrogen atom is considered
	//bonded to a ring atom.
	SubstituentDist = 2.0
)
