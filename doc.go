/*
 * doc.go, part of gonuc.
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

/*
Package nuc is the main package of the goNuc library. It provides the atom, residue and
structure types, a registry that maps residue names to base types, the standard base
templates, readers and writers for PDB and PDBx/mmCIF files, and the least-squares
superposition used to fit reference frames to bases.

	**goNuc Capabilities**

	Reads PDB files (plain, gzip or zstd compressed) and the atom_site loop of PDBx/mmCIF files.

	Classifies residues as nucleotides through a data-driven registry that
	can be extended from a text file.

	Fits standard reference frames to every base (package frame).

	Identifies base pairs with the greedy mutual-best-match algorithm, validating
	each candidate by geometry and hydrogen bonds (packages pairs and selection).

	Calculates the six step parameters and the six helical parameters between
	two reference frames (package steps).

	Records every tested candidate pair as JSON lines (package report) and plots
	step parameters along a duplex (package bpplot).

The coordinates of a Structure are kept in a v3.Matrix, separate from the atoms, so the
geometric functions work on plain matrices.

	Note: Some functions panic instead of returning errors. These are "fundamental"
	functions, where a problem means the calling program is wrong. The panics
	use the PanicMsg type.
*/
package nuc
