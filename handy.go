/*
 * handy.go, part of gonuc.
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

import "strings"

//ResidueAtoms returns the indexes of the atoms in residue res whose names are in names, in the order of names,
//and the names that were found. Names not present are skipped.
func (S *Structure) ResidueAtoms(res int, names []string) ([]int, []string) {
	ind := make([]int, 0, len(names))
	found := make([]string, 0, len(names))
	for _, n := range names {
		if i := S.AtomIndex(res, n); i >= 0 {
			ind = append(ind, i)
			found = append(found, n)
		}
	}
	return ind, found
}

//IsBackbone returns true if name is a phosphate or sugar atom name.
func IsBackbone(name string) bool {
	return strings.ContainsAny(name, "'*") || strings.HasPrefix(name, "OP") || strings.HasPrefix(name, "O1P") ||
		strings.HasPrefix(name, "O2P") || strings.HasPrefix(name, "O3P") || name == "P"
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
