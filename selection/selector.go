/*
 * selector.go, part of gonuc.
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

//Package selection picks the base pairs of a structure. Each residue is paired with the
//residue that gives it the lowest score, but only when that choice is mutual. Pairs are taken
//pass after pass, among the residues still unpaired, until a pass finds nothing new.
package selection

import (
	"fmt"
	"sort"
)

//ErrSelectionNonTermination is returned if the selection doesn't stop after the largest possible
//number of passes. It means a bug, not a problem with the input.
var ErrSelectionNonTermination = fmt.Errorf("selection: the mutual-best loop did not terminate")

//Scorer gives the score of a pair of residues (lower is better), and whether the pair is valid at all.
type Scorer interface {
	Candidates() []int //residues that can be paired
	Score(i, j int) (float64, bool)
}

//A Preparer is a Scorer that wants to know, at the beginning of each pass, which residues are
//still unpaired, for instance to compute all their scores at once.
type Preparer interface {
	Prepare(unpaired []int)
}

//BestPartners returns, for each residue in unpaired, the other residue in unpaired that forms the valid
//pair with the lowest score, or -1 if there is none. Ties go to the residue with the smallest index.
//unpaired must be sorted.
func BestPartners(sc Scorer, unpaired []int) map[int]int {
	best := make(map[int]int, len(unpaired))
	for _, i := range unpaired {
		best[i] = -1
		var bscore float64
		for _, j := range unpaired {
			if i == j {
				continue
			}
			s, ok := sc.Score(i, j)
			if !ok {
				continue
			}
			if best[i] < 0 || s < bscore {
				best[i] = j
				bscore = s
			}
		}
	}
	return best
}

//Select returns the mutual-best pairs, as (i,j) with i<j, in the order they were found: pass after pass and,
//within a pass, in increasing order of i.
func Select(sc Scorer) ([][2]int, error) {
	cand := append([]int(nil), sc.Candidates()...)
	sort.Ints(cand)
	paired := make(map[int]bool, len(cand))
	var ret [][2]int
	prep, _ := sc.(Preparer)
	for pass := 0; pass <= len(cand)/2+1; pass++ {
		unpaired := make([]int, 0, len(cand))
		for _, i := range cand {
			if !paired[i] {
				unpaired = append(unpaired, i)
			}
		}
		if prep != nil {
			prep.Prepare(unpaired)
		}
		best := BestPartners(sc, unpaired)
		found := 0
		for _, i := range unpaired {
			j := best[i]
			if j > i && best[j] == i {
				paired[i] = true
				paired[j] = true
				ret = append(ret, [2]int{i, j})
				found++
			}
		}
		if found == 0 {
			return ret, nil
		}
	}
	return ret, ErrSelectionNonTermination
}
