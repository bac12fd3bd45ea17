/*
 * templates.go, part of gonuc.
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

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	v3 "github.com/rmera/gonuc/v3"
)

//Template is a standard base in the standard reference frame: the base lies
//on the xy plane, with the origin and axes defined by the standard Watson-Crick pair.
type Template struct {
	Letter byte
	Names  []string
	Coords *v3.Matrix
}

//Index returns the position of the atom called name in the template, or -1.
func (T *Template) Index(name string) int {
	for i, v := range T.Names {
		if v == name {
			return i
		}
	}
	return -1
}

//Sub returns a new matrix with the coordinates of the atoms in names, in the same order.
//It returns an error if an atom is not in the template.
func (T *Template) Sub(names []string) (*v3.Matrix, error) {
	ind := make([]int, len(names))
	for i, v := range names {
		ind[i] = T.Index(v)
		if ind[i] < 0 {
			return nil, CError{fmt.Sprintf("Atom %s not in template %c", v, T.Letter), []string{"Sub"}, true}
		}
	}
	ret := v3.Zeros(len(names))
	ret.SomeVecs(T.Coords, ind)
	return ret, nil
}

//Place returns a new matrix with the template coordinates moved to the reference frame with the given
//orientation (a 3x3 matrix whose rows are the axes) and origin.
func (T *Template) Place(orient, origin *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(T.Coords.NVecs())
	ret.Mul(T.Coords, orient)
	ret.AddVec(ret, origin)
	return ret
}

type atomicData struct {
	name    string
	x, y, z float64
}

//Coordinates of the standard bases in the standard reference frame
//(Olson et al., J. Mol. Biol. 313, 229-237, 2001).
var standardBases = map[byte][]atomicData{
	'A': {
		{"C1'", -2.479, 5.346, 0.000},
		{"N9", -1.291, 4.498, 0.000},
		{"C8", 0.024, 4.897, 0.000},
		{"N7", 0.877, 3.902, 0.000},
		{"C5", 0.071, 2.771, 0.000},
		{"C6", 0.369, 1.398, 0.000},
		{"N6", 1.611, 0.909, 0.000},
		{"N1", -0.668, 0.532, 0.000},
		{"C2", -1.912, 1.023, 0.000},
		{"N3", -2.320, 2.290, 0.000},
		{"C4", -1.267, 3.124, 0.000},
	},
	'G': {
		{"C1'", -2.477, 5.399, 0.000},
		{"N9", -1.289, 4.551, 0.000},
		{"C8", 0.023, 4.962, 0.000},
		{"N7", 0.870, 3.969, 0.000},
		{"C5", 0.071, 2.833, 0.000},
		{"C6", 0.424, 1.460, 0.000},
		{"O6", 1.554, 0.955, 0.000},
		{"N1", -0.700, 0.641, 0.000},
		{"C2", -1.999, 1.087, 0.000},
		{"N2", -2.949, 0.139, -0.001},
		{"N3", -2.342, 2.364, 0.001},
		{"C4", -1.265, 3.177, 0.000},
	},
	'C': {
		{"C1'", -2.477, 5.402, 0.000},
		{"N1", -1.285, 4.542, 0.000},
		{"C2", -1.472, 3.158, 0.000},
		{"O2", -2.628, 2.709, 0.001},
		{"N3", -0.391, 2.344, 0.000},
		{"C4", 0.837, 2.868, 0.000},
		{"N4", 1.875, 2.027, 0.001},
		{"C5", 1.056, 4.275, 0.000},
		{"C6", -0.023, 5.068, 0.000},
	},
	'T': {
		{"C1'", -2.481, 5.354, 0.000},
		{"N1", -1.284, 4.500, 0.000},
		{"C2", -1.462, 3.135, 0.000},
		{"O2", -2.562, 2.608, 0.000},
		{"N3", -0.298, 2.407, 0.000},
		{"C4", 0.994, 2.897, 0.000},
		{"O4", 1.944, 2.119, 0.000},
		{"C5", 1.106, 4.338, 0.000},
		{"C7", 2.466, 4.961, 0.001},
		{"C6", -0.024, 5.057, 0.000},
	},
	'U': {
		{"C1'", -2.481, 5.354, 0.000},
		{"N1", -1.284, 4.500, 0.000},
		{"C2", -1.462, 3.131, 0.000},
		{"O2", -2.563, 2.608, 0.000},
		{"N3", -0.302, 2.397, 0.000},
		{"C4", 0.989, 2.884, 0.000},
		{"O4", 1.935, 2.094, -0.001},
		{"C5", 1.089, 4.311, 0.000},
		{"C6", -0.024, 5.053, 0.000},
	},
}

//Pseudouridine is uracil turned around the N3-C6 axis, so the glycosidic
//bond goes to C5. Each name takes the position of the uracil atom given.
var pseudoFromU = map[string]string{
	"C1'": "C1'",
	"C5":  "N1",
	"C4":  "C2",
	"O4":  "O2",
	"N3":  "N3",
	"C2":  "C4",
	"O2":  "O4",
	"N1":  "C5",
	"C6":  "C6",
}

func templateFromData(letter byte, data []atomicData) *Template {
	T := &Template{Letter: letter, Names: make([]string, len(data)), Coords: v3.Zeros(len(data))}
	for i, v := range data {
		T.Names[i] = v.name
		T.Coords.Set(i, 0, v.x)
		T.Coords.Set(i, 1, v.y)
		T.Coords.Set(i, 2, v.z)
	}
	return T
}

//Templates is a set of base templates indexed by letter. It implements TemplateProvider.
type Templates map[byte]*Template

//Template returns the template for the given letter, or an error if the set has no such template.
func (T Templates) Template(letter byte) (*Template, error) {
	t, ok := T[letter]
	if !ok {
		return nil, CError{fmt.Sprintf("No template for base %c", letter), []string{"Template"}, true}
	}
	return t, nil
}

var stdTemplates Templates
var stdOnce sync.Once

//StandardTemplates returns the built-in templates for A, C, G, T, U, I (built from
//guanine without N2) and P (pseudouridine, built from uracil). The returned set is shared and must not be modified.
func StandardTemplates() Templates {
	stdOnce.Do(func() {
		stdTemplates = make(Templates, 7)
		for k, v := range standardBases {
			stdTemplates[k] = templateFromData(k, v)
		}
		ino := make([]atomicData, 0, len(standardBases['G']))
		for _, v := range standardBases['G'] {
			if v.name != "N2" {
				ino = append(ino, v)
			}
		}
		stdTemplates['I'] = templateFromData('I', ino)
		pse := make([]atomicData, 0, len(pseudoFromU))
		for _, v := range standardBases['U'] {
			for pname, uname := range pseudoFromU {
				if uname == v.name {
					pse = append(pse, atomicData{pname, v.x, v.y, v.z})
				}
			}
		}
		stdTemplates['P'] = templateFromData('P', pse)
	})
	return stdTemplates
}

//TemplatesFromDir reads the templates from the files Atomic_X.pdb in dir, where X is the letter of the base.
//Bases without a file in dir take the built-in template. Hydrogens are ignored.
func TemplatesFromDir(dir string) (Templates, error) {
	std := StandardTemplates()
	ret := make(Templates, len(std))
	for letter, t := range std {
		name := filepath.Join(dir, fmt.Sprintf("Atomic_%c.pdb", letter))
		if _, err := os.Stat(name); err != nil {
			ret[letter] = t
			continue
		}
		S, err := PDBFileRead(name)
		if err != nil {
			return nil, errDecorate(err, "TemplatesFromDir: "+name)
		}
		T := &Template{Letter: letter}
		ind := make([]int, 0, S.Len())
		for i, at := range S.Atoms {
			if at.IsHydrogen() {
				continue
			}
			T.Names = append(T.Names, at.Name)
			ind = append(ind, i)
		}
		if len(ind) < 3 {
			return nil, CError{fmt.Sprintf("Too few atoms in %s", name), []string{"TemplatesFromDir"}, true}
		}
		T.Coords = v3.Zeros(len(ind))
		T.Coords.SomeVecs(S.Coords, ind)
		ret[letter] = T
	}
	return ret, nil
}
