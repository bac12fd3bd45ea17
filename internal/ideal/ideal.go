/*
 * ideal.go, part of gonuc.
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

//Package ideal builds structures made of standard bases placed at
//known reference frames, for the tests of the other packages.
package ideal

import (
	"fmt"
	"math"

	nuc "github.com/rmera/gonuc"
	v3 "github.com/rmera/gonuc/v3"
)

//Builder accumulates bases and returns them as a Structure.
type Builder struct {
	atoms  []*nuc.Atom
	coords []float64
	resid  map[string]int
}

//Add places the standard base letter at the frame given by orient and origin,
//as residue resname of chain. Residues are numbered from 1 in each chain.
func (B *Builder) Add(letter byte, resname, chain string, orient, origin *v3.Matrix) {
	if B.resid == nil {
		B.resid = make(map[string]int)
	}
	B.resid[chain]++
	t, err := nuc.StandardTemplates().Template(letter)
	if err != nil {
		panic(err)
	}
	c := t.Place(orient, origin)
	for i, name := range t.Names {
		at := &nuc.Atom{Name: name, ID: len(B.atoms) + 1, MolName: resname, MolID: B.resid[chain], Chain: chain, InsCode: ' ', AltLoc: ' ', Symbol: name[:1]}
		B.atoms = append(B.atoms, at)
		B.coords = append(B.coords, c.RawRowView(i)...)
	}
}

//AddAtom adds a single atom to the last residue added.
func (B *Builder) AddAtom(name, symbol string, x, y, z float64) {
	last := B.atoms[len(B.atoms)-1]
	at := &nuc.Atom{Name: name, ID: len(B.atoms) + 1, MolName: last.MolName, MolID: last.MolID, Chain: last.Chain, InsCode: ' ', AltLoc: ' ', Symbol: symbol}
	B.atoms = append(B.atoms, at)
	B.coords = append(B.coords, x, y, z)
}

//Structure returns the structure built so far.
func (B *Builder) Structure() (*nuc.Structure, error) {
	c, err := v3.NewMatrix(append([]float64(nil), B.coords...))
	if err != nil {
		return nil, err
	}
	ats := make([]*nuc.Atom, len(B.atoms))
	for i, v := range B.atoms {
		ats[i] = v.Copy()
	}
	return nuc.NewStructure(ats, c)
}

//RotZ returns the orientation of a frame rotated deg degrees around the global z axis.
func RotZ(deg float64) *v3.Matrix {
	s, c := math.Sincos(deg * nuc.Deg2Rad)
	m, _ := v3.NewMatrix([]float64{c, s, 0, -s, c, 0, 0, 0, 1})
	return m
}

//Flip returns the orientation turned 180 degrees around its own x axis, the
//orientation of the Watson-Crick partner of a base.
func Flip(orient *v3.Matrix) *v3.Matrix {
	f := orient.Clone()
	f.Dense.Scale(-1, f.Dense)
	f.SetRow(0, orient.RawRowView(0))
	return f
}

var complement = map[byte]byte{'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G', 'U': 'A', 'I': 'C'}

//Duplex returns an ideal DNA double helix with the sequence seq in chain A and the
//complementary strand, antiparallel, in chain B. Base pair k has its frame rotated k*twist
//degrees around the z axis and moved k*rise A along it.
func Duplex(seq string, twist, rise float64) (*nuc.Structure, error) {
	B := new(Builder)
	n := len(seq)
	for k := 0; k < n; k++ {
		B.Add(seq[k], "D"+string(seq[k]), "A", RotZ(float64(k)*twist), v3.Vec(0, 0, float64(k)*rise))
	}
	for k := n - 1; k >= 0; k-- {
		c, ok := complement[seq[k]]
		if !ok {
			return nil, fmt.Errorf("no complement for base %c", seq[k])
		}
		B.Add(c, "D"+string(c), "B", Flip(RotZ(float64(k)*twist)), v3.Vec(0, 0, float64(k)*rise))
	}
	return B.Structure()
}
