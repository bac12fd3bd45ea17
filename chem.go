/*
 * chem.go, part of gonuc.
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
	"strings"

	v3 "github.com/rmera/gonuc/v3"
)

//Atom contains the atoms read except for the coordinates, which will be in a matrix
//in the Structure.
type Atom struct {
	Name    string
	ID      int //the serial number in the file
	MolName string
	MolID   int
	Chain   string
	InsCode byte //insertion code, ' ' if none
	AltLoc  byte //alternate location, ' ' if none
	Symbol  string
	Het     bool // is hetatm in the pdb file?
	index   int
}

//Index returns the position of the atom in its Structure.
func (A *Atom) Index() int {
	return A.index
}

//Copy returns a copy of the Atom object. The copy doesn't belong to any Structure.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	n.index = 0
	return &n
}

//IsHydrogen returns true if the atom is a hydrogen (or deuterium).
func (A *Atom) IsHydrogen() bool {
	return A.Symbol == "H" || A.Symbol == "D"
}

//Residue is a group of consecutive atoms that share chain, residue number,
//insertion code and residue name.
type Residue struct {
	Name    string
	ID      int
	Chain   string
	InsCode byte
	Atoms   []int //indexes of the atoms in the Structure
	typ     *BaseType
	index   int
}

//Index returns the position of the residue in its Structure.
func (R *Residue) Index() int {
	return R.index
}

//Type returns the base type assigned by Structure.Classify, or nil if the residue is
//not a nucleotide (or the Structure hasn't been classified).
func (R *Residue) Type() *BaseType {
	return R.typ
}

//String returns the residue as chain.NameNumber, plus the insertion code if there is one.
func (R *Residue) String() string {
	ins := ""
	if R.InsCode != ' ' && R.InsCode != 0 {
		ins = "^" + string(R.InsCode)
	}
	return fmt.Sprintf("%s.%s%d%s", R.Chain, R.Name, R.ID, ins)
}

func (R *Residue) holds(A *Atom) bool {
	return R.Chain == A.Chain && R.ID == A.MolID && R.InsCode == A.InsCode && R.Name == A.MolName
}

//Structure contains the atoms, residues and coordinates of one model.
type Structure struct {
	Atoms    []*Atom
	Coords   *v3.Matrix
	Residues []*Residue
	rna      bool
}

//NewStructure builds a Structure with the given atoms and coordinates. Consecutive atoms with the same chain,
//residue number, insertion code and residue name are grouped in one residue. The atoms
//are owned by the Structure afterwards, and their indexes are set.
func NewStructure(atoms []*Atom, coords *v3.Matrix) (*Structure, error) {
	if len(atoms) == 0 || coords == nil {
		return nil, CError{"Supplied an empty Structure", []string{"NewStructure"}, true}
	}
	if coords.NVecs() != len(atoms) {
		return nil, CError{fmt.Sprintf("Mismatched atoms (%d) and coordinates (%d)", len(atoms), coords.NVecs()), []string{"NewStructure"}, true}
	}
	S := &Structure{Atoms: atoms, Coords: coords}
	var cur *Residue
	for i, at := range atoms {
		at.index = i
		if at.Name == "O2'" {
			S.rna = true
		}
		if cur == nil || !cur.holds(at) {
			cur = &Residue{Name: at.MolName, ID: at.MolID, Chain: at.Chain, InsCode: at.InsCode, index: len(S.Residues)}
			S.Residues = append(S.Residues, cur)
		}
		cur.Atoms = append(cur.Atoms, i)
	}
	return S, nil
}

//Atom returns the ith atom of the structure. Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i < 0 || i >= len(S.Atoms) {
		panic(ErrAtomOutOfRange)
	}
	return S.Atoms[i]
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Residue returns the ith residue of the structure. Panics if out of range.
func (S *Structure) Residue(i int) *Residue {
	if i < 0 || i >= len(S.Residues) {
		panic(ErrResidueOutOfRange)
	}
	return S.Residues[i]
}

//Coord returns a view of the coordinates of the ith atom.
func (S *Structure) Coord(i int) *v3.Matrix {
	return S.Coords.VecView(i)
}

//AtomIndex returns the index in the structure of the atom called name in residue res,
//or -1 if the residue has no such atom.
func (S *Structure) AtomIndex(res int, name string) int {
	for _, i := range S.Residue(res).Atoms {
		if S.Atoms[i].Name == name {
			return i
		}
	}
	return -1
}

//ResidueCoords returns a new matrix with the coordinates of the atoms of residue res,
//in the same order as Residue.Atoms.
func (S *Structure) ResidueCoords(res int) *v3.Matrix {
	r := S.Residue(res)
	ret := v3.Zeros(len(r.Atoms))
	ret.SomeVecs(S.Coords, r.Atoms)
	return ret
}

//IsRNA returns true if any atom in the structure is called O2'. It is a property of
//the whole structure, not of each residue.
func (S *Structure) IsRNA() bool {
	return S.rna
}

//Classify assigns a base type to each residue whose name is in the registry, and returns
//the number of nucleotides in the structure. A residue that already has a type keeps it.
func (S *Structure) Classify(reg *Registry) int {
	n := 0
	for _, r := range S.Residues {
		if r.typ == nil {
			if t, ok := reg.Lookup(r.Name); ok {
				r.typ = t
			}
		}
		if r.typ != nil {
			n++
		}
	}
	return n
}

//Nucleotides returns the indexes of the residues that have a base type, in order.
func (S *Structure) Nucleotides() []int {
	ret := make([]int, 0, len(S.Residues)/2)
	for i, r := range S.Residues {
		if r.typ != nil {
			ret = append(ret, i)
		}
	}
	return ret
}

//Chains returns the chain identifiers in the order they appear in the structure.
func (S *Structure) Chains() []string {
	ret := make([]string, 0, 2)
	for _, r := range S.Residues {
		if !isInString(ret, r.Chain) {
			ret = append(ret, r.Chain)
		}
	}
	return ret
}

//normalizeName changes the old-style "*" in sugar atom names into primes,
//and the thymine methyl C5M into C7.
func normalizeName(name string) string {
	name = strings.Replace(name, "*", "'", -1)
	if name == "C5M" {
		name = "C7"
	}
	return name
}
