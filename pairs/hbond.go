/*
 * hbond.go, part of gonuc.
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
	"fmt"
	"sort"

	nuc "github.com/rmera/gonuc"
	"gonum.org/v1/gonum/floats/scalar"
)

//Status is the outcome of the conflict resolution for an H-bond.
type Status int

const (
	Undecided Status = iota
	Confirmed
	Conflicting //confirmed, but both atoms are donors only, or acceptors only
	Excluded    //shares an atom with a shorter, confirmed H-bond
)

func (S Status) String() string {
	switch S {
	case Confirmed:
		return "confirmed"
	case Conflicting:
		return "conflicting"
	case Excluded:
		return "excluded"
	}
	return "undecided"
}

//role of an atom in H-bonds.
type role byte

const (
	either   role = 'X'
	donor    role = 'D'
	acceptor role = 'A'
)

//roles of the base atoms for each base letter. Atoms not listed
//can be either donors or acceptors.
var baseRoles = map[byte]map[string]role{
	'A': {"N1": acceptor, "N3": acceptor, "N6": donor, "N7": acceptor},
	'G': {"N1": donor, "N2": donor, "N3": acceptor, "O6": acceptor, "N7": acceptor},
	'I': {"N1": donor, "N3": acceptor, "O6": acceptor, "N7": acceptor},
	'C': {"O2": acceptor, "N3": acceptor, "N4": donor},
	'T': {"O2": acceptor, "N3": donor, "O4": acceptor},
	'U': {"O2": acceptor, "N3": donor, "O4": acceptor},
	'P': {"N1": donor, "N3": donor, "O2": acceptor, "O4": acceptor},
}

func atomRole(letter byte, name string) role {
	switch name {
	case "O2'":
		return either
	case "O3'", "O4'", "O5'", "OP1", "OP2", "O1P", "O2P":
		return acceptor
	}
	if r, ok := baseRoles[letter][name]; ok {
		return r
	}
	return either
}

//HBond is a possible hydrogen bond between an atom of each residue in a pair.
type HBond struct {
	Donor        int //index in the structure
	Acceptor     int
	DonorName    string
	AcceptorName string
	Distance     float64
	Angle        float64 //D-H...A angle in degrees, only if HasAngle is true
	HasAngle     bool
	Status       Status
}

func (H *HBond) String() string {
	return fmt.Sprintf("%s-%s %4.2f %s", H.DonorName, H.AcceptorName, H.Distance, H.Status)
}

//Base returns true if both atoms of the bond belong to the bases.
func (H *HBond) Base() bool {
	return !nuc.IsBackbone(H.DonorName) && !nuc.IsBackbone(H.AcceptorName)
}

//RoundHBondDistance rounds d to 2 decimals, halves away from zero, as H-bond distances are rounded before they are classified.
func RoundHBondDistance(d float64) float64 {
	return scalar.Round(d, 2)
}

//Good returns true if the H-bond is confirmed and its distance lies in [2.5, 3.5] A. If round is true the distance is
//first rounded with RoundHBondDistance.
func (H *HBond) Good(round bool) bool {
	if H.Status != Confirmed {
		return false
	}
	d := H.Distance
	if round {
		d = RoundHBondDistance(d)
	}
	return d >= 2.5 && d <= 3.5
}

//polar returns the indexes of the N and O atoms of residue res.
func polar(S *nuc.Structure, res int) []int {
	ret := make([]int, 0, 10)
	for _, i := range S.Residue(res).Atoms {
		if s := S.Atom(i).Symbol; s == "N" || s == "O" {
			ret = append(ret, i)
		}
	}
	return ret
}

//hydrogens returns the hydrogens of residue res within nuc.HDonorDist A of atom at.
func hydrogens(S *nuc.Structure, res, at int) []int {
	var ret []int
	for _, i := range S.Residue(res).Atoms {
		if S.Atom(i).IsHydrogen() && S.Coord(i).Distance(S.Coord(at)) <= nuc.HDonorDist {
			ret = append(ret, i)
		}
	}
	return ret
}

//dhaAngle returns the largest D-H...A angle, in degrees, over the hydrogens hs of the donor d.
func dhaAngle(S *nuc.Structure, d, a int, hs []int) float64 {
	best := 0.0
	for _, h := range hs {
		hd := S.Coord(d).Clone()
		hd.SubVec(hd, S.Coord(h))
		ha := S.Coord(a).Clone()
		ha.SubVec(ha, S.Coord(h))
		if ang := nuc.Angle(hd, ha) * nuc.Rad2Deg; ang > best {
			best = ang
		}
	}
	return best
}

//candidates returns all the N/O pairs between residues i and j that are close enough to form an H-bond,
//sorted by distance. If the donor has hydrogens, the D-H...A angle must be large enough.
func candidates(S *nuc.Structure, i, j int, O *Options) []*HBond {
	li, lj := letter(S, i), letter(S, j)
	ret := make([]*HBond, 0, 10)
	for _, a := range polar(S, i) {
		for _, b := range polar(S, j) {
			d := S.Coord(a).Distance(S.Coord(b))
			if d < O.HBLower() || d > O.HBDist() {
				continue
			}
			ra, rb := atomRole(li, S.Atom(a).Name), atomRole(lj, S.Atom(b).Name)
			don, acc, dres := a, b, i
			if ra == acceptor || (rb == donor && ra != donor) {
				don, acc, dres = b, a, j
			}
			hb := &HBond{Donor: don, Acceptor: acc, DonorName: S.Atom(don).Name, AcceptorName: S.Atom(acc).Name, Distance: d}
			if hs := hydrogens(S, dres, don); len(hs) > 0 {
				hb.HasAngle = true
				hb.Angle = dhaAngle(S, don, acc, hs)
				if hb.Angle < O.HBAngle() {
					continue
				}
			}
			ret = append(ret, hb)
		}
	}
	sort.SliceStable(ret, func(k, l int) bool { return ret[k].Distance < ret[l].Distance })
	return ret
}

func shares(a, b *HBond) bool {
	return a.Donor == b.Donor || a.Donor == b.Acceptor || a.Acceptor == b.Donor || a.Acceptor == b.Acceptor
}

//resolve decides the status of each bond. On every round, the undecided bonds that are the shortest among the undecided
//bonds that share an atom with them (the earliest in hbs, on ties) are confirmed, and then the undecided bonds that share an atom with a confirmed
//one are excluded. This is repeated until nothing changes. Finally, the confirmed bonds between two atoms that
//can't play complementary roles are marked as conflicting.
func resolve(S *nuc.Structure, i, j int, hbs []*HBond) {
	for changed := true; changed; {
		changed = false
		var conf []*HBond
		for k, h := range hbs {
			if h.Status != Undecided {
				continue
			}
			shortest := true
			for l, o := range hbs {
				if l == k || o.Status != Undecided || !shares(h, o) {
					continue
				}
				//on equal distances, the bond that comes first wins
				if o.Distance < h.Distance || (o.Distance == h.Distance && l < k) {
					shortest = false
					break
				}
			}
			if shortest {
				conf = append(conf, h)
			}
		}
		for _, h := range conf {
			h.Status = Confirmed
			changed = true
		}
		for _, h := range hbs {
			if h.Status != Undecided {
				continue
			}
			for _, o := range hbs {
				if o.Status == Confirmed && shares(h, o) {
					h.Status = Excluded
					changed = true
					break
				}
			}
		}
	}
	for _, h := range hbs {
		if h.Status != Confirmed {
			continue
		}
		rd := atomRole(letter(S, residueOf(S, i, j, h.Donor)), h.DonorName)
		ra := atomRole(letter(S, residueOf(S, i, j, h.Acceptor)), h.AcceptorName)
		if rd == ra && rd != either {
			h.Status = Conflicting
		}
	}
}

func residueOf(S *nuc.Structure, i, j, at int) int {
	if isIn(S.Residue(i).Atoms, at) {
		return i
	}
	return j
}

func letter(S *nuc.Structure, res int) byte {
	if t := S.Residue(res).Type(); t != nil {
		return t.Letter
	}
	return 0
}

//HBonds returns the H-bonds between residues i and j, with their status resolved, sorted by distance.
func HBonds(S *nuc.Structure, i, j int, O *Options) []*HBond {
	hbs := candidates(S, i, j, O)
	resolve(S, i, j, hbs)
	return hbs
}
