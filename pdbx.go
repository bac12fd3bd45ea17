/*
 * pdbx.go, part of gonuc.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/gonuc/v3"
)

var tl func(string) string = strings.ToLower

type pdbxmap map[string]int

//newPdbxmap returns a map with all the keys we read, set to -1 (absent).
func newPdbxmap() pdbxmap {
	m := make(pdbxmap, len(pdbxKeys))
	for _, v := range pdbxKeys {
		m[v] = -1
	}
	return m
}

// adds i to the map[string] entry, if it exists. If not,
// does nothing. Returns the map.
func (m pdbxmap) add(s string, i int) pdbxmap {
	s = tl(strings.TrimSpace(s))
	if _, ok := m[s]; ok {
		m[s] = i
	}
	return m
}

// returns the field in data corresponding to the first of the given keys present in the map,
// or the empty string if none is present.
func (m pdbxmap) get(data []string, keys ...string) string {
	for _, s := range keys {
		if i, ok := m[s]; ok && i >= 0 && i < len(data) {
			return data[i]
		}
	}
	return ""
}

//pdbxFields splits a line of a loop in fields, keeping quoted strings
//(which may contain spaces) together, without the quotes.
func pdbxFields(line string) []string {
	ret := make([]string, 0, 20)
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		q := line[i]
		if q == '\'' || q == '"' {
			//a quote only closes a field if it's followed by a blank or the end of the line
			j := i + 1
			for j < len(line) && !(line[j] == q && (j+1 == len(line) || line[j+1] == ' ' || line[j+1] == '\t')) {
				j++
			}
			ret = append(ret, line[i+1:min(j, len(line))])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		ret = append(ret, line[i:j])
		i = j
	}
	return ret
}

//pdbxUnknown is true for the mmCIF unknown and inapplicable values.
func pdbxUnknown(s string) bool {
	return s == "" || s == "?" || s == "."
}

func pdbxFillAtom(data []string, m pdbxmap) (*Atom, [3]float64, error) {
	var coords [3]float64
	at := new(Atom)
	at.Symbol = m.get(data, "_atom_site.type_symbol")
	if len(at.Symbol) == 2 {
		at.Symbol = at.Symbol[:1] + tl(at.Symbol[1:])
	}
	at.Name = normalizeName(m.get(data, "_atom_site.auth_atom_id", "_atom_site.label_atom_id"))
	if at.Name == "" {
		return nil, coords, fmt.Errorf("Atom without a name")
	}
	if pdbxUnknown(at.Symbol) {
		at.Symbol, _ = symbolFromName(at.Name)
	}
	at.MolName = m.get(data, "_atom_site.auth_comp_id", "_atom_site.label_comp_id")
	at.Chain = m.get(data, "_atom_site.auth_asym_id", "_atom_site.label_asym_id")
	at.AltLoc = ' '
	if s := m.get(data, "_atom_site.label_alt_id"); !pdbxUnknown(s) {
		at.AltLoc = s[0]
	}
	at.InsCode = ' '
	if s := m.get(data, "_atom_site.pdbx_pdb_ins_code"); !pdbxUnknown(s) {
		at.InsCode = s[0]
	}
	at.Het = m.get(data, "_atom_site.group_pdb") == "HETATM"
	var err error
	if s := m.get(data, "_atom_site.id"); !pdbxUnknown(s) {
		at.ID, err = strconv.Atoi(s)
		if err != nil {
			return nil, coords, fmt.Errorf("Couldn't parse ID from %s: %w", s, err)
		}
	}
	if s := m.get(data, "_atom_site.auth_seq_id", "_atom_site.label_seq_id"); !pdbxUnknown(s) {
		at.MolID, err = strconv.Atoi(s)
		if err != nil {
			return nil, coords, fmt.Errorf("Couldn't parse residue number from %s: %w", s, err)
		}
	}
	for j, v := range []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"} {
		s := m.get(data, v)
		coords[j], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, coords, fmt.Errorf("Couldn't parse %d th cartesian coordinate from %q: %w", j, s, err)
		}
	}
	return at, coords, nil
}

//PDBxRead reads the first model in the atom_site loop of a PDBx/mmCIF file. The author
//names and numbers are used when present, and the label ones otherwise.
//Only the first alternate location of each atom is kept.
func PDBxRead(r io.Reader) (*Structure, error) {
	pdb := bufio.NewReader(r)
	m := newPdbxmap()
	atoms := make([]*Atom, 0, 1000)
	coords := make([]float64, 0, 3000)
	firstmodel := ""
	var reading, inloop bool
	field := 0
	hp := strings.HasPrefix
	for {
		line, err := pdb.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, CError{err.Error(), []string{"PDBxRead"}, true}
		}
		tline := strings.TrimSpace(line)
		switch {
		case tline == "" || hp(tline, ";"):
		case hp(tline, "#") || hp(tline, "loop_"):
			if reading && field > 0 && len(atoms) > 0 {
				//the atom_site loop has ended
				err = io.EOF
			}
			inloop = hp(tline, "loop_")
			reading = false
		case hp(tline, "_"):
			if inloop && hp(tl(tline), "_atom_site.") {
				reading = true
				m.add(strings.Fields(tline)[0], field)
				field++
			} else {
				reading = false
			}
		case reading:
			fields := pdbxFields(tline)
			model := m.get(fields, "_atom_site.pdbx_pdb_model_num")
			if firstmodel == "" {
				firstmodel = model
			}
			if model != firstmodel {
				err = io.EOF
				break
			}
			at, c, err2 := pdbxFillAtom(fields, m)
			if err2 != nil {
				return nil, CError{fmt.Sprintf("Couldn't read atom %d: %s", len(atoms)+1, err2.Error()), []string{"pdbxFillAtom", "PDBxRead"}, true}
			}
			if keepAltLoc(at.AltLoc) {
				atoms = append(atoms, at)
				coords = append(coords, c[:]...)
			}
		}
		if err == io.EOF {
			break
		}
	}
	if len(atoms) == 0 {
		return nil, CError{"No atom_site records found", []string{"PDBxRead"}, true}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "PDBxRead")
	}
	S, err := NewStructure(atoms, mcoords)
	return S, errDecorate(err, "PDBxRead")
}

//PDBxWrite writes S to out as a PDBx/mmCIF file with a single atom_site loop.
func PDBxWrite(out io.Writer, S *Structure, name ...string) error {
	n := "gonuc"
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "data_%s\n#\nloop_\n", n)
	for _, v := range pdbxWriteKeys {
		fmt.Fprintln(w, v)
	}
	quote := func(s string) string {
		if s == "" || s == " " {
			return "."
		}
		if strings.ContainsAny(s, "'\" ") {
			return "\"" + s + "\""
		}
		return s
	}
	for i, a := range S.Atoms {
		het := "ATOM"
		if a.Het {
			het = "HETATM"
		}
		c := S.Coords.RawRowView(i)
		_, err := fmt.Fprintf(w, "%s %d %s %s %s %s %s %d %s %.3f %.3f %.3f 1\n", het, a.ID, strings.ToUpper(a.Symbol), quote(a.Name), quote(string(blank(a.AltLoc))),
			a.MolName, quote(a.Chain), a.MolID, quote(string(blank(a.InsCode))), c[0], c[1], c[2])
		if err != nil {
			return CError{err.Error(), []string{"PDBxWrite"}, true}
		}
	}
	fmt.Fprint(w, "#\n")
	if err := w.Flush(); err != nil {
		return CError{err.Error(), []string{"PDBxWrite"}, true}
	}
	return nil
}

var pdbxWriteKeys = []string{
	"_atom_site.group_PDB",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.auth_atom_id",
	"_atom_site.label_alt_id",
	"_atom_site.auth_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.auth_seq_id",
	"_atom_site.pdbx_PDB_ins_code",
	"_atom_site.Cartn_x",
	"_atom_site.Cartn_y",
	"_atom_site.Cartn_z",
	"_atom_site.pdbx_PDB_model_num",
}

var pdbxKeys = []string{
	"_atom_site.group_pdb",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.label_atom_id",
	"_atom_site.label_alt_id",
	"_atom_site.label_comp_id",
	"_atom_site.label_asym_id",
	"_atom_site.label_seq_id",
	"_atom_site.pdbx_pdb_ins_code",
	"_atom_site.cartn_x",
	"_atom_site.cartn_y",
	"_atom_site.cartn_z",
	"_atom_site.auth_seq_id",
	"_atom_site.auth_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.auth_atom_id",
	"_atom_site.pdbx_pdb_model_num",
}
