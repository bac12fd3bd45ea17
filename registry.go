/*
 * registry.go, part of gonuc.
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
	"sort"
	"strings"
)

//BaseType is the classification of a residue as a nucleotide.
type BaseType struct {
	Letter   byte //canonical one-letter code: A, C, G, T, U, I or P
	Purine   bool
	Modified bool
	Relaxed  bool //a legitimate ring variant, fitted with the relaxed RMSD cutoff
}

//String returns the letter of the base type, in lowercase if it is modified.
func (B *BaseType) String() string {
	if B.Modified {
		return strings.ToLower(string(B.Letter))
	}
	return string(B.Letter)
}

//Pyrimidine returns true if the base is not a purine.
func (B *BaseType) Pyrimidine() bool {
	return !B.Purine
}

//A map for the purine/pyrimidine category of each canonical letter.
var letterPurine = map[byte]bool{
	'A': true,
	'G': true,
	'I': true,
	'C': false,
	'T': false,
	'U': false,
	'P': false,
}

//standard nucleotide names, in the PDB and the old (long) nomenclature.
var standardNames = map[string]byte{
	"A":   'A',
	"C":   'C',
	"G":   'G',
	"T":   'T',
	"U":   'U',
	"I":   'I',
	"DA":  'A',
	"DC":  'C',
	"DG":  'G',
	"DT":  'T',
	"DU":  'U',
	"DI":  'I',
	"RA":  'A',
	"RC":  'C',
	"RG":  'G',
	"RU":  'U',
	"ADE": 'A',
	"CYT": 'C',
	"GUA": 'G',
	"THY": 'T',
	"URA": 'U',
	"INO": 'I',
}

//Common modified nucleotides. The ones with non-planar or
//otherwise unusual rings are relaxed.
var modifiedNames = []struct {
	name    string
	letter  byte
	relaxed bool
}{
	{"1MA", 'A', false},
	{"2MA", 'A', false},
	{"6MA", 'A', false},
	{"MIA", 'A', false},
	{"T6A", 'A', false},
	{"A2M", 'A', false},
	{"ATP", 'A', false},
	{"1MG", 'G', false},
	{"2MG", 'G', false},
	{"7MG", 'G', false},
	{"M2G", 'G', false},
	{"OMG", 'G', false},
	{"GTP", 'G', false},
	{"GDP", 'G', false},
	{"YG", 'G', true},
	{"5MC", 'C', false},
	{"5CM", 'C', false},
	{"OMC", 'C', false},
	{"CBR", 'C', false},
	{"CTP", 'C', false},
	{"5MU", 'U', false},
	{"4SU", 'U', false},
	{"5BU", 'U', false},
	{"5IU", 'U', false},
	{"OMU", 'U', false},
	{"UTP", 'U', false},
	{"H2U", 'U', true},
	{"PSU", 'P', false},
}

//Registry maps residue names to base types. It is plain data: it is filled
//before the analysis, and only read afterwards. Lookups are safe for concurrent use,
//Add is not.
type Registry struct {
	types map[string]*BaseType
}

//NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*BaseType)}
}

//DefaultRegistry returns a new registry with the standard nucleotides and
//some common modified ones.
func DefaultRegistry() *Registry {
	R := NewRegistry()
	for k, v := range standardNames {
		R.types[k] = &BaseType{Letter: v, Purine: letterPurine[v]}
	}
	for _, v := range modifiedNames {
		R.types[v.name] = &BaseType{Letter: v.letter, Purine: letterPurine[v.letter], Modified: true, Relaxed: v.relaxed}
	}
	return R
}

//Add adds an entry to the registry, replacing any previous one with the same name.
func (R *Registry) Add(name string, t *BaseType) error {
	name = strings.TrimSpace(name)
	if name == "" || t == nil {
		return CError{"Empty name or nil type", []string{"Add"}, true}
	}
	p, ok := letterPurine[t.Letter]
	if !ok {
		return CError{fmt.Sprintf("Unknown base letter %q", t.Letter), []string{"Add"}, true}
	}
	if p != t.Purine {
		return CError{fmt.Sprintf("Base %c can't have purine=%t", t.Letter, t.Purine), []string{"Add"}, true}
	}
	R.types[name] = t
	return nil
}

//Lookup returns the base type for the residue name, and whether it was found.
func (R *Registry) Lookup(name string) (*BaseType, bool) {
	t, ok := R.types[strings.TrimSpace(name)]
	return t, ok
}

//Len returns the number of entries in the registry.
func (R *Registry) Len() int {
	return len(R.types)
}

//Names returns all the names in the registry, sorted.
func (R *Registry) Names() []string {
	ret := make([]string, 0, len(R.types))
	for k := range R.types {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Read adds to the registry the entries read from r. Each line contains
//the residue name, the one-letter code, the word "purine" or "pyrimidine" and,
//optionally, the word "relaxed". Empty lines and lines starting with "#" are ignored.
//Every entry read is marked as modified.
func (R *Registry) Read(r io.Reader) error {
	s := bufio.NewScanner(r)
	lineno := 0
	for s.Scan() {
		lineno++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 3 || len(f) > 4 || len(f[1]) != 1 {
			return CError{fmt.Sprintf("Malformed registry line %d: %s", lineno, line), []string{"Read"}, true}
		}
		t := &BaseType{Letter: strings.ToUpper(f[1])[0], Modified: true}
		switch strings.ToLower(f[2]) {
		case "purine":
			t.Purine = true
		case "pyrimidine":
		default:
			return CError{fmt.Sprintf("Line %d: expected purine or pyrimidine, got %s", lineno, f[2]), []string{"Read"}, true}
		}
		if len(f) == 4 {
			if strings.ToLower(f[3]) != "relaxed" {
				return CError{fmt.Sprintf("Line %d: unknown flag %s", lineno, f[3]), []string{"Read"}, true}
			}
			t.Relaxed = true
		}
		if err := R.Add(f[0], t); err != nil {
			return errDecorate(err, fmt.Sprintf("Read: line %d", lineno))
		}
	}
	return s.Err()
}

//ReadRegistry returns the default registry plus the entries read from r.
func ReadRegistry(r io.Reader) (*Registry, error) {
	R := DefaultRegistry()
	if err := R.Read(r); err != nil {
		return nil, errDecorate(err, "ReadRegistry")
	}
	return R, nil
}
