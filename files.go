/*
 * files.go, part of gonuc.
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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gonuc/v3"
)

//This tries to guess a chemical element symbol from a PDB atom name.
//It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	name = strings.TrimLeft(name, "0123456789")
	if name == "" {
		return "", fmt.Errorf("Couldn't guess symbol from empty PDB name")
	}
	symbol := ""
	switch name[0] {
	case 'H':
		symbol = "H"
	case 'D':
		symbol = "D"
	case 'C':
		if name == "CL" {
			symbol = "Cl"
		} else {
			symbol = "C" //Ca is not considered here
		}
	case 'N':
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	case 'O':
		symbol = "O"
	case 'P':
		symbol = "P"
	case 'S':
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	case 'M':
		if name == "MG" {
			symbol = "Mg"
		}
	case 'Z':
		if name == "ZN" {
			symbol = "Zn"
		}
	case 'K':
		symbol = "K"
	}
	if symbol == "" {
		return symbol, fmt.Errorf("Couldn't guess symbol from PDB name %s", name)
	}
	return symbol, nil
}

//keepAltLoc returns true for the atoms that are read: those without alternate location,
//and the first alternate location, "A".
func keepAltLoc(a byte) bool {
	return a == ' ' || a == 'A' || a == '1'
}

//Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates, which are returned
//separately as an array of 3 float64.
func readPDBLine(line string) (*Atom, [3]float64, error) {
	var coords [3]float64
	if len(line) < 54 {
		return nil, coords, fmt.Errorf("Line too short")
	}
	err := make([]error, 4)
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = normalizeName(strings.TrimSpace(line[12:16]))
	atom.AltLoc = line[16]
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.Chain = string(line[21])
	atom.MolID, _ = strconv.Atoi(strings.TrimSpace(line[22:26])) //some programs leave it empty
	atom.InsCode = line[26]
	coords[0], err[1] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[2] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[3] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
		}
	}
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	for i := range err {
		if err[i] != nil {
			return nil, coords, err[i]
		}
	}
	return atom, coords, nil
}

//PDBRead reads the first model of a PDB file from an io.Reader, and returns it as a Structure.
//Only the first alternate location of each atom is kept.
func PDBRead(r io.Reader) (*Structure, error) {
	pdb := bufio.NewReader(r)
	atoms := make([]*Atom, 0, 1000)
	coords := make([]float64, 0, 3000)
	lineno := 0
	for {
		line, err := pdb.ReadString('\n')
		lineno++
		if err != nil && err != io.EOF {
			return nil, CError{err.Error(), []string{"PDBRead"}, true}
		}
		if strings.HasPrefix(line, "ENDMDL") && len(atoms) > 0 {
			break
		}
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			at, c, err2 := readPDBLine(strings.TrimRight(line, "\r\n"))
			if err2 != nil {
				return nil, CError{fmt.Sprintf("Error in line %d: %s", lineno, err2.Error()), []string{"readPDBLine", "PDBRead"}, true}
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
		return nil, CError{"No atoms found", []string{"PDBRead"}, true}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	S, err := NewStructure(atoms, mcoords)
	return S, errDecorate(err, "PDBRead")
}

//multiCloser is a Reader/Writer that closes several things when closed,
//the compression layer first, then the file.
type multiCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var ret error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && ret == nil {
			ret = err
		}
	}
	return ret
}

type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//OpenCompressed opens the file name for reading, decompressing it if its name ends in
//".gz" (gzip) or ".zst" (zstandard).
func OpenCompressed(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &multiCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	case ".zst":
		zs, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &multiCloser{Reader: zs, closers: []io.Closer{zstdReadCloser{zs}, f}}, nil
	}
	return f, nil
}

//CreateCompressed creates the file name for writing, compressing it if its name ends in
//".gz" (gzip) or ".zst" (zstandard).
func CreateCompressed(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		gz := gzip.NewWriter(f)
		return &multiCloser{Writer: gz, closers: []io.Closer{gz, f}}, nil
	case ".zst":
		zs, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &multiCloser{Writer: zs, closers: []io.Closer{zs, f}}, nil
	}
	return f, nil
}

//PDBFileRead reads the first model of the PDB file pdbname. The file can be compressed with
//gzip (.gz) or zstandard (.zst). Files ending in .cif (optionally compressed) are read as PDBx/mmCIF.
func PDBFileRead(pdbname string) (*Structure, error) {
	f, err := OpenCompressed(pdbname)
	if err != nil {
		return nil, CError{err.Error(), []string{"os.Open", "PDBFileRead"}, true}
	}
	defer f.Close()
	base := strings.TrimSuffix(strings.TrimSuffix(strings.ToLower(pdbname), ".gz"), ".zst")
	if strings.HasSuffix(base, ".cif") {
		S, err := PDBxRead(f)
		return S, errDecorate(err, "PDBFileRead")
	}
	S, err := PDBRead(f)
	return S, errDecorate(err, "PDBFileRead")
}

//PDBWrite writes the structure S to out in PDB format.
func PDBWrite(out io.Writer, S *Structure) error {
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK     WRITTEN WITH GONUC\n")
	chainprev := S.Atoms[0].Chain //this is to know when the chain changes.
	for i, at := range S.Atoms {
		if at.Chain != chainprev {
			fmt.Fprintln(w, "TER")
			chainprev = at.Chain
		}
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		name := " " + at.Name
		if len(at.Name) == 4 {
			name = at.Name
		} else if len(at.Name) > 4 {
			return CError{fmt.Sprintf("Can't print atom name %s in PDB format", at.Name), []string{"PDBWrite"}, true}
		}
		chain := " "
		if at.Chain != "" {
			chain = at.Chain[:1]
		}
		c := S.Coords.RawRowView(i)
		_, err := fmt.Fprintf(w, "%-6s%5d %-4s%c%3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n", first, at.ID, name, blank(at.AltLoc), at.MolName, chain,
			at.MolID, blank(at.InsCode), c[0], c[1], c[2], 1.0, 0.0, strings.ToUpper(at.Symbol))
		if err != nil {
			return CError{err.Error(), []string{"PDBWrite"}, true}
		}
	}
	fmt.Fprint(w, "END\n")
	if err := w.Flush(); err != nil {
		return CError{err.Error(), []string{"PDBWrite"}, true}
	}
	return nil
}

//PDBFileWrite writes S to the file pdbname, compressed if the name ends in .gz or .zst.
func PDBFileWrite(pdbname string, S *Structure) error {
	out, err := CreateCompressed(pdbname)
	if err != nil {
		return CError{err.Error(), []string{"os.Create", "PDBFileWrite"}, true}
	}
	if err := PDBWrite(out, S); err != nil {
		out.Close()
		return errDecorate(err, "PDBFileWrite")
	}
	if err := out.Close(); err != nil {
		return CError{err.Error(), []string{"Close", "PDBFileWrite"}, true}
	}
	return nil
}

func blank(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}
