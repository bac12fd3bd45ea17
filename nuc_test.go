/*
 * nuc_test.go, part of gonuc.
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

package nuc_test

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/internal/ideal"
	v3 "github.com/rmera/gonuc/v3"
	"gonum.org/v1/gonum/mat"
)

func sameStructure(Te *testing.T, a, b *nuc.Structure) {
	Te.Helper()
	if a.Len() != b.Len() || len(a.Residues) != len(b.Residues) {
		Te.Fatalf("different sizes: %d/%d atoms, %d/%d residues", a.Len(), b.Len(), len(a.Residues), len(b.Residues))
	}
	var ta, tb nuc.Atomer = a, b
	for i := 0; i < ta.Len(); i++ {
		at, bt := ta.Atom(i), tb.Atom(i)
		if at.Name != bt.Name || at.MolName != bt.MolName || at.MolID != bt.MolID || at.Chain != bt.Chain || at.Symbol != bt.Symbol {
			Te.Errorf("atom %d differs: %+v %+v", i, at, bt)
		}
	}
	if !mat.EqualApprox(a.Coords, b.Coords, 1e-3) {
		Te.Errorf("coordinates differ")
	}
}

func TestPDBIO(Te *testing.T) {
	S, err := ideal.Duplex("GCAT", 36, 3.38)
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for _, ext := range []string{".pdb", ".pdb.gz", ".pdb.zst", ".cif", ".cif.gz"} {
		name := filepath.Join(dir, "duplex"+ext)
		if strings.Contains(ext, ".cif") {
			f, err := nuc.CreateCompressed(name)
			if err != nil {
				Te.Fatal(err)
			}
			if err := nuc.PDBxWrite(f, S, "duplex"); err != nil {
				Te.Fatal(err)
			}
			f.Close()
		} else if err := nuc.PDBFileWrite(name, S); err != nil {
			Te.Fatal(err)
		}
		S2, err := nuc.PDBFileRead(name)
		if err != nil {
			Te.Fatalf("reading %s: %v", name, err)
		}
		sameStructure(Te, S, S2)
		if len(S2.Residues) != 8 {
			Te.Errorf("%s: expected 8 residues, got %d", name, len(S2.Residues))
		}
	}
}

const pdbLines = `HEADER    TEST
ATOM      1  P    DG A   1      -0.521   9.276   5.352  1.00 20.00           P
ATOM      2  O5*  DG A   1      -0.155   8.198   4.229  1.00 20.00           O
ATOM      3  C1'A DG A   1       1.000   2.000   3.000  0.50 20.00           C
ATOM      4  C1'B DG A   1       9.000   9.000   9.000  0.50 20.00           C
ATOM      5  N9   DG A   1       1.500   2.500   3.500  1.00 20.00           N
HETATM    6 MG    MG A 101       5.000   5.000   5.000  1.00 20.00          MG
ENDMDL
MODEL        2
ATOM      1  P    DG A   1      -0.521   9.276   5.352  1.00 20.00           P
ENDMDL
`

func TestPDBRead(Te *testing.T) {
	S, err := nuc.PDBRead(strings.NewReader(pdbLines))
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 5 {
		Te.Fatalf("expected 5 atoms (one alternate location and the second model skipped), got %d", S.Len())
	}
	if S.Atom(1).Name != "O5'" {
		Te.Errorf("old-style name not normalized: %s", S.Atom(1).Name)
	}
	if S.Atom(2).Name != "C1'" || S.Coord(2).At(0, 0) != 1.0 {
		Te.Errorf("wrong alternate location kept: %v %v", S.Atom(2), S.Coord(2))
	}
	if S.Atom(4).Symbol != "Mg" || !S.Atom(4).Het {
		Te.Errorf("bad hetero atom %+v", S.Atom(4))
	}
	if len(S.Residues) != 2 {
		Te.Errorf("expected 2 residues, got %d", len(S.Residues))
	}
	if S.IsRNA() {
		Te.Errorf("a structure without O2' is not RNA")
	}
	if _, err := nuc.PDBRead(strings.NewReader("HEADER nothing\n")); err == nil {
		Te.Errorf("expected an error for a file without atoms")
	}
}

const cifLines = `data_test
#
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.pdbx_PDB_ins_code
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.auth_seq_id
_atom_site.auth_asym_id
_atom_site.pdbx_PDB_model_num
ATOM 1 C "C1'" . G A 1 ? 1.0 2.0 3.0 5 X 1
ATOM 2 O "O2'" . G A 1 ? 1.5 2.5 3.5 5 X 1
ATOM 3 N N9 . G A 1 ? 2.0 2.0 3.0 5 X 1
ATOM 1 C "C1'" . G A 1 ? 7.0 7.0 7.0 5 X 2
#
loop_
_struct_conn.id
covale1
#
`

func TestPDBxRead(Te *testing.T) {
	S, err := nuc.PDBxRead(strings.NewReader(cifLines))
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 3 {
		Te.Fatalf("expected the 3 atoms of the first model, got %d", S.Len())
	}
	if S.Atom(0).Name != "C1'" || S.Atom(0).Chain != "X" || S.Atom(0).MolID != 5 {
		Te.Errorf("author fields not used: %+v", S.Atom(0))
	}
	if !S.IsRNA() {
		Te.Errorf("a structure with O2' is RNA")
	}
}

func TestRegistry(Te *testing.T) {
	R := nuc.DefaultRegistry()
	for name, letter := range map[string]byte{"DA": 'A', "G": 'G', "PSU": 'P', "5MC": 'C', "URA": 'U'} {
		t, ok := R.Lookup(name)
		if !ok || t.Letter != letter {
			Te.Errorf("%s should be %c, got %v", name, letter, t)
		}
	}
	if t, _ := R.Lookup("H2U"); !t.Relaxed || !t.Modified {
		Te.Errorf("H2U should be a relaxed modified base")
	}
	if _, ok := R.Lookup("HOH"); ok {
		Te.Errorf("water is not a nucleotide")
	}
	extra := `# extra bases
XYZ A purine
QQQ c pyrimidine relaxed
`
	R2, err := nuc.ReadRegistry(strings.NewReader(extra))
	if err != nil {
		Te.Fatal(err)
	}
	if R2.Len() != R.Len()+2 {
		Te.Errorf("expected %d entries, got %d", R.Len()+2, R2.Len())
	}
	if t, ok := R2.Lookup("QQQ"); !ok || t.Letter != 'C' || !t.Relaxed || t.Purine {
		Te.Errorf("bad entry for QQQ: %+v", t)
	}
	for _, bad := range []string{"XYZ A\n", "XYZ A sugar\n", "XYZ C purine\n", "XYZ A purine maybe\n"} {
		if _, err := nuc.ReadRegistry(strings.NewReader(bad)); err == nil {
			Te.Errorf("expected an error for %q", bad)
		}
	}
}

func TestClassify(Te *testing.T) {
	B := new(ideal.Builder)
	B.Add('G', "G", "A", v3.Eye(), v3.Zeros(1))
	B.AddAtom("O2'", "O", 0, 0, 0)
	B.Add('C', "XXX", "A", v3.Eye(), v3.Vec(0, 0, 3.4))
	S, err := B.Structure()
	if err != nil {
		Te.Fatal(err)
	}
	if n := S.Classify(nuc.DefaultRegistry()); n != 1 {
		Te.Errorf("expected 1 nucleotide, got %d", n)
	}
	if !S.IsRNA() {
		Te.Errorf("structure should be RNA")
	}
	R := nuc.NewRegistry()
	if err := R.Add("G", &nuc.BaseType{Letter: 'A', Purine: true}); err != nil {
		Te.Fatal(err)
	}
	R.Add("XXX", &nuc.BaseType{Letter: 'C'})
	S.Classify(R)
	if S.Residue(0).Type().Letter != 'G' {
		Te.Errorf("a classified residue must keep its type")
	}
	if S.Residue(1).Type() == nil || S.Residue(1).Type().Letter != 'C' {
		Te.Errorf("XXX should now be classified")
	}
	if nt := S.Nucleotides(); len(nt) != 2 {
		Te.Errorf("expected 2 nucleotides, got %v", nt)
	}
}

func TestSuper(Te *testing.T) {
	t, _ := nuc.StandardTemplates().Template('A')
	rot := nuc.RotatorAroundAxis(v3.Vec(1, 2, 3), 1.1)
	origin := v3.Vec(3, -2, 7)
	placed := t.Place(rot, origin)
	transformed, R, trans, err := nuc.RotatorTranslatorToSuper(t.Coords, placed)
	if err != nil {
		Te.Fatal(err)
	}
	if !mat.EqualApprox(R, rot, 1e-9) || !mat.EqualApprox(trans, origin, 1e-9) {
		Te.Errorf("rotation or translation not recovered: %v %v", R, trans)
	}
	if !mat.EqualApprox(transformed, placed, 1e-9) {
		Te.Errorf("bad transformed coordinates")
	}
	//A mirror image can't be superimposed with a rotation, but we still want a proper one.
	mirror := t.Coords.Clone()
	for i := 0; i < mirror.NVecs(); i++ {
		mirror.Set(i, 0, -mirror.At(i, 0))
		mirror.Set(i, 2, mirror.At(i, 2)+0.3*float64(i%3))
	}
	_, R, _, err = nuc.RotatorTranslatorToSuper(t.Coords, mirror)
	if err != nil {
		Te.Fatal(err)
	}
	if d := v3.Det(R); math.Abs(d-1) > 1e-9 {
		Te.Errorf("expected a proper rotation, det=%f", d)
	}
	_, rmsd, err := nuc.Super(t.Coords, placed)
	if err != nil || rmsd > 1e-9 {
		Te.Errorf("superposition of identical sets: rmsd %f err %v", rmsd, err)
	}
	if _, _, _, err := nuc.RotatorTranslatorToSuper(t.Coords.View(0, 2), placed.View(0, 2)); err == nil {
		Te.Errorf("expected an error for fewer than 3 atoms")
	}
}

func TestRotatorAroundAxis(Te *testing.T) {
	R := nuc.RotatorAroundAxis(v3.Vec(0, 0, 1), math.Pi/2)
	x := v3.Zeros(1)
	x.Mul(v3.Vec(1, 0, 0), R)
	if !mat.EqualApprox(x, v3.Vec(0, 1, 0), 1e-12) {
		Te.Errorf("x rotated 90 degrees around z should be y, got %v", x)
	}
	if d := nuc.Dihedral(v3.Vec(1, 0, 0), v3.Vec(0, 0, 0), v3.Vec(0, 0, 1), v3.Vec(0, 1, 1)); math.Abs(d*nuc.Rad2Deg-90) > 1e-9 {
		Te.Errorf("expected a 90 degree dihedral, got %f", d*nuc.Rad2Deg)
	}
}

func TestTemplates(Te *testing.T) {
	std := nuc.StandardTemplates()
	u, _ := std.Template('U')
	p, err := std.Template('P')
	if err != nil {
		Te.Fatal(err)
	}
	a, _ := p.Sub([]string{"C5"})
	b, _ := u.Sub([]string{"N1"})
	if !mat.Equal(a, b) {
		Te.Errorf("pseudouridine C5 should be at the place of uracil N1")
	}
	if i, _ := std.Template('I'); i.Index("N2") >= 0 {
		Te.Errorf("inosine has no N2")
	}
	if _, err := std.Template('X'); err == nil {
		Te.Errorf("expected an error for an unknown base")
	}
	if _, err := u.Sub([]string{"N9"}); err == nil {
		Te.Errorf("expected an error for an atom not in the template")
	}
	//a template directory with a modified adenine
	dir := Te.TempDir()
	B := new(ideal.Builder)
	B.Add('A', "A", "A", v3.Eye(), v3.Vec(0.1, 0, 0))
	B.AddAtom("H8", "H", 0, 5.9, 0)
	S, _ := B.Structure()
	if err := nuc.PDBFileWrite(filepath.Join(dir, "Atomic_A.pdb"), S); err != nil {
		Te.Fatal(err)
	}
	T, err := nuc.TemplatesFromDir(dir)
	if err != nil {
		Te.Fatal(err)
	}
	ta, _ := T.Template('A')
	if ta.Index("H8") >= 0 || math.Abs(ta.Coords.At(0, 0)-(-2.379)) > 1e-3 {
		Te.Errorf("template not read from the directory: %v", ta.Coords)
	}
	tg, _ := T.Template('G')
	gstd, _ := std.Template('G')
	if tg != gstd {
		Te.Errorf("missing files should give the standard template")
	}
}

func TestResidueString(Te *testing.T) {
	S, err := nuc.PDBRead(bytes.NewBufferString(pdbLines))
	if err != nil {
		Te.Fatal(err)
	}
	if s := S.Residue(0).String(); s != "A.DG1" {
		Te.Errorf("unexpected residue string %s", s)
	}
	if i := S.AtomIndex(0, "N9"); i != 3 {
		Te.Errorf("N9 should be atom 3, got %d", i)
	}
	if i := S.AtomIndex(0, "N7"); i != -1 {
		Te.Errorf("there is no N7")
	}
}
