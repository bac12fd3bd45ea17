/*
 * main.go, part of gonuc.
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

//findpairs finds the base pairs in PDB or mmCIF files, and prints them together
//with the step and helical parameters of consecutive pairs.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/bpplot"
	"github.com/rmera/gonuc/pairs"
	"github.com/rmera/gonuc/report"
	"github.com/rmera/gonuc/selection"
	"github.com/rmera/scu"
)

type settings struct {
	registry  *nuc.Registry
	templates nuc.TemplateProvider
	strict    bool
	helical   bool
	cpus      int
	plot      string
	diag      *report.Writer
	multi     bool
}

func main() {
	diag := flag.String("diag", "", "Write the diagnostics for every tested pair to this file, as JSON lines (.gz and .zst are compressed)")
	plotp := flag.String("plot", "", "Write PNG plots of the step and helical parameters, with this prefix")
	strict := flag.Bool("strict", false, "Use only N9/N1 as glycosidic atoms, and don't round H-bond distances")
	helical := flag.Bool("helical", false, "Also print the helical parameters")
	verbose := flag.Bool("v", false, "Log residues that can't be fitted and other events to stderr")
	cpus := flag.Int("cpus", runtime.NumCPU(), "Number of gorutines to use")
	regfile := flag.String("registry", "", "File with extra residue names: NAME LETTER purine|pyrimidine [relaxed]")
	tmpldir := flag.String("templates", "", "Directory with Atomic_X.pdb template files")
	list := flag.String("list", "", "File with the names of the structures to process, one per line")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "findpairs: base pairs and step parameters of nucleic acids.\n Usage:\n  %s [flags] file.pdb[.gz|.zst] ...\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	files := flag.Args()
	if *list != "" {
		l, err := scu.NewMustReadFile(*list)
		scu.QErr(err)
		for i := l.Next(); i != "EOF"; i = l.Next() {
			if i = strings.TrimSpace(i); i != "" && !strings.HasPrefix(i, "#") {
				files = append(files, i)
			}
		}
		l.Close()
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		nuc.SetLogger(log.New(os.Stderr, "findpairs: ", 0))
	}
	set := &settings{registry: nuc.DefaultRegistry(), templates: nuc.StandardTemplates(), strict: *strict, helical: *helical, cpus: *cpus, plot: *plotp, multi: len(files) > 1}
	if *regfile != "" {
		f, err := os.Open(*regfile)
		scu.QErr(err)
		set.registry, err = nuc.ReadRegistry(f)
		f.Close()
		scu.QErr(err)
	}
	if *tmpldir != "" {
		t, err := nuc.TemplatesFromDir(*tmpldir)
		scu.QErr(err)
		set.templates = t
	}
	if *diag != "" {
		w, err := report.NewWriter(*diag)
		scu.QErr(err)
		set.diag = w
	}
	outs := make([]bytes.Buffer, len(files))
	errs := make([]error, len(files))
	sem := make(chan bool, max(*cpus, 1))
	var wg sync.WaitGroup
	for i, name := range files {
		wg.Add(1)
		sem <- true
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = process(&outs[i], name, set)
		}(i, name)
	}
	wg.Wait()
	failed := 0
	for i := range files {
		os.Stdout.Write(outs[i].Bytes())
		if errs[i] != nil {
			fmt.Fprintf(os.Stderr, "findpairs: %s: %v\n", files[i], errs[i])
			failed++
		}
	}
	if set.diag != nil {
		scu.QErr(set.diag.Close())
	}
	if failed > 0 {
		os.Exit(1)
	}
}

//process finds the pairs of the structure in the file name and prints them to out.
func process(out io.Writer, name string, set *settings) error {
	S, err := nuc.PDBFileRead(name)
	if err != nil {
		return err
	}
	O := selection.DefaultOptions()
	O.Registry = set.registry
	O.Templates = set.templates
	O.Frame.Cpus(set.cpus)
	O.Pairs.Cpus(set.cpus)
	if set.strict {
		O.Pairs.Policy(pairs.Strict)
		O.Pairs.Legacy(false)
	}
	if set.diag != nil {
		O.Recorder = set.diag.Recorder(name)
	}
	bps, err := selection.Find(S, O)
	if err != nil {
		if e, ok := err.(nuc.Error); !ok || e.Critical() {
			return err
		}
		fmt.Fprintf(os.Stderr, "findpairs: %s: %v\n", name, err)
	}
	fmt.Fprintf(out, "# %s: %d base pairs\n", name, len(bps))
	for k, bp := range bps {
		fmt.Fprintf(out, "%4d %s\n", k+1, bp.String(S))
	}
	st := selection.StepsFor(bps)
	if len(st) == 0 {
		return nil
	}
	labels := bpplot.Labels(st)
	fmt.Fprintf(out, "# step parameters\n%4s %-7s %8s %8s %8s %8s %8s %8s\n", "", "step", "Shift", "Slide", "Rise", "Tilt", "Roll", "Twist")
	for k, s := range st {
		fmt.Fprintf(out, "%4d %-7s %s\n", k+1, labels[k], s.Steps)
	}
	if set.helical {
		fmt.Fprintf(out, "# helical parameters\n%4s %-7s %8s %8s %8s %8s %8s %8s\n", "", "step", "X-disp", "Y-disp", "h-Rise", "Incl.", "Tip", "h-Twist")
		for k, s := range st {
			fmt.Fprintf(out, "%4d %-7s %s\n", k+1, labels[k], s.Helical)
		}
	}
	if set.plot != "" {
		prefix := set.plot
		if set.multi {
			prefix += "_" + strings.SplitN(filepath.Base(name), ".", 2)[0]
		}
		if _, err := bpplot.SaveAll(st, prefix); err != nil {
			return err
		}
	}
	return nil
}
