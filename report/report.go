/*
 * report.go, part of gonuc.
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

//Package report writes the result of every pair tested during a selection as JSON lines,
//one object per line. Files whose names end in .gz or .zst are compressed.
package report

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	nuc "github.com/rmera/gonuc"
	"github.com/rmera/gonuc/pairs"
)

//HBond is the serializable form of an H-bond.
type HBond struct {
	Donor    string   `json:"donor"`
	Acceptor string   `json:"acceptor"`
	Distance float64  `json:"distance"`
	Angle    *float64 `json:"angle,omitempty"`
	Status   string   `json:"status"`
}

//Record is the serializable form of the result for one pair.
type Record struct {
	Label       string  `json:"label,omitempty"`
	I           int     `json:"i"`
	J           int     `json:"j"`
	ResI        string  `json:"res_i"`
	ResJ        string  `json:"res_j"`
	Valid       bool    `json:"valid"`
	Reason      string  `json:"reason,omitempty"`
	Dorg        float64 `json:"dorg"`
	DNN         float64 `json:"dNN"`
	PlaneAngle  float64 `json:"plane_angle"`
	DV          float64 `json:"d_v"`
	Overlap     float64 `json:"overlap"`
	HBonds      []HBond `json:"hbonds,omitempty"`
	GoodHBonds  int     `json:"good_hbonds"`
	BaseScore   float64 `json:"base_score"`
	HBondAdjust float64 `json:"hbond_adjust"`
	TypeAdjust  float64 `json:"type_adjust"`
	Score       float64 `json:"score"`
	BPType      int     `json:"bp_type"`
}

//NewRecord builds the record for the result r of a pair of residues in S.
func NewRecord(label string, S *nuc.Structure, r *pairs.Result) *Record {
	rec := &Record{
		Label:       label,
		I:           r.I,
		J:           r.J,
		ResI:        S.Residue(r.I).String(),
		ResJ:        S.Residue(r.J).String(),
		Valid:       r.Valid,
		Reason:      r.Reason,
		Dorg:        r.Dorg,
		DNN:         r.DNN,
		PlaneAngle:  r.PlaneAngle,
		DV:          r.DV,
		Overlap:     r.Overlap,
		GoodHBonds:  r.GoodHBonds,
		BaseScore:   r.BaseScore,
		HBondAdjust: r.HBondAdjust,
		TypeAdjust:  r.TypeAdjust,
		Score:       r.Score,
		BPType:      r.BPType,
	}
	for _, h := range r.HBonds {
		hb := HBond{Donor: h.DonorName, Acceptor: h.AcceptorName, Distance: h.Distance, Status: h.Status.String()}
		if h.HasAngle {
			a := h.Angle
			hb.Angle = &a
		}
		rec.HBonds = append(rec.HBonds, hb)
	}
	return rec
}

//Writer writes records as JSON lines. It is safe for concurrent use, so several structures
//can be reported to the same Writer, each one with its own label.
type Writer struct {
	out      io.WriteCloser
	buf      *bufio.Writer
	enc      *json.Encoder
	mu       sync.Mutex
	n        int
	filename string
}

//NewWriter creates the file name and returns a Writer for it. The file is compressed with gzip
//if the name ends in .gz, or with zstandard if it ends in .zst.
func NewWriter(name string) (*Writer, error) {
	out, err := nuc.CreateCompressed(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	W := NewStreamWriter(out)
	W.filename = name
	return W, nil
}

//NewStreamWriter returns a Writer that writes to out. Closing the Writer closes out.
func NewStreamWriter(out io.WriteCloser) *Writer {
	W := &Writer{out: out, buf: bufio.NewWriter(out)}
	W.enc = json.NewEncoder(W.buf)
	return W
}

//Write writes one record.
func (W *Writer) Write(rec *Record) error {
	W.mu.Lock()
	defer W.mu.Unlock()
	if err := W.enc.Encode(rec); err != nil {
		return Error{err.Error(), W.filename, []string{"Write"}, true}
	}
	W.n++
	return nil
}

//Len returns the number of records written so far.
func (W *Writer) Len() int {
	W.mu.Lock()
	defer W.mu.Unlock()
	return W.n
}

//Close flushes the buffer and closes the underlying file.
func (W *Writer) Close() error {
	W.mu.Lock()
	defer W.mu.Unlock()
	err := W.buf.Flush()
	if err2 := W.out.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//Recorder returns a recorder that writes to W, with the given label in each record.
//It can be used as the recorder of a selection.
func (W *Writer) Recorder(label string) *Recorder {
	return &Recorder{W: W, Label: label}
}

//Recorder writes the results it receives to a Writer.
type Recorder struct {
	W     *Writer
	Label string
}

//Record writes the result r for a pair of residues in S.
func (R *Recorder) Record(S *nuc.Structure, r *pairs.Result) error {
	return R.W.Write(NewRecord(R.Label, S, r))
}

//ReadAll reads all the records in r.
func ReadAll(r io.Reader) ([]*Record, error) {
	dec := json.NewDecoder(r)
	var ret []*Record
	for dec.More() {
		rec := new(Record)
		if err := dec.Decode(rec); err != nil {
			return ret, Error{err.Error(), "", []string{"ReadAll"}, true}
		}
		ret = append(ret, rec)
	}
	return ret, nil
}

//Errors

//Error is the error type of the report package.
type Error struct {
	message  string
	filename string //the file that caused the error, if any
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.filename == "" {
		return err.message
	}
	return err.filename + ": " + err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }
