// Package accuracy scores a resegmented read against its original basecall.
//
// Reads are compared with a local (Smith-Waterman) alignment so that
// sequence trimmed from either end by resegmentation is soft clipped and not
// counted against the read.
package accuracy

import (
	"fmt"
	"strings"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Index 0 is the gap in alphabet.DNAgapped ("-acgt").
var scoring = align.SW{
	{0, -1, -1, -1, -1},
	{-1, 1, -1, -1, -1},
	{-1, -1, 1, -1, -1},
	{-1, -1, -1, 1, -1},
	{-1, -1, -1, -1, 1},
}

// Result summarizes one alignment.
type Result struct {
	Matches    int // identical aligned columns
	Columns    int // aligned columns, gaps included
	RefStart   int
	RefEnd     int
	QueryStart int
	QueryEnd   int
}

// Accuracy is Matches/Columns, 0 for an empty alignment.
func (r Result) Accuracy() float64 {
	if r.Columns == 0 {
		return 0
	}
	return float64(r.Matches) / float64(r.Columns)
}

// Accuracy aligns query against ref and returns the identity of the
// soft-clipped alignment in [0,1].
func Accuracy(ref, query string) (float64, error) {
	r, err := Align(ref, query)
	if err != nil {
		return 0, err
	}
	return r.Accuracy(), nil
}

// Align runs the local alignment. RNA input is compared as DNA.
func Align(ref, query string) (Result, error) {
	rb, err := normalize(ref)
	if err != nil {
		return Result{}, fmt.Errorf("reference: %w", err)
	}
	qb, err := normalize(query)
	if err != nil {
		return Result{}, fmt.Errorf("query: %w", err)
	}
	if len(rb) == 0 || len(qb) == 0 {
		return Result{}, nil
	}
	rs := linear.NewSeq("reference", alphabet.BytesToLetters(rb), alphabet.DNAgapped)
	qs := linear.NewSeq("query", alphabet.BytesToLetters(qb), alphabet.DNAgapped)

	pairs, err := scoring.Align(rs, qs)
	if err != nil {
		return Result{}, fmt.Errorf("align: %w", err)
	}

	res := Result{RefStart: len(rb), QueryStart: len(qb)}
	for _, p := range pairs {
		f := p.Features()
		rf, qf := f[0], f[1]
		rl, ql := rf.End()-rf.Start(), qf.End()-qf.Start()
		res.RefStart, res.RefEnd = min(res.RefStart, rf.Start()), max(res.RefEnd, rf.End())
		res.QueryStart, res.QueryEnd = min(res.QueryStart, qf.Start()), max(res.QueryEnd, qf.End())
		if rl == 0 || ql == 0 {
			res.Columns += rl + ql
			continue
		}
		res.Columns += rl
		for i := 0; i < rl; i++ {
			if rb[rf.Start()+i] == qb[qf.Start()+i] {
				res.Matches++
			}
		}
	}
	if len(pairs) == 0 {
		res.RefStart, res.QueryStart = 0, 0
	}
	return res, nil
}

// normalize lowercases and maps u to t.
func normalize(s string) ([]byte, error) {
	b := []byte(strings.ToLower(strings.TrimSpace(s)))
	for i, c := range b {
		switch c {
		case 'a', 'c', 'g', 't':
		case 'u':
			b[i] = 't'
		default:
			return nil, fmt.Errorf("illegal base %q at %d", c, i)
		}
	}
	return b, nil
}
