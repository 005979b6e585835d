package reseg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"reseg/internal/accuracy"
	"reseg/internal/anchor"
	"reseg/internal/config"
	"reseg/internal/events"
	"reseg/internal/logging"
	"reseg/internal/sequence"
	"reseg/internal/store"
	"reseg/internal/version"
)

// Store is the subset of *store.Store a Resegmenter needs.
type Store interface {
	GetRead(ctx context.Context, id string) (store.Read, error)
	GetEvents(ctx context.Context, readID, name string) (events.Table, error)
	PutEventsFastq(ctx context.Context, readID, name string, t events.Table, attrs map[string]string, fastq string, overwrite bool) error
	GetFastq(ctx context.Context, readID, name string) (string, error)
}

// Result summarizes one resegmented read.
type Result struct {
	ReadID       string
	NumEvents    int // labeled events stored
	StartIndex   int // first labeled event of the detected table
	EndIndex     int // one past the last labeled event
	Truncated    bool
	Moves        int // sum of output moves
	MaxMovesSeen int
	Sequence     string
	Fastq        string

	Accuracy    float64
	HasAccuracy bool
}

// Resegmenter processes reads of one store with one configuration.
// It is safe for concurrent use when its Store is.
type Resegmenter struct {
	st    Store
	cfg   config.Config
	log   *log.Logger
	runID string
	now   func() time.Time
}

// New returns a Resegmenter. A nil logger discards.
func New(st Store, cfg config.Config, logger *log.Logger) *Resegmenter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resegmenter{
		st:    st,
		cfg:   cfg,
		log:   logger,
		runID: uuid.NewString(),
		now:   time.Now,
	}
}

// RunID identifies every analysis written by this Resegmenter.
func (r *Resegmenter) RunID() string { return r.runID }

// Read resegments one read and stores the relabeled table and its FASTQ
// under the configured output analysis.
func (r *Resegmenter) Read(ctx context.Context, readID string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	an := r.cfg.Analyses

	rd, err := r.st.GetRead(ctx, readID)
	if err != nil {
		return Result{}, err
	}
	if !(rd.SamplingFreq > 0) {
		return Result{}, events.Invalid("Read", "sampling_freq", "read %s: sampling frequency %v must be positive", readID, rd.SamplingFreq)
	}
	if !(rd.StartTime > 0) {
		return Result{}, events.Invalid("Read", "start_time", "read %s: start time %v must be positive", readID, rd.StartTime)
	}

	oldT, err := r.st.GetEvents(ctx, readID, an.Basecall)
	if err != nil {
		return Result{}, err
	}
	if oldT.Len() == 0 {
		return Result{}, events.Invalid("Read", "events", "read %s: %s has no events", readID, an.Basecall)
	}
	newT, err := r.st.GetEvents(ctx, readID, an.Detected)
	if err != nil {
		return Result{}, err
	}
	if newT.Len() == 0 {
		return Result{}, events.Invalid("Read", "events", "read %s: %s has no events", readID, an.Detected)
	}

	if oldT.Units != newT.Units {
		if oldT, err = convert(oldT, newT.Units, rd); err != nil {
			return Result{}, err
		}
	}

	if err := r.checkContiguous(readID, an.Basecall, oldT); err != nil {
		return Result{}, err
	}
	if err := r.checkContiguous(readID, an.Detected, newT); err != nil {
		return Result{}, err
	}

	out, stats, err := anchor.Transfer(newT, oldT)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", readID, err)
	}
	r.log.Debug("transfer", "read_id", readID, "start", stats.StartIndex, "end", stats.EndIndex,
		"truncated", stats.Truncated, "max_moves_seen", stats.MaxMovesSeen)

	seq, err := sequence.FromEvents(out)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", readID, err)
	}
	seq = sequence.ForRead(seq, rd.RNA)
	fq, err := sequence.NewFastq(readID+" :", seq)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", readID, err)
	}
	if err := r.st.PutEventsFastq(ctx, readID, an.Output, out, r.attributes(rd), fq.String(), r.cfg.Overwrite); err != nil {
		return Result{}, err
	}

	res := Result{
		ReadID:       readID,
		NumEvents:    out.Len(),
		StartIndex:   stats.StartIndex,
		EndIndex:     stats.EndIndex,
		Truncated:    stats.Truncated,
		MaxMovesSeen: stats.MaxMovesSeen,
		Sequence:     seq,
		Fastq:        fq.String(),
	}
	for _, ev := range out.Events {
		res.Moves += ev.Move
	}
	if r.cfg.Accuracy {
		acc, err := r.Accuracy(ctx, readID)
		if err != nil {
			return Result{}, err
		}
		res.Accuracy, res.HasAccuracy = acc, true
	}
	return res, nil
}

// Accuracy aligns the stored output FASTQ of a read against its basecall.
// The basecall FASTQ is preferred; without one the basecall sequence is
// rebuilt from its event table.
func (r *Resegmenter) Accuracy(ctx context.Context, readID string) (float64, error) {
	an := r.cfg.Analyses

	ref, err := r.fastqSeq(ctx, readID, an.Basecall)
	if errors.Is(err, store.ErrNotFound) {
		ref, err = r.rebuild(ctx, readID, an.Basecall)
	}
	if err != nil {
		return 0, err
	}
	query, err := r.fastqSeq(ctx, readID, an.Output)
	if err != nil {
		return 0, err
	}
	acc, err := accuracy.Accuracy(ref, query)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", readID, err)
	}
	return acc, nil
}

func (r *Resegmenter) fastqSeq(ctx context.Context, readID, analysis string) (string, error) {
	raw, err := r.st.GetFastq(ctx, readID, analysis)
	if err != nil {
		return "", err
	}
	fq, err := sequence.ParseFastq(raw)
	if err != nil {
		return "", fmt.Errorf("read %s %s: %w", readID, analysis, err)
	}
	return fq.Seq, nil
}

func (r *Resegmenter) rebuild(ctx context.Context, readID, analysis string) (string, error) {
	rd, err := r.st.GetRead(ctx, readID)
	if err != nil {
		return "", err
	}
	t, err := r.st.GetEvents(ctx, readID, analysis)
	if err != nil {
		return "", err
	}
	seq, err := sequence.FromEvents(t)
	if err != nil {
		return "", fmt.Errorf("read %s %s: %w", readID, analysis, err)
	}
	return sequence.ForRead(seq, rd.RNA), nil
}

func (r *Resegmenter) checkContiguous(readID, analysis string, t events.Table) error {
	err := events.CheckContiguous(t)
	if err == nil {
		return nil
	}
	if r.cfg.StrictContiguity {
		return fmt.Errorf("read %s %s: %w", readID, analysis, err)
	}
	var ce *events.ContiguityError
	if errors.As(err, &ce) {
		r.log.Warn("events not contiguous", "read_id", readID, "analysis", analysis, "index", ce.Index)
	}
	return nil
}

// attributes builds the provenance stored with the output analysis.
// Read attributes come first so they cannot mask the run's own keys.
func (r *Resegmenter) attributes(rd store.Read) map[string]string {
	attrs := make(map[string]string, len(rd.Attributes)+len(r.cfg.Detector.Params)+6)
	for k, v := range rd.Attributes {
		attrs[k] = v
	}
	for k, v := range r.cfg.Detector.Params {
		attrs[k] = v
	}
	attrs["event_detection"] = r.cfg.Detector.Name
	attrs["basecall_analysis"] = r.cfg.Analyses.Basecall
	attrs["detection_analysis"] = r.cfg.Analyses.Detected
	attrs["reseg_version"] = version.Version
	attrs["time_stamp"] = r.now().UTC().Format(time.RFC3339)
	attrs["run_id"] = r.runID
	return attrs
}

func convert(t events.Table, to events.Units, rd store.Read) (events.Table, error) {
	if to == events.UnitsTime {
		return events.ToTime(t, rd.SamplingFreq, rd.StartTime)
	}
	return events.ToIndex(t, rd.SamplingFreq, rd.StartTime)
}
