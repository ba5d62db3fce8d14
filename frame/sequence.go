package frame

import (
	"fmt"
	"log"
	"time"

	"github.com/disintegration/imaging"
)

// Sequence describes a filtering run over a frame sequence. Frame i is read
// from <InPrefix>XXXX.png and written to <OutPrefix>XXXX.png, where XXXX is
// the zero-padded frame index. The index range is half open: [Start, End).
type Sequence struct {
	InPrefix, OutPrefix string
	Start, End          int
	Opt                 Options
}

// InName returns the input file name of frame i.
func (seq *Sequence) InName(i int) string {
	return fmt.Sprintf("%s%04d.png", seq.InPrefix, i)
}

// OutName returns the output file name of frame i.
func (seq *Sequence) OutName(i int) string {
	return fmt.Sprintf("%s%04d.png", seq.OutPrefix, i)
}

// Filter runs the filter over a single frame.
func (seq *Sequence) Filter(i int) error {
	src, err := imaging.Open(seq.InName(i))
	if err != nil {
		return fmt.Errorf("could not read frame %d: %v", i, err)
	}

	out := Apply(src, seq.Opt)

	if err := imaging.Save(out, seq.OutName(i)); err != nil {
		return fmt.Errorf("could not write frame %d: %v", i, err)
	}
	return nil
}

// Run filters every frame in the sequence in index order. Frames are
// independent, so a failed frame aborts the run without corrupting frames
// already written.
func (seq *Sequence) Run() error {
	if seq.Start < 0 || seq.End <= seq.Start {
		return fmt.Errorf(
			"invalid frame range [%d, %d)", seq.Start, seq.End,
		)
	}

	startTime := time.Now()
	for i := seq.Start; i < seq.End; i++ {
		if err := seq.Filter(i); err != nil {
			return err
		}
		log.Printf(
			"Finished %d/%d frames in %v.",
			i+1-seq.Start, seq.End-seq.Start, time.Since(startTime),
		)
	}
	return nil
}
