package ephem

import (
	"fmt"
	"sync"
	"time"

	"github.com/ChristopherRabotin/frames"
	kitlog "github.com/go-kit/kit/log"
)

// Converter converts records from one frame to another.
type Converter struct {
	From, To Frame
	basis    *frames.Basis[float64] // nil when no common reference is configured
	epoch    time.Time              // epoch of the common reference, if known
	logger   kitlog.Logger
}

// NewConverter returns a converter. The ref state may be nil when every record carries
// its own reference, or when no relative frame is involved. A nil logger disables logging.
func NewConverter(from, to Frame, ref *frames.J2000[float64], refEpoch time.Time, logger kitlog.Logger) (*Converter, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	c := &Converter{From: from, To: to, epoch: refEpoch, logger: kitlog.With(logger, "subsys", "ephem", "from", from, "to", to)}
	if ref != nil {
		basis, err := frames.NewBasis(*ref)
		if err != nil {
			return nil, fmt.Errorf("invalid reference state: %w", err)
		}
		if frames.Earth.Below(ref.Pos) {
			c.logger.Log("level", "warning", "message", "reference is below the surface", "body", frames.Earth, "r", ref.Pos.Norm())
		}
		c.basis = basis
	}
	return c, nil
}

// Convert returns the record converted into the destination frame.
func (c *Converter) Convert(rec Record) (Record, error) {
	out := Record{Epoch: rec.Epoch, Ref: rec.Ref}
	switch {
	case c.From == c.To:
		out.State = rec.State
		return out, nil
	case c.From == LVLH && c.To == VVLH:
		out.State = frames.VVLHFromLVLH(frames.LVLHFromArray(rec.State)).ToArray()
		return out, nil
	case c.From == VVLH && c.To == LVLH:
		out.State = frames.LVLHFromVVLH(frames.VVLHFromArray(rec.State)).ToArray()
		return out, nil
	}

	basis := c.basis
	if rec.Ref != nil {
		var err error
		if basis, err = frames.NewBasis(*rec.Ref); err != nil {
			return out, fmt.Errorf("reference at %s: %w", rec.Epoch, err)
		}
	} else if basis == nil {
		return out, ErrNoReference
	} else if !c.epoch.IsZero() && !rec.Epoch.Equal(c.epoch) {
		c.logger.Log("level", "warning", "message", "record epoch differs from the reference epoch", "epoch", rec.Epoch, "ref", c.epoch)
	}

	var j2000 frames.J2000[float64]
	var err error
	switch c.From {
	case J2000:
		j2000 = frames.J2000FromArray(rec.State)
	case LVLH:
		j2000, err = basis.J2000(frames.LVLHFromArray(rec.State))
	case VVLH:
		j2000, err = basis.J2000FromVVLH(frames.VVLHFromArray(rec.State))
	default:
		return out, fmt.Errorf("unsupported input frame %s", c.From)
	}
	if err != nil {
		return out, fmt.Errorf("reference at %s: %w", rec.Epoch, err)
	}
	switch c.To {
	case J2000:
		if frames.Earth.Below(j2000.Pos) {
			c.logger.Log("level", "warning", "message", "state is below the surface", "epoch", rec.Epoch, "r", j2000.Pos.Norm())
		}
		out.State = j2000.ToArray()
	case LVLH:
		out.State = basis.LVLH(j2000).ToArray()
	case VVLH:
		out.State = basis.VVLH(j2000).ToArray()
	default:
		return out, fmt.Errorf("unsupported output frame %s", c.To)
	}
	return out, nil
}

// ConvertAll converts all the records on the provided number of workers. The order of
// the records is preserved. Records which cannot be converted are logged and skipped.
func (c *Converter) ConvertAll(records []Record, workers int) []Record {
	if workers <= 0 {
		workers = 1
	}
	converted := make([]Record, len(records))
	failed := make([]bool, len(records))
	jobs := make(chan int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rec, err := c.Convert(records[idx])
				if err != nil {
					c.logger.Log("level", "error", "record", idx, "epoch", records[idx].Epoch, "err", err)
					failed[idx] = true
					continue
				}
				converted[idx] = rec
			}
		}()
	}
	for idx := range records {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	rslt := converted[:0]
	for idx, rec := range converted {
		if !failed[idx] {
			rslt = append(rslt, rec)
		}
	}
	c.logger.Log("level", "info", "converted", len(rslt), "skipped", len(records)-len(rslt))
	return rslt
}
