package ephem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ChristopherRabotin/frames"
	"github.com/soniakeys/meeus/v3/julian"
)

const (
	stateCols    = 7  // epoch,x,y,z,vx,vy,vz
	refStateCols = 13 // epoch,x,y,z,vx,vy,vz,ref_x,ref_y,ref_z,ref_vx,ref_vy,ref_vz
)

// Record is one state of an ephemeris file, in m and m/s.
type Record struct {
	Epoch time.Time
	State [6]float64
	// Ref is the J2000 reference state at Epoch, or nil to use the converter's one.
	Ref *frames.J2000[float64]
}

// ParseEpoch reads an epoch either as a Julian date or as an RFC3339 time.
func ParseEpoch(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if jde, err := strconv.ParseFloat(s, 64); err == nil {
		return julian.JDToTime(jde), nil
	}
	dt, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("epoch `%s` is neither a Julian date nor RFC3339", s)
	}
	return dt, nil
}

// ReadStates reads a CSV ephemeris. Each line is `epoch,x,y,z,vx,vy,vz`, optionally
// followed by the six components of the J2000 reference state at that epoch.
// Lines starting with # are ignored, as is a header line starting with `epoch`.
func ReadStates(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	var records []Record
	for line := 1; ; line++ {
		entries, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(entries[0]), "epoch") {
			continue
		}
		rec, err := parseRecord(entries)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(entries []string) (rec Record, err error) {
	if len(entries) != stateCols && len(entries) != refStateCols {
		return rec, fmt.Errorf("expected %d or %d fields, got %d", stateCols, refStateCols, len(entries))
	}
	if rec.Epoch, err = ParseEpoch(entries[0]); err != nil {
		return
	}
	vals := make([]float64, len(entries)-1)
	for i, entry := range entries[1:] {
		if vals[i], err = strconv.ParseFloat(strings.TrimSpace(entry), 64); err != nil {
			return rec, fmt.Errorf("malformatted value `%s`: %w", entry, err)
		}
	}
	copy(rec.State[:], vals[:6])
	if len(vals) == 12 {
		var ref [6]float64
		copy(ref[:], vals[6:])
		j2000 := frames.J2000FromArray(ref)
		rec.Ref = &j2000
	}
	return
}

// WriteStates writes the records as CSV in the format read by ReadStates, preceded by
// a comment naming the frame. The epoch is written in RFC3339. Records carrying their own
// reference state are written with the six reference columns.
func WriteStates(w io.Writer, records []Record, frame Frame) error {
	if _, err := fmt.Fprintf(w, "# frame: %s\n", frame); err != nil {
		return err
	}
	header := []string{"epoch", "x", "y", "z", "vx", "vy", "vz"}
	for _, rec := range records {
		if rec.Ref != nil {
			header = append(header, "ref_x", "ref_y", "ref_z", "ref_vx", "ref_vy", "ref_vz")
			break
		}
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, 0, refStateCols)
		row = append(row, rec.Epoch.Format(time.RFC3339Nano))
		row = appendFloats(row, rec.State)
		if rec.Ref != nil {
			row = appendFloats(row, rec.Ref.ToArray())
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func appendFloats(row []string, vals [6]float64) []string {
	for _, val := range vals {
		row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
	}
	return row
}
