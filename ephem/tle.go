package ephem

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ChristopherRabotin/frames"
	satellite "github.com/joshuaferrara/go-satellite"
)

// ReferenceFromTLE returns the state of a two line element set at its own epoch,
// rounded to the second. SGP4 outputs TEME of date, which is used as J2000 here:
// the states of the deputies must come from the same source for the relative
// geometry to be meaningful.
func ReferenceFromTLE(line1, line2 string) (frames.J2000[float64], time.Time, error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	if err := validateTLELines(line1, line2); err != nil {
		return frames.J2000[float64]{}, time.Time{}, err
	}
	epoch, err := tleEpoch(line1)
	if err != nil {
		return frames.J2000[float64]{}, time.Time{}, err
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	if sat.Error != 0 {
		return frames.J2000[float64]{}, time.Time{}, fmt.Errorf("sgp4 init failed: code=%d %s", sat.Error, sat.ErrorStr)
	}
	pos, vel := satellite.Propagate(sat, epoch.Year(), int(epoch.Month()), epoch.Day(), epoch.Hour(), epoch.Minute(), epoch.Second())
	state := [6]float64{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z}
	for i := range state {
		if math.IsNaN(state[i]) || math.IsInf(state[i], 0) {
			return frames.J2000[float64]{}, time.Time{}, fmt.Errorf("sgp4 output is NaN/Inf at %s", epoch)
		}
		state[i] *= 1e3 // km to m
	}
	return frames.J2000FromArray(state), epoch, nil
}

// tleField is a numeric column of a TLE line, as [from, to) byte offsets.
type tleField struct {
	name     string
	from, to int
	parse    func(string) error
}

var (
	tleLine1Fields = []tleField{
		{"satellite number", 2, 7, parseTLEInt},
		{"epoch year", 18, 20, parseTLEInt},
		{"epoch day", 20, 32, parseTLEFloat},
		{"mean motion derivative", 33, 43, parseTLEFloat},
		{"mean motion second derivative", 44, 52, parseTLEExp},
		{"bstar", 53, 61, parseTLEExp},
	}
	tleLine2Fields = []tleField{
		{"satellite number", 2, 7, parseTLEInt},
		{"inclination", 8, 16, parseTLEFloat},
		{"raan", 17, 25, parseTLEFloat},
		{"eccentricity", 26, 33, parseTLEDecimal},
		{"argument of perigee", 34, 42, parseTLEFloat},
		{"mean anomaly", 43, 51, parseTLEFloat},
		{"mean motion", 52, 63, parseTLEFloat},
	}
)

// validateTLELines checks every column go-satellite parses, since it calls log.Fatal
// on malformed numbers.
func validateTLELines(line1, line2 string) error {
	for i, line := range []string{line1, line2} {
		if len(line) != 69 {
			return fmt.Errorf("line%d length %d, expected 69", i+1, len(line))
		}
		if exp := byte('1' + i); line[0] != exp {
			return fmt.Errorf("line%d must start with '%c', got '%c'", i+1, exp, line[0])
		}
		if sum := tleChecksum(line); int(line[68]-'0') != sum {
			return fmt.Errorf("line%d checksum is %c, expected %d", i+1, line[68], sum)
		}
		fields := tleLine1Fields
		if i == 1 {
			fields = tleLine2Fields
		}
		for _, field := range fields {
			if err := field.parse(line[field.from:field.to]); err != nil {
				return fmt.Errorf("line%d %s `%s`: %w", i+1, field.name, line[field.from:field.to], err)
			}
		}
	}
	if line1[2:7] != line2[2:7] {
		return fmt.Errorf("satellite numbers differ: %s and %s", line1[2:7], line2[2:7])
	}
	return nil
}

// tleChecksum returns the modulo 10 sum of the digits of the first 68 characters,
// where minus signs count as one.
func tleChecksum(line string) int {
	sum := 0
	for _, c := range line[:68] {
		switch {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

func parseTLEInt(s string) error {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err
}

func parseTLEFloat(s string) error {
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, " ", ""), 64)
	return err
}

// parseTLEExp reads the implied decimal point format, e.g. `-11606-4` is -0.11606e-4.
func parseTLEExp(s string) error {
	s = strings.ReplaceAll(s, " ", "")
	if len(s) < 3 {
		return fmt.Errorf("too short")
	}
	mantissa, exp := s[:len(s)-2], s[len(s)-2:]
	sign := ""
	if mantissa[0] == '-' || mantissa[0] == '+' {
		sign, mantissa = mantissa[:1], mantissa[1:]
	}
	_, err := strconv.ParseFloat(sign+"."+mantissa+"e"+exp, 64)
	return err
}

// parseTLEDecimal reads digits with an implied leading decimal point.
func parseTLEDecimal(s string) error {
	_, err := strconv.ParseFloat("."+s, 64)
	return err
}

// tleEpoch parses the YYDDD.DDDDDDDD epoch of the first line, rounded to the second.
func tleEpoch(line1 string) (time.Time, error) {
	epochStr := strings.TrimSpace(line1[18:32])
	if len(epochStr) < 5 {
		return time.Time{}, fmt.Errorf("invalid TLE epoch `%s`", epochStr)
	}
	yy, err := strconv.Atoi(epochStr[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid TLE epoch year `%s`: %w", epochStr, err)
	}
	doy, err := strconv.ParseFloat(epochStr[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid TLE epoch day `%s`: %w", epochStr, err)
	}
	year := 2000 + yy
	if yy >= 57 {
		year = 1900 + yy
	}
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	epoch := start.Add(time.Duration((doy - 1) * 24 * float64(time.Hour)))
	return epoch.Round(time.Second), nil
}
