package ephem

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gonum/floats"
)

const sampleEphem = `# deputy in LVLH
epoch,x,y,z,vx,vy,vz
2451545.0,-100000,200000,-300000,0,-5,10
2000-01-01T12:00:00Z, 500000, -200000, 400000, 0, 15, -5
2000-01-01T12:00:00.5Z,1,2,3,4,5,6,-5042137.452,42166300.0,14286.07219,-2732.96475,-456.767294,7.459819
`

func TestReadStates(t *testing.T) {
	records, err := ReadStates(strings.NewReader(sampleEphem))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	j2000Epoch := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if diff := records[0].Epoch.Sub(j2000Epoch); diff > time.Millisecond || diff < -time.Millisecond {
		t.Fatalf("incorrect JDE epoch %s", records[0].Epoch)
	}
	if !records[1].Epoch.Equal(j2000Epoch) {
		t.Fatalf("incorrect RFC3339 epoch %s", records[1].Epoch)
	}
	if records[0].State != [6]float64{-100000, 200000, -300000, 0, -5, 10} {
		t.Fatalf("incorrect state %v", records[0].State)
	}
	if records[0].Ref != nil || records[1].Ref != nil {
		t.Fatal("unexpected reference state")
	}
	if records[2].Ref == nil {
		t.Fatal("expected a reference state")
	}
	if !floats.Equal(records[2].Ref.Pos[:], []float64{-5042137.452, 42166300.0, 14286.07219}) {
		t.Fatalf("incorrect reference %s", records[2].Ref)
	}
}

func TestReadStatesErrors(t *testing.T) {
	for name, data := range map[string]string{
		"missing column": "2451545.0,1,2,3,4,5\n",
		"bad number":     "2451545.0,1,2,3,4,5,six\n",
		"bad epoch":      "yesterday,1,2,3,4,5,6\n",
	} {
		if _, err := ReadStates(strings.NewReader(data)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestWriteStates(t *testing.T) {
	records, err := ReadStates(strings.NewReader(sampleEphem))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteStates(&buf, records, LVLH); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "# frame: LVLH\nepoch,x,y,z,vx,vy,vz,ref_x,ref_y,ref_z,ref_vx,ref_vy,ref_vz\n") {
		t.Fatalf("unexpected header:\n%s", buf.String())
	}
	back, err := ReadStates(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(back))
	}
	for i := range back {
		if !back[i].Epoch.Equal(records[i].Epoch) || back[i].State != records[i].State {
			t.Fatalf("record %d differs: %+v != %+v", i, back[i], records[i])
		}
		if (back[i].Ref == nil) != (records[i].Ref == nil) {
			t.Fatalf("record %d: reference not preserved", i)
		}
	}
	if *back[2].Ref != *records[2].Ref {
		t.Fatalf("incorrect reference %s", back[2].Ref)
	}
	buf.Reset()
	if err := WriteStates(&buf, records[:2], J2000); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "# frame: J2000\nepoch,x,y,z,vx,vy,vz\n") {
		t.Fatalf("unexpected header without references:\n%s", buf.String())
	}
}

func TestWriteStatesReferenceRoundTrip(t *testing.T) {
	records, err := ReadStates(strings.NewReader(sampleEphem))
	if err != nil {
		t.Fatal(err)
	}
	// Only the last record carries its own reference.
	records = records[2:]
	toJ2000, err := NewConverter(LVLH, J2000, nil, time.Time{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	j2000 := toJ2000.ConvertAll(records, 1)
	var buf bytes.Buffer
	if err := WriteStates(&buf, j2000, J2000); err != nil {
		t.Fatal(err)
	}
	reread, err := ReadStates(&buf)
	if err != nil {
		t.Fatal(err)
	}
	toLVLH, err := NewConverter(J2000, LVLH, nil, time.Time{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	lvlh := toLVLH.ConvertAll(reread, 1)
	if len(lvlh) != 1 {
		t.Fatalf("expected 1 record, got %d", len(lvlh))
	}
	if !floats.EqualApprox(lvlh[0].State[:], records[0].State[:], 1e-6) {
		t.Fatalf("incorrect LVLH state %v", lvlh[0].State)
	}
}
