package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ChristopherRabotin/frames"
	"github.com/ChristopherRabotin/frames/ephem"
	kitlog "github.com/go-kit/kit/log"
)

var (
	scenario string
	debug    bool
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "conversion scenario TOML file (defaults to $FRAMES_CONFIG/conf.toml)")
	flag.BoolVar(&debug, "debug", false, "log every converted record")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if err := run(logger); err != nil {
		logger.Log("level", "critical", "err", err)
		os.Exit(1)
	}
}

func run(logger kitlog.Logger) error {
	conf, err := ephem.LoadConfig(scenario)
	if err != nil {
		return err
	}
	var ref *frames.J2000[float64]
	refEpoch := conf.Reference.Epoch
	switch conf.Reference.Kind {
	case "":
		if conf.InputFrame.Relative() && conf.OutputFrame.Relative() {
			break
		}
		if conf.InputFrame.Relative() || conf.OutputFrame.Relative() {
			logger.Log("level", "notice", "message", "no reference configured, records must carry their own")
		}
	case ephem.RefTLE:
		state, epoch, err := ephem.ReferenceFromTLE(conf.Reference.Line1, conf.Reference.Line2)
		if err != nil {
			return fmt.Errorf("reference TLE: %w", err)
		}
		ref, refEpoch = &state, epoch
	default:
		state, err := conf.Reference.J2000()
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		ref = &state
	}
	if ref != nil {
		logger.Log("level", "info", "subsys", "reference", "kind", conf.Reference.Kind, "epoch", refEpoch, "state", ref)
		if oe, err := frames.OrbitFromJ2000(*ref); err == nil {
			logger.Log("level", "info", "subsys", "reference", "orbit", oe, "period", oe.Period())
		}
	}

	converter, err := ephem.NewConverter(conf.InputFrame, conf.OutputFrame, ref, refEpoch, logger)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if conf.InputFile != "" {
		f, err := os.Open(conf.InputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	records, err := ephem.ReadStates(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", conf.InputFile, err)
	}

	start := time.Now()
	converted := converter.ConvertAll(records, conf.Workers)
	if debug {
		for _, rec := range converted {
			logger.Log("level", "debug", "epoch", rec.Epoch, "state", fmt.Sprintf("%v", rec.State))
		}
	}

	if err := writeOutput(conf.OutputFile, converted, conf.OutputFrame); err != nil {
		return fmt.Errorf("writing %s: %w", conf.OutputFile, err)
	}
	logger.Log("level", "notice", "status", "finished", "from", conf.InputFrame, "to", conf.OutputFrame,
		"records", len(converted), "workers", conf.Workers, "duration", time.Since(start))
	return nil
}

// writeOutput writes the records to filename, or to stdout if it is empty.
func writeOutput(filename string, records []ephem.Record, frame ephem.Frame) error {
	if filename == "" {
		return ephem.WriteStates(os.Stdout, records, frame)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := ephem.WriteStates(f, records, frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
