package ephem

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/ChristopherRabotin/frames"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of conf.toml, used when
// no scenario file is provided.
const ConfigEnv = "FRAMES_CONFIG"

// Reference kinds
const (
	RefState    = "state"
	RefElements = "elements"
	RefTLE      = "tle"
)

// Config defines a conversion scenario.
type Config struct {
	Reference   ReferenceConfig
	InputFile   string
	InputFrame  Frame
	OutputFile  string
	OutputFrame Frame
	Workers     int
}

// ReferenceConfig defines the J2000 reference (chief) state of the LVLH and VVLH frames.
type ReferenceConfig struct {
	Kind     string
	Epoch    time.Time
	State    [6]float64                        // m and m/s
	Elements frames.OrbitCoefficients[float64] // m and radians
	Line1    string
	Line2    string
}

// LoadConfig reads the scenario TOML file. If filename is empty, conf.toml is read
// from the directory set in the FRAMES_CONFIG environment variable.
func LoadConfig(filename string) (Config, error) {
	v := viper.New()
	if filename == "" {
		confPath := os.Getenv(ConfigEnv)
		if confPath == "" {
			return Config{}, fmt.Errorf("no scenario provided and environment variable `%s` is missing or empty", ConfigEnv)
		}
		v.SetConfigName("conf")
		v.AddConfigPath(confPath)
	} else {
		v.SetConfigFile(filename)
	}
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading scenario: %w", err)
	}
	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (conf Config, err error) {
	v.SetDefault("general.workers", runtime.NumCPU())
	v.SetDefault("input.frame", "LVLH")
	v.SetDefault("output.frame", "J2000")

	conf.InputFile = v.GetString("input.file")
	conf.OutputFile = v.GetString("output.file")
	conf.Workers = v.GetInt("general.workers")
	if conf.Workers <= 0 {
		conf.Workers = runtime.NumCPU()
	}
	if conf.InputFrame, err = ParseFrame(v.GetString("input.frame")); err != nil {
		return conf, fmt.Errorf("input.frame: %w", err)
	}
	if conf.OutputFrame, err = ParseFrame(v.GetString("output.frame")); err != nil {
		return conf, fmt.Errorf("output.frame: %w", err)
	}

	ref := &conf.Reference
	ref.Kind = strings.ToLower(v.GetString("reference.kind"))
	if v.IsSet("reference.epoch") {
		if ref.Epoch, err = readJDEorTime(v, "reference.epoch"); err != nil {
			return conf, err
		}
	}
	switch ref.Kind {
	case RefState:
		for i, key := range []string{"x", "y", "z", "vx", "vy", "vz"} {
			ref.State[i] = v.GetFloat64("reference." + key)
		}
	case RefElements:
		// Angles are given in degrees, like the rest of the astro tooling.
		ref.Elements = frames.OrbitCoefficients[float64]{
			A:     v.GetFloat64("reference.a"),
			E:     v.GetFloat64("reference.e"),
			I:     frames.Deg2rad(v.GetFloat64("reference.i")),
			Omega: frames.Deg2rad(v.GetFloat64("reference.raan")),
			W:     frames.Deg2rad(v.GetFloat64("reference.argp")),
			Theta: frames.Deg2rad(v.GetFloat64("reference.nu")),
		}
	case RefTLE:
		ref.Line1 = v.GetString("reference.line1")
		ref.Line2 = v.GetString("reference.line2")
	case "":
		// Records may still carry their own reference.
	default:
		return conf, fmt.Errorf("unknown reference kind `%s`", ref.Kind)
	}
	return conf, nil
}

// ErrNoReference is returned when a reference state is needed but none is configured.
var ErrNoReference = errors.New("no reference state configured")

// J2000 returns the configured reference state.
func (r ReferenceConfig) J2000() (frames.J2000[float64], error) {
	switch r.Kind {
	case RefState:
		return frames.J2000FromArray(r.State), nil
	case RefElements:
		if err := r.Elements.Validate(); err != nil {
			return frames.J2000[float64]{}, err
		}
		return frames.J2000FromOrbit(r.Elements), nil
	case RefTLE:
		state, _, err := ReferenceFromTLE(r.Line1, r.Line2)
		return state, err
	}
	return frames.J2000[float64]{}, ErrNoReference
}

// readJDEorTime reads the key either as a Julian date or as a time.
func readJDEorTime(v *viper.Viper, key string) (dt time.Time, err error) {
	if jde := v.GetFloat64(key); jde != 0 {
		return julian.JDToTime(jde), nil
	}
	dt = v.GetTime(key)
	if dt.IsZero() {
		return dt, fmt.Errorf("could not understand `%s`", key)
	}
	return dt, nil
}
