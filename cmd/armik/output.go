package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/armik/internal/config"
	"zappem.net/pub/kinematics/armik/internal/sweep"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// record is the printed form of a sweep.Sample. Angles are in
// degrees, J0..J3.
type record struct {
	Index   int        `json:"index" yaml:"index"`
	Goal    [3]float64 `json:"goal" yaml:"goal,flow"`
	Target  [3]float64 `json:"target" yaml:"target,flow"`
	Clamped bool       `json:"clamped" yaml:"clamped"`
	Theta   [4]float64 `json:"theta_deg" yaml:"theta_deg,flow"`
}

func xyz(v geom.Vector) [3]float64 {
	return [3]float64{v[0], v[1], v[2]}
}

func newRecord(s sweep.Sample) record {
	r := record{
		Index:   s.Index,
		Goal:    xyz(s.Goal),
		Target:  xyz(s.Target),
		Clamped: s.Clamped,
	}
	for i, a := range s.Joints.Slice() {
		r.Theta[i] = a.Deg()
	}
	return r
}

// write prints samples to w in the given format. JSON is one object
// per line; YAML is a single sequence.
func write(w io.Writer, format string, samples []sweep.Sample) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		for _, s := range samples {
			if err := enc.Encode(newRecord(s)); err != nil {
				return err
			}
		}
		return nil
	case config.FormatYAML:
		recs := make([]record, len(samples))
		for i, s := range samples {
			recs[i] = newRecord(s)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, s := range samples {
			line := fmt.Sprintf("%d %v: %v", s.Index, s.Goal, s.Joints)
			if s.Clamped {
				line += fmt.Sprintf(" (clamped to %v)", s.Target)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}
