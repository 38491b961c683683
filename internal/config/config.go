// Package config loads batch cut jobs from YAML.
//
// A job file looks like:
//
//	workers: 4
//	cap: delaunay
//	jobs:
//	  - input: part.stl
//	    output: part_cut.glb
//	    plane:
//	      point: [0, 0, 0.5]
//	      normal: [0, 0, 1]
//	  - input: bracket.glb
//	    output: bracket_cut.stl
//	    cap: seidel
//	    preview: bracket_cap.png
//	    plane:
//	      points: [[0, 0, 1], [1, 0, 1], [0, 1, 1.5]]
//
// Relative paths are resolved against the directory of the job file.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/osuushi/meshslice"
)

type Vec3 [3]float64

func (v Vec3) Vector() r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// PlaneSpec gives a plane either as a point and normal, or as three points.
type PlaneSpec struct {
	Point  *Vec3  `yaml:"point"`
	Normal *Vec3  `yaml:"normal"`
	Points []Vec3 `yaml:"points"`
}

func (p PlaneSpec) Plane() (meshslice.Plane, error) {
	switch {
	case len(p.Points) > 0:
		if p.Point != nil || p.Normal != nil {
			return meshslice.Plane{}, errors.New("plane has both points and point/normal")
		}
		if len(p.Points) != 3 {
			return meshslice.Plane{}, errors.Errorf("plane needs 3 points, got %d", len(p.Points))
		}
		return meshslice.PlaneFromPoints(p.Points[0].Vector(), p.Points[1].Vector(), p.Points[2].Vector())
	case p.Point != nil && p.Normal != nil:
		return meshslice.PlaneFromNormal(p.Point.Vector(), p.Normal.Vector())
	}
	return meshslice.Plane{}, errors.New("plane needs either points, or point and normal")
}

type Job struct {
	Name    string    `yaml:"name"`
	Input   string    `yaml:"input"`
	Output  string    `yaml:"output"`
	Preview string    `yaml:"preview"`
	Cap     string    `yaml:"cap"`
	Seed    int64     `yaml:"seed"`
	Plane   PlaneSpec `yaml:"plane"`
}

type File struct {
	Workers        int     `yaml:"workers"`
	Cap            string  `yaml:"cap"`
	MergeTolerance float64 `yaml:"merge_tolerance"`
	Jobs           []Job   `yaml:"jobs"`
}

// Load reads and validates a job file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	f.resolve(filepath.Dir(path))
	return f, nil
}

// Parse decodes and validates a job file. Unknown keys are errors, so typos
// don't silently fall back to defaults.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if len(f.Jobs) == 0 {
		return nil, errors.New("no jobs")
	}
	if f.Workers < 0 {
		return nil, errors.Errorf("negative worker count %d", f.Workers)
	}
	if _, err := ParseCapMethod(f.Cap); err != nil {
		return nil, err
	}
	for i := range f.Jobs {
		job := &f.Jobs[i]
		if job.Name == "" {
			job.Name = job.Input
		}
		if job.Input == "" || job.Output == "" {
			return nil, errors.Errorf("job %d: input and output are required", i)
		}
		if job.Cap == "" {
			job.Cap = f.Cap
		}
		if _, err := ParseCapMethod(job.Cap); err != nil {
			return nil, errors.Wrapf(err, "job %q", job.Name)
		}
		if _, err := job.Plane.Plane(); err != nil {
			return nil, errors.Wrapf(err, "job %q", job.Name)
		}
	}
	return &f, nil
}

func (f *File) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range f.Jobs {
		job := &f.Jobs[i]
		job.Input = abs(job.Input)
		job.Output = abs(job.Output)
		job.Preview = abs(job.Preview)
	}
}

// Options for the job's Cutter.
func (f *File) Options(job Job) meshslice.Options {
	method, _ := ParseCapMethod(job.Cap)
	return meshslice.Options{
		CapMethod:      method,
		MergeTolerance: f.MergeTolerance,
		SeidelSeed:     job.Seed,
	}
}

// ParseCapMethod accepts "delaunay", "seidel", or empty for the default.
func ParseCapMethod(name string) (meshslice.CapMethod, error) {
	switch name {
	case "", "delaunay", "cdt":
		return meshslice.CapDelaunay, nil
	case "seidel":
		return meshslice.CapSeidel, nil
	}
	return 0, errors.Errorf("unknown cap method %q", name)
}
