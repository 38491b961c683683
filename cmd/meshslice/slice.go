package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"

	"github.com/osuushi/meshslice"
	"github.com/osuushi/meshslice/internal/config"
	"github.com/osuushi/meshslice/internal/meshio"
	"github.com/osuushi/meshslice/internal/preview"
)

const previewSize = 800

type job struct {
	Name     string
	Input    string
	Output   string
	Preview  string
	Plane    meshslice.Plane
	Separate bool
}

func runSlice() {
	point, err := parseVector(*slicePoint)
	essentials.Must(err)
	normal, err := parseVector(*sliceNormal)
	essentials.Must(err)
	plane, err := meshslice.PlaneFromNormal(point, normal)
	essentials.Must(err)
	method, err := config.ParseCapMethod(*sliceCap)
	essentials.Must(err)

	cutter := meshslice.NewCutter(meshslice.Options{
		CapMethod:      method,
		MergeTolerance: *sliceTol,
		SeidelSeed:     *sliceSeed,
	})
	j := job{
		Name:     filepath.Base(*sliceInput),
		Input:    *sliceInput,
		Output:   *sliceOutput,
		Preview:  *slicePreview,
		Plane:    plane,
		Separate: *sliceSeparate,
	}
	essentials.Must(j.run(cutter))
	if *sliceCat && j.Preview != "" {
		essentials.Must(preview.Cat(j.Preview, os.Stdout))
	}
}

func runBatch() {
	file, err := config.Load(*batchConfig)
	essentials.Must(err)
	workers := file.Workers
	if *batchWorkers > 0 {
		workers = *batchWorkers
	}

	errs := make([]error, len(file.Jobs))
	essentials.StatefulConcurrentMap(workers, len(file.Jobs), func() func(i int) {
		// Cutters keep scratch state, so each worker owns its own.
		cutters := map[meshslice.Options]*meshslice.Cutter{}
		return func(i int) {
			spec := file.Jobs[i]
			opts := file.Options(spec)
			cutter, ok := cutters[opts]
			if !ok {
				cutter = meshslice.NewCutter(opts)
				cutters[opts] = cutter
			}
			plane, err := spec.Plane.Plane()
			if err != nil {
				errs[i] = err
				return
			}
			j := job{
				Name:    spec.Name,
				Input:   spec.Input,
				Output:  spec.Output,
				Preview: spec.Preview,
				Plane:   plane,
			}
			errs[i] = j.run(cutter)
		}
	})

	failed := 0
	for i, err := range errs {
		if err != nil {
			log.Printf("%s: %v", file.Jobs[i].Name, err)
			failed++
		}
	}
	if failed > 0 {
		essentials.Die(failed, "of", len(errs), "jobs failed")
	}
}

func (j *job) run(cutter *meshslice.Cutter) error {
	mesh, err := meshio.Load(j.Input)
	if err != nil {
		return err
	}
	result, err := cutter.Cut(mesh.Vertices, mesh.Triangles, j.Plane)
	if err != nil {
		return errors.Wrapf(err, "cut %s", j.Name)
	}
	if !result.Cut {
		log.Printf("%s: plane misses the mesh", j.Name)
	} else {
		log.Printf("%s: %d loops, cap area %g, volumes %g / %g",
			j.Name, len(result.Loops), result.Bottom.CapArea(),
			result.Bottom.Volume(), result.Top.Volume())
	}
	if len(result.OpenChains) > 0 {
		log.Printf("%s: %d cut chains did not close and were left uncapped", j.Name, len(result.OpenChains))
	}

	top := meshio.Named{Name: "top", Mesh: fragmentMesh(&result.Top)}
	bottom := meshio.Named{Name: "bottom", Mesh: fragmentMesh(&result.Bottom)}
	if j.Separate {
		ext := filepath.Ext(j.Output)
		base := strings.TrimSuffix(j.Output, ext)
		if err := meshio.Save(base+"_top"+ext, top); err != nil {
			return err
		}
		if err := meshio.Save(base+"_bottom"+ext, bottom); err != nil {
			return err
		}
	} else if err := meshio.Save(j.Output, top, bottom); err != nil {
		return err
	}

	if j.Preview != "" && result.Cut {
		section := capPreview(result, j.Plane)
		if err := section.SavePNG(j.Preview, previewSize); err != nil {
			return err
		}
	}
	return nil
}

func fragmentMesh(f *meshslice.Fragment) *meshio.Mesh {
	m := &meshio.Mesh{Vertices: f.Vertices}
	for _, tri := range f.Triangles {
		m.Triangles = append(m.Triangles, tri[:]...)
	}
	return m
}

// Project the bottom fragment's cap onto the plane. Bottom cap triangles
// wind counterclockwise around the normal, so they stay counterclockwise in
// plane coordinates.
func capPreview(result *meshslice.CutResult, plane meshslice.Plane) *preview.Cap {
	f := &result.Bottom
	section := &preview.Cap{}
	index := map[uint32]int{}
	point := func(v uint32) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(section.Points)
		index[v] = i
		section.Points = append(section.Points, plane.Project(f.Vertices[v]))
		return i
	}
	for _, tri := range f.Triangles[f.CapStart:] {
		section.Triangles = append(section.Triangles, [3]int{point(tri[0]), point(tri[1]), point(tri[2])})
	}

	byRef := map[meshslice.Ref]uint32{}
	for i, ref := range f.Refs {
		byRef[ref] = uint32(i)
	}
	for _, loop := range result.Loops {
		var ring []int
		for _, ref := range loop {
			if v, ok := byRef[ref]; ok {
				ring = append(ring, point(v))
			}
		}
		section.Loops = append(section.Loops, ring)
	}
	return section
}

func parseVector(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("expected x,y,z but got %q", s)
	}
	var c [3]float64
	for i, part := range parts {
		var err error
		c[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "parse %q", s)
		}
	}
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}, nil
}
