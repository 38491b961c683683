// Command meshslice cuts triangle meshes with a plane and caps both halves.
//
//	meshslice slice part.stl part_cut.glb --point 0,0,0.5 --normal 0,0,1
//	meshslice batch jobs.yaml
//	meshslice triangulate --preview out.png < rings.txt
package main

import (
	"os"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("meshslice", "Cut triangle meshes with a plane.")

	sliceCmd      = app.Command("slice", "Cut one mesh.")
	sliceInput    = sliceCmd.Arg("input", "Input mesh (.stl, .glb or .gltf).").Required().ExistingFile()
	sliceOutput   = sliceCmd.Arg("output", "Output mesh (.stl or .glb).").Required().String()
	slicePoint    = sliceCmd.Flag("point", "A point on the plane, as x,y,z.").Default("0,0,0").String()
	sliceNormal   = sliceCmd.Flag("normal", "Plane normal, as x,y,z.").Default("0,0,1").String()
	sliceCap      = sliceCmd.Flag("cap", "Cap triangulator.").Default("delaunay").Enum("delaunay", "seidel")
	sliceSeed     = sliceCmd.Flag("seed", "Segment shuffle seed for the seidel cap.").Int64()
	sliceTol      = sliceCmd.Flag("merge-tolerance", "Merge distance for cut vertices.").Float64()
	sliceSeparate = sliceCmd.Flag("separate", "Write each half to its own file.").Bool()
	slicePreview  = sliceCmd.Flag("preview", "Write the cap to this PNG.").String()
	sliceCat      = sliceCmd.Flag("cat", "Show the preview in the terminal.").Bool()

	batchCmd     = app.Command("batch", "Run the cut jobs of a YAML file.")
	batchConfig  = batchCmd.Arg("config", "Job file.").Required().ExistingFile()
	batchWorkers = batchCmd.Flag("workers", "Concurrent jobs. Overrides the job file.").Int()

	triCmd     = app.Command("triangulate", "Triangulate polygon rings read from stdin.")
	triCap     = triCmd.Flag("method", "Triangulator.").Default("seidel").Enum("delaunay", "seidel")
	triPreview = triCmd.Flag("preview", "Write the triangulation to this PNG.").String()
	triCat     = triCmd.Flag("cat", "Show the preview in the terminal.").Bool()
)

func main() {
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case sliceCmd.FullCommand():
		runSlice()
	case batchCmd.FullCommand():
		runBatch()
	case triCmd.FullCommand():
		runTriangulate()
	}
}
