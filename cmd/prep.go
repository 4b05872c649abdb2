/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gwflow/aquifem/config"
	"github.com/gwflow/aquifem/fem"
	"github.com/gwflow/aquifem/geometry"
	"github.com/gwflow/aquifem/mesh"
	"github.com/gwflow/aquifem/streamvis"
)

type ModelPrep struct {
	AquiferFile string
	Graph       bool
	Profile     bool
}

// PrepCmd represents the prep command
var PrepCmd = &cobra.Command{
	Use:   "prep",
	Short: "Build, partition and extract the aquifer mesh for the flow solver",
	Long: `
Builds the layered aquifer mesh from the aquifer properties file, partitions
it across workers and extracts the deduplicated geometric degrees of freedom,

aquifem prep -A aquifer.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		mp := &ModelPrep{}
		var err error
		if mp.AquiferFile, err = cmd.Flags().GetString("aquiferFile"); err != nil {
			panic(err)
		}
		mp.Graph, _ = cmd.Flags().GetBool("graph")
		mp.Profile, _ = cmd.Flags().GetBool("profile")
		ap := processAquiferInput(mp)
		RunPrep(mp, ap)
	},
}

func init() {
	rootCmd.AddCommand(PrepCmd)
	PrepCmd.Flags().StringP("aquiferFile", "A", "", "YAML file with the aquifer geometry properties")
	PrepCmd.Flags().BoolP("graph", "g", false, "display the partitioned mesh wireframe while preprocessing")
	PrepCmd.Flags().Bool("profile", false, "write a CPU profile of the preprocessing run")
}

func processAquiferInput(mp *ModelPrep) (ap *config.AquiferProperties) {
	if len(mp.AquiferFile) == 0 {
		err := fmt.Errorf("must supply an aquifer properties file (-A, --aquiferFile)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Aquifer"
Dim: 3
GeomType: BOX # Can be "FILE"
LeftLowerPoint: [0., 0.]
Length: [5000., 3000.]
Nxyz: [50, 30]
VertDiscr: [0., 0.2, 0.5, 1.]
TopElevation: 30.
BottomElevation: -270.
NumPartitions: 4
RechargeRate: 0.00037
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	var err error
	if data, err = ioutil.ReadFile(mp.AquiferFile); err != nil {
		panic(err)
	}
	ap = &config.AquiferProperties{}
	if err = ap.Parse(data); err != nil {
		panic(err)
	}
	if err = ap.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func RunPrep(mp *ModelPrep, ap *config.AquiferProperties) {
	if mp.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ap.Print()

	m := buildAquiferMesh(ap)
	m.PrintStatistics()

	nparts := ap.NumPartitions
	if nparts < 1 {
		nparts = 1
	}
	if nparts > 1 {
		partitioner := mesh.NewMeshPartitioner(m, mesh.DefaultPartitionConfig(int32(nparts)))
		if err := partitioner.Partition(); err != nil {
			log.Printf("METIS unavailable (%v), falling back to contiguous partitioning", err)
			m.PartitionContiguous(nparts)
		}
	} else {
		m.PartitionContiguous(1)
	}

	reportRecharge(m, ap)

	fe := &fem.MeshFE{Dim: ap.Dim}
	dh := fem.NewDoFHandler(m, fe)
	var lines []streamvis.Streamline
	for part := 0; part < nparts; part++ {
		nodes := fem.ExtractMeshNodes(part, dh)
		log.Printf("Partition %d: %d cells, %d deformation nodes",
			part, len(nodes.Cells), len(nodes.Points))
		lines = append(lines, traceColumn(m, part, ap.Dim))
	}

	if mp.Graph {
		streamvis.Plot(lines, 1920, 1920)
		select {} // hold the window open
	}
}

func buildAquiferMesh(ap *config.AquiferProperties) (m *mesh.Mesh) {
	var err error
	switch ap.GeomType {
	case "FILE":
		var footprint *mesh.Mesh
		if footprint, err = mesh.Read2DFootprint(ap.InputMeshFile); err != nil {
			panic(err)
		}
		if m, err = mesh.ExtrudeMesh(footprint, ap.NLayers()); err != nil {
			panic(err)
		}
	default: // BOX
		// Decks carry the horizontal entries; vertical entries, when present,
		// are dummies replaced by the vertical discretization and elevations
		var leftLower, length geometry.Point
		for d := 0; d < ap.Dim && d < len(ap.LeftLowerPoint); d++ {
			leftLower[d] = ap.LeftLowerPoint[d]
		}
		for d := 0; d < ap.Dim && d < len(ap.Length); d++ {
			length[d] = ap.Length[d]
		}
		nCells := make([]int, ap.Dim)
		copy(nCells, ap.Nxyz)
		nCells[ap.Dim-1] = ap.NLayers()
		if m, err = mesh.BuildBoxMesh(ap.Dim, leftLower, length, nCells); err != nil {
			panic(err)
		}
	}

	tgx, tgy := ap.TopSlopes()
	bgx, bgy := ap.BottomSlopes()
	if err = m.ApplyElevations(ap.VertDiscr,
		mesh.SlopedElevation(ap.TopElevation, tgx, tgy),
		mesh.SlopedElevation(ap.BottomElevation, bgx, bgy)); err != nil {
		panic(err)
	}
	return
}

// reportRecharge sums the recharge captured by the top boundary faces,
// weighting the per-horizontal-area rate by each face's slope factor
func reportRecharge(m *mesh.Mesh, ap *config.AquiferProperties) {
	var (
		topFace       = mesh.TopFaceID(ap.Dim)
		totalWeighted float64
		nFaces        int
	)
	for elem := 0; elem < m.NumElements; elem++ {
		if m.BoundaryIDs[elem][topFace] != topFace {
			continue
		}
		verts := m.FaceVertices(elem, topFace)
		weight := geometry.RechargeWeight(verts, ap.Dim)
		totalWeighted += weight * ap.RechargeRate * faceArea(verts, ap.Dim)
		nFaces++
	}
	log.Printf("Recharge applied on %d top faces, weighted total flux %g", nFaces, totalWeighted)
}

func faceArea(verts []geometry.Point, dim int) (area float64) {
	if dim == 2 {
		return verts[0].Distance(verts[1])
	}
	area = geometry.TriangleArea(verts[0], verts[1], verts[3], false) +
		geometry.TriangleArea(verts[0], verts[3], verts[2], false)
	return
}

// traceColumn follows the vertical cell stack above the partition's first
// owned cell and records it as a streamline of located cell centers with
// tagged wireframe boxes. Exercises the locator against every crossed cell.
func traceColumn(m *mesh.Mesh, part, dim int) (sl streamvis.Streamline) {
	var (
		mapper  = fem.MappingQ1{Dim: dim}
		rng     = rand.New(rand.NewSource(int64(part) + 1))
		locator = fem.NewPointLocator(mapper, rng)
		topFace = mesh.TopFaceID(dim)
		elem    = -1
	)
	for e := 0; e < m.NumElements; e++ {
		if m.LocallyOwned(e, part) {
			elem = e
			break
		}
	}
	var center geometry.Point
	for ; elem >= 0; elem = m.EToE[elem][topFace] {
		var unit geometry.Point
		for d := 0; d < dim; d++ {
			unit[d] = 0.5
		}
		center = mapper.TransformUnitToReal(m, elem, unit)
		if _, ok := locator.Locate(center, m, elem); !ok {
			log.Printf("point location failed for cell %d center", elem)
			continue
		}
		sl.Points = append(sl.Points, center)
		tag := streamvis.TagNeutral
		if !m.LocallyOwned(elem, part) {
			tag = streamvis.TagTypeB // crossed into a neighbor's cells
		}
		if dim == 3 {
			sl.Boxes = append(sl.Boxes, streamvis.BoxFromCell(m.CellVertices(elem), tag))
		}
	}
	return
}
