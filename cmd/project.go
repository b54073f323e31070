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
	"math"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/polytopal/hho3d/HHO3D"
	"github.com/polytopal/hho3d/InputParameters"
	"github.com/polytopal/hho3d/geometry3D"
)

type ModelProject struct {
	ICFile      string
	Refinements int
	Profile     bool
}

// ProjectCmd represents the project command
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Interpolate a smooth function onto the hybrid space of a cube mesh and report errors",
	Long: `Builds a cube mesh, constructs the hybrid cell+face polynomial space at
the requested degrees, L2-projects a smooth test function onto it, and
reports DOF counts, norms and vertex-value errors across refinements.`,
	Run: func(cmd *cobra.Command, args []string) {
		mp := &ModelProject{}
		var err error
		if mp.ICFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		mp.Refinements, _ = cmd.Flags().GetInt("refinements")
		mp.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processInput(mp)
		RunProject(mp, ip)
	},
}

func processInput(mp *ModelProject) (ip *InputParameters.InputParameters3D) {
	ip = &InputParameters.InputParameters3D{
		Title:       "Default",
		MeshN:       2,
		K:           1,
		L:           1,
		ChoiceBasis: HHO3D.BasisMonomial,
	}
	if len(mp.ICFile) != 0 {
		data, err := os.ReadFile(mp.ICFile)
		if err != nil {
			panic(err)
		}
		if err = ip.Parse(data); err != nil {
			fmt.Printf("error parsing input parameters: %s\n", err.Error())
			exampleFile := `
########################################
Title: "Projection Study"
MeshN: 2
K: 1
L: 1
ChoiceBasis: ON # or Mon
DOEOffset: 0
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
	}
	return
}

func RunProject(mp *ModelProject, ip *InputParameters.InputParameters3D) {
	if mp.Profile {
		defer profile.Start().Stop()
	}
	ip.Print()

	f := func(x geometry3D.Vec) float64 {
		return math.Sin(math.Pi*x.X) * math.Sin(math.Pi*x.Y) * math.Sin(math.Pi*x.Z)
	}

	n := ip.MeshN
	refinements := mp.Refinements
	if len(ip.MeshFile) != 0 {
		// file meshes are not refined
		refinements = 0
	}
	for level := 0; level <= refinements; level++ {
		var mesh *geometry3D.Mesh
		if len(ip.MeshFile) != 0 {
			mesh = geometry3D.ReadPolyMesh(ip.MeshFile, true)
		} else {
			mesh = geometry3D.CubeMesh(n)
		}
		hc, err := HHO3D.NewHybridCore(mesh, ip.K, ip.L, ip.ChoiceBasis)
		if err != nil {
			fmt.Printf("error building hybrid space: %s\n", err.Error())
			os.Exit(1)
		}

		doe := 2*max(hc.K(), hc.Ldeg()) + 3 + ip.DOEOffset
		Xh, err := hc.Interpolate(f, doe)
		if err != nil {
			fmt.Printf("error interpolating: %s\n", err.Error())
			os.Exit(1)
		}

		// Max error of the reconstructed cell values at the mesh vertices
		vv := hc.VertexValues(Xh, "cell")
		var maxErr float64
		for iV := 0; iV < mesh.NVertices(); iV++ {
			if e := math.Abs(vv.AtVec(iV) - f(mesh.Vertex(iV).Pos)); e > maxErr {
				maxErr = e
			}
		}

		M := hc.GlobalMassMatrix()
		fmt.Printf("n=%3d cells=%6d dofs=%8d (cell %d, face %d) nnz(M)=%9d\n",
			n, mesh.NCells(), hc.NtotalDofs(), hc.NtotalCellDofs(), hc.NtotalFaceDofs(), M.NNZ())
		fmt.Printf("      ||uh||_L2=%10.7f |uh|_H1=%10.7f Linf(face)=%10.7f vertex err=%.3e\n",
			hc.L2Norm(Xh), hc.H1Norm(Xh), hc.LinfFace(Xh), maxErr)
		n *= 2
	}
}

func init() {
	rootCmd.AddCommand(ProjectCmd)
	ProjectCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file of run parameters (MeshN, K, L, ChoiceBasis)")
	ProjectCmd.Flags().IntP("refinements", "r", 0, "number of mesh refinements past the base mesh")
	ProjectCmd.Flags().BoolP("profile", "p", false, "write a CPU profile for the run")
}
