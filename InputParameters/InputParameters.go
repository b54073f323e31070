package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters3D struct {
	Title       string `yaml:"Title"`
	MeshN       int    `yaml:"MeshN"`       // cells per direction of the cube mesh
	MeshFile    string `yaml:"MeshFile"`    // polyhedral mesh file; overrides MeshN when set
	K           int    `yaml:"K"`           // degree of the face polynomials
	L           int    `yaml:"L"`           // degree of the cell polynomials, -1 allowed
	ChoiceBasis string `yaml:"ChoiceBasis"` // "Mon" or "ON"
	DOEOffset   int    `yaml:"DOEOffset"`   // added to the interpolation degree of exactness
}

func (ip *InputParameters3D) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

func (ip *InputParameters3D) Validate() error {
	if len(ip.MeshFile) == 0 && ip.MeshN < 1 {
		return fmt.Errorf("MeshN = %d, must be >= 1", ip.MeshN)
	}
	if ip.K < 0 {
		return fmt.Errorf("face degree K = %d, must be >= 0", ip.K)
	}
	if ip.L < -1 {
		return fmt.Errorf("cell degree L = %d, must be >= -1", ip.L)
	}
	if ip.ChoiceBasis != "Mon" && ip.ChoiceBasis != "ON" {
		return fmt.Errorf("ChoiceBasis = %q, must be \"Mon\" or \"ON\"", ip.ChoiceBasis)
	}
	return nil
}

func (ip *InputParameters3D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= MeshN\n", ip.MeshN)
	fmt.Printf("[%d]\t\t\t= Face Degree K\n", ip.K)
	fmt.Printf("[%d]\t\t\t= Cell Degree L\n", ip.L)
	fmt.Printf("[%s]\t\t\t= ChoiceBasis\n", ip.ChoiceBasis)
	fmt.Printf("[%d]\t\t\t= DOEOffset\n", ip.DOEOffset)
}
