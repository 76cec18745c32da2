package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Workload describes one driver invocation: which program to instantiate,
// where its fact files live, and what the caller expects of its relations.
type Workload struct {
	Program   string             `yaml:"program" json:"program"`
	FactDir   string             `yaml:"fact_dir" json:"fact_dir"`
	OutputDir string             `yaml:"output_dir" json:"output_dir"`
	Jobs      int                `yaml:"jobs" json:"jobs"`
	Stratum   int                `yaml:"stratum" json:"stratum"`
	Relations []ExpectedRelation `yaml:"relations" json:"relations,omitempty"`
}

// ExpectedRelation pins the signature a workload expects a relation to
// carry. Validation fails when the program disagrees.
type ExpectedRelation struct {
	Name      string `yaml:"name" json:"name"`
	Signature string `yaml:"signature" json:"signature"`
}

//go:embed workload_schema.cue
var workloadSchema string

// LoadWorkload reads a YAML workload file, checks it against the embedded
// CUE schema, and decodes it with defaults applied: current directory for
// both fact and output directories, one job, all strata.
func LoadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse workload: %w", err)
	}
	if err := validateWorkloadSchema(raw); err != nil {
		return nil, fmt.Errorf("workload %s: %w", path, err)
	}

	w := Workload{FactDir: ".", OutputDir: ".", Jobs: 1, Stratum: -1}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode workload: %w", err)
	}
	return &w, nil
}

// validateWorkloadSchema unifies the decoded document with the CUE schema
// and reports any conflict (wrong types, out-of-range jobs, missing
// program name).
func validateWorkloadSchema(raw map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(workloadSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal workload schema: %w", err)
	}
	unified := schema.Unify(ctx.Encode(raw))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
