package types

// Artifact is the synthesized output record for one component: the stub
// source file written to disk plus the metadata that feeds the report.
type Artifact struct {
	ComponentType string            `json:"component_type"`
	Details       map[string]string `json:"details"`
	Finding       string            `json:"finding"`
	Guidance      string            `json:"guidance,omitempty"`
	ID            string            `json:"artifact_id"`
	Path          string            `json:"path,omitempty"`
}
