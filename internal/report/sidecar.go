package report

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/strip-engine/pkg/types"
)

// SidecarPath returns the YAML sidecar path for a stripped output file
// ("paper.pdf" -> "paper.strip.yaml").
func SidecarPath(outputPath string) string {
	base := strings.TrimSuffix(outputPath, ".pdf")
	return base + ".strip.yaml"
}

// WriteSidecar writes the result record next to the output document.
func WriteSidecar(result types.StripResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(SidecarPath(result.Output), data, 0o644)
}

// ReadSidecar loads a result record written by WriteSidecar.
func ReadSidecar(path string) (types.StripResult, error) {
	var result types.StripResult
	data, err := os.ReadFile(path)
	if err != nil {
		return result, err
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("parsing sidecar: %w", err)
	}
	return result, nil
}
