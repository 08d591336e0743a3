package clients

import (
	"fmt"
	"os/exec"
)

// Requirement names one external binary the pipeline depends on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// DefaultRequirements lists the binaries a full pipeline run touches.
func DefaultRequirements(mfaBinary string) []Requirement {
	if mfaBinary == "" {
		mfaBinary = "mfa"
	}
	return []Requirement{
		{Name: "Montreal Forced Aligner", Command: mfaBinary, Description: "forced alignment engine"},
		{Name: "ffprobe", Command: "ffprobe", Description: "audio metadata probe", Optional: true},
	}
}

// CheckBinaries evaluates each requirement against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		if _, err := exec.LookPath(req.Command); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		} else {
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
