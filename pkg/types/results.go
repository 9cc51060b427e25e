package types

import "time"

// Status is the terminal state of an operation or module.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// TimestampFormat is used for every installed_at field in the status file.
const TimestampFormat = time.RFC3339

// OperationOutcome records how a single operation ended. Error is only set
// when Status is StatusFailed.
type OperationOutcome struct {
	Type   OperationType `json:"type"`
	Status Status        `json:"status"`
	Error  string        `json:"error,omitempty"`
}

// ModuleResult is the per-module entry persisted to the status file.
type ModuleResult struct {
	Module      string             `json:"module"`
	Status      Status             `json:"status"`
	Operations  []OperationOutcome `json:"operations"`
	InstalledAt string             `json:"installed_at"`
}

// InstallationStatus is the artifact written to the status file at the end
// of a run. It reflects only the modules selected in that run.
type InstallationStatus struct {
	InstalledAt string                  `json:"installed_at"`
	Modules     map[string]ModuleResult `json:"modules"`
}

// NewInstallationStatus builds the status document from the ordered results
// of a run.
func NewInstallationStatus(results []ModuleResult) InstallationStatus {
	status := InstallationStatus{
		InstalledAt: time.Now().Format(TimestampFormat),
		Modules:     make(map[string]ModuleResult, len(results)),
	}
	for _, r := range results {
		status.Modules[r.Module] = r
	}
	return status
}
