package models

// RequestState tracks the upload lifecycle. At most one request is InFlight.
type RequestState int

const (
	Idle RequestState = iota
	InFlight
	Succeeded
	Failed
)

func (s RequestState) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in_flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// HealthStatus is the upscaling service's health-check payload
type HealthStatus struct {
	Status string `json:"status" yaml:"status"`
	CORS   string `json:"cors,omitempty" yaml:"cors,omitempty"`
}
