package maintenance

import "strings"

// UnplannedReason es la causa de una inspección no planificada.
type UnplannedReason string

const (
	ReasonEquipmentFailure  UnplannedReason = "equipment_failure"
	ReasonSafetyConcern     UnplannedReason = "safety_concern"
	ReasonRegulatoryRequest UnplannedReason = "regulatory_request"
	ReasonOperatorRequest   UnplannedReason = "operator_request"
	ReasonOther             UnplannedReason = "other"
)

var UnplannedReasons = []UnplannedReason{
	ReasonEquipmentFailure, ReasonSafetyConcern, ReasonRegulatoryRequest, ReasonOperatorRequest, ReasonOther,
}

func ParseUnplannedReason(s string) (UnplannedReason, bool) {
	r := UnplannedReason(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range UnplannedReasons {
		if r == known {
			return r, true
		}
	}
	return "", false
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)
