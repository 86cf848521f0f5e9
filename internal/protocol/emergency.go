package protocol

// EmergencyFlag is one of the closed set of critical-symptom signals the
// patient is asked to affirm before any module starts.
type EmergencyFlag string

const (
	FlagTroubleBreathing     EmergencyFlag = "URG-101"
	FlagChestPain            EmergencyFlag = "URG-102"
	FlagUncontrolledBleeding EmergencyFlag = "URG-103"
	FlagSyncope              EmergencyFlag = "URG-107"
	FlagAlteredMentalStatus  EmergencyFlag = "URG-108"
)

// EmergencyCheck pairs a flag with its patient-facing label.
type EmergencyCheck struct {
	Flag  EmergencyFlag `json:"flag"`
	Label string        `json:"label"`
}

// EmergencyChecks lists the pre-assessment screen items in display order.
func EmergencyChecks() []EmergencyCheck {
	return []EmergencyCheck{
		{FlagTroubleBreathing, "Trouble breathing or shortness of breath"},
		{FlagChestPain, "Chest pain"},
		{FlagUncontrolledBleeding, "Uncontrolled bleeding"},
		{FlagSyncope, "Fainting or syncope"},
		{FlagAlteredMentalStatus, "Confusion or altered mental status"},
	}
}

var knownFlags = func() map[EmergencyFlag]bool {
	m := make(map[EmergencyFlag]bool)
	for _, c := range EmergencyChecks() {
		m[c.Flag] = true
	}
	return m
}()

// CheckEmergency is the global emergency filter. It is a pure function of the
// affirmed flag set: any recognized flag short-circuits to the RED outcome
// and no module is ever entered. Unrecognized values are ignored.
func CheckEmergency(affirmed []EmergencyFlag) (ActionCard, bool) {
	for _, f := range affirmed {
		if knownFlags[f] {
			return CallEmergency(), true
		}
	}
	return ActionCard{}, false
}
