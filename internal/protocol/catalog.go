package protocol

// Disclaimer is surfaced to the patient when an assessment starts.
const Disclaimer = "IMPORTANT MEDICAL DISCLAIMER: This system is an automated symptom checker. It is NOT a substitute for professional medical advice, diagnosis, or treatment. If you believe you are having a medical emergency, call 911 immediately."

// Outcome templates reused across the protocol tables. Functions return
// copies so an authored rule can tweak a field without touching the template.

// CallEmergency is the highest-severity outcome.
func CallEmergency() ActionCard {
	return ActionCard{
		Title:  "Emergency - Act Now",
		Action: "Call 911 or your Care Team immediately.",
		Timing: "Immediately",
		Script: "Tell them you are an oncology patient and describe your symptom.",
		Level:  SeverityRed,
	}
}

// GoToER directs the patient to an emergency room.
func GoToER() ActionCard {
	return ActionCard{
		Title:  "Go to the Emergency Room",
		Action: "Go to the nearest emergency room now.",
		Timing: "Immediately",
		Script: "Tell them you are an oncology patient with uncontrolled bleeding.",
		Level:  SeverityRed,
	}
}

// NotifyCareTeam asks the patient to contact their care team today.
func NotifyCareTeam() ActionCard {
	return ActionCard{
		Title:  "Notify Your Care Team",
		Action: "Please notify your care team.",
		Timing: "Today",
		Script: "Describe your symptom, how long you have had it, and what you have tried.",
		Level:  SeverityYellow,
	}
}

// ContactProvider recommends contacting the provider without delay.
func ContactProvider() ActionCard {
	return ActionCard{
		Title:  "Contact Your Provider",
		Action: "Recommend contacting your provider immediately.",
		Timing: "Today",
		Script: "Describe your symptom and ask whether you should be seen.",
		Level:  SeverityYellow,
	}
}

// NextAppointment defers the conversation to the next scheduled visit.
func NextAppointment() ActionCard {
	return ActionCard{
		Title:  "Mention at Next Appointment",
		Action: "Let your care team know at your next appointment. If you feel unsafe, call 911.",
		Timing: "As needed",
		Script: "Mention when the symptom started and how it has changed.",
		Level:  SeverityYellow,
	}
}

// SafetyRisk flags a fall or safety concern for the provider.
func SafetyRisk() ActionCard {
	return ActionCard{
		Title:  "Safety Risk",
		Action: "Notify your provider about your fall risk before moving around unassisted.",
		Timing: "Today",
		Script: "Tell them you have felt unsteady or have fallen.",
		Level:  SeverityAmber,
	}
}

// MonitorAtHome is the default outcome when a module runs out of questions
// without any alert firing.
func MonitorAtHome() ActionCard {
	return ActionCard{
		Title:  "Monitor Symptoms",
		Action: "Home Care / Monitor",
		Timing: "As needed",
		Script: "Your symptoms appear stable. Keep an eye on them and start a new assessment if anything changes.",
		Level:  SeverityGreen,
	}
}
