package protocol

// The ONCOLIFE clinical protocol, expressed as data. Compound alert
// conditions from the clinical source ("severe despite medication",
// "moderate for 3 or more days and not improving") are collapsed into
// explicit option strings, so each answer maps to exactly one transition.

// Module identifiers.
const (
	ModGeneric      = "GENERIC"
	ModBleeding     = "URG-103"
	ModHeadache     = "URG-109"
	ModAbdominal    = "URG-110"
	ModLegPain      = "URG-111"
	ModJointPain    = "URG-112"
	ModGeneralAches = "URG-113"
	ModPortPain     = "URG-114"
	ModDehydration  = "DEH-201"
	ModFever        = "FEV-202"
	ModNausea       = "NAU-203"
	ModVomiting     = "VOM-204"
	ModDiarrhea     = "DIA-205"
	ModFatigue      = "FAT-206"
	ModEye          = "EYE-207"
	ModMouthSores   = "MSO-208"
	ModNoAppetite   = "APP-209"
	ModConstipation = "CON-210"
	ModUrinary      = "URI-211"
	ModSkinRash     = "SKI-212"
	ModPainRouter   = "PAI-213"
	ModSwelling     = "SWE-214"
	ModCough        = "COU-215"
	ModNeuropathy   = "NEU-216"
)

func yesNo(yes, no Transition) Question {
	return Question{
		Options: []string{"Yes", "No"},
		Logic:   map[string]Transition{"Yes": yes, "No": no},
	}
}

func withPrompt(id, text string, q Question) Question {
	q.ID = id
	q.Text = text
	return q
}

// yn builds the common yes/no screening question in one line.
func yn(id, text string, yes Transition) Question {
	return withPrompt(id, text, yesNo(yes, Next()))
}

// rating builds a Mild/Moderate/Severe question where Severe (and optionally
// the compound moderate-and-worsening option) triggers an alert.
func rating(id, text string, severe Transition, compound bool) Question {
	opts := []string{"Mild", "Moderate", "Severe"}
	logic := map[string]Transition{"Mild": Next(), "Moderate": Next(), "Severe": severe}
	if compound {
		const c = "Moderate for 3 or more days and not improving"
		opts = append(opts, c)
		logic[c] = severe
	}
	return Question{ID: id, Text: text, Options: opts, Logic: logic}
}

func choice(id, text string, logic map[string]Transition, order ...string) Question {
	return Question{ID: id, Text: text, Options: order, Logic: logic}
}

// Modules returns the full protocol set served by the registry.
func Modules() []Module {
	return []Module{
		{
			ID: ModGeneric, Name: "General Symptom Check",
			Questions: []Question{
				yn("GEN-1", "Are your symptoms severe right now?", Show(NotifyCareTeam())),
				choice("GEN-2", "How long have you had this symptom?", map[string]Transition{
					"Less than a day":  Next(),
					"1-3 days":         Next(),
					"More than 3 days": Show(NotifyCareTeam()),
				}, "Less than a day", "1-3 days", "More than 3 days"),
				yn("GEN-3", "Is the symptom getting worse?", Show(ContactProvider())),
				yn("GEN-4", "Does it interfere with your daily activities?", Show(NotifyCareTeam())),
			},
		},
		{
			ID: ModBleeding, Name: "Bleeding or Bruising",
			Questions: []Question{
				yn("BLD-1", "Are you bleeding and the bleeding won't stop with pressure?", Show(CallEmergency())),
				yn("BLD-2", "Do you have a significant amount of blood in your stool or urine?", Show(GoToER())),
				withPrompt("BLD-3", "Did you injure yourself?", yesNo(Next(), Next())),
				withPrompt("BLD-4", "Are you on blood thinners?", yesNo(Next(), Next())),
				choice("BLD-5", "Is the bruising in one area or all over?", map[string]Transition{
					"One area": Next(),
					"All over": Show(NotifyCareTeam()),
				}, "One area", "All over"),
			},
		},
		{
			ID: ModHeadache, Name: "Headache",
			Questions: []Question{
				yn("HEA-1", "Is this the worst headache you have ever had?", Show(CallEmergency())),
				yn("HEA-2", "Any vision changes, trouble speaking, droopy face, weakness, balance issues, or confusion?", Show(CallEmergency())),
				rating("HEA-3", "Rate your headache.", Show(NotifyCareTeam()), false),
			},
		},
		{
			ID: ModAbdominal, Name: "Abdominal Pain",
			Questions: []Question{
				yn("ABD-1", "Is the pain strong or getting worse?", Show(CallEmergency())),
				yn("ABD-2", "Do you have a fever?", Show(CallEmergency())),
				yn("ABD-3", "Is your belly swollen or hard?", Show(CallEmergency())),
				yn("ABD-4", "Are you vomiting repeatedly?", Show(CallEmergency())),
				yn("ABD-5", "Are you unable to pass gas or stool?", Show(CallEmergency())),
			},
		},
		{
			ID: ModLegPain, Name: "Leg or Calf Pain",
			Questions: []Question{
				yn("LEG-1", "Is your leg swollen, red, or warm to the touch?", Show(bloodClotCard())),
				yn("LEG-2", "Is the pain worse when walking or when pressing on your calf?", Show(bloodClotCard())),
			},
		},
		{
			ID: ModJointPain, Name: "Joint or Muscle Pain",
			Questions: []Question{
				yn("JNT-1", "Is it hard to move or sleep because of the pain?", Show(NextAppointment())),
				withPrompt("JNT-2", "Is the pain controlled with your medications?", yesNo(Next(), Show(NextAppointment()))),
			},
		},
		{
			ID: ModGeneralAches, Name: "General Aches",
			Questions: []Question{
				withPrompt("ACH-1", "Do the aches get better with rest?", yesNo(Next(), Next())),
				yn("ACH-2", "Have the aches affected your ability to bathe or feed yourself?", Show(NextAppointment())),
			},
		},
		{
			ID: ModPortPain, Name: "Port Site Pain",
			Questions: []Question{
				yn("PRT-1", "Is the area around your port red or draining?", Show(CallEmergency())),
				yn("PRT-2", "Do you have chills or a temperature over 100.3F?", Show(CallEmergency())),
			},
		},
		{
			ID: ModDehydration, Name: "Dehydration",
			Questions: []Question{
				choice("DEH-1", "What color is your urine?", map[string]Transition{
					"Clear":  Next(),
					"Yellow": Next(),
					"Dark":   Show(ContactProvider()),
				}, "Clear", "Yellow", "Dark"),
				yn("DEH-2", "Is the amount of urine a lot less over the last 12 hours?", Show(ContactProvider())),
				yn("DEH-3", "Are you very thirsty?", Show(ContactProvider())),
				yn("DEH-4", "Are you lightheaded?", Show(ContactProvider())),
				choice("DEH-5", "Is your heart rate over 100 or systolic blood pressure under 100?", map[string]Transition{
					"Yes":     Show(ContactProvider()),
					"No":      Next(),
					"Unknown": Next(),
				}, "Yes", "No", "Unknown"),
				withPrompt("DEH-6", "Are you vomiting?", yesNo(JumpTo(ModVomiting), Next())),
				withPrompt("DEH-7", "Do you have diarrhea?", yesNo(JumpTo(ModDiarrhea), Next())),
			},
		},
		{
			ID: ModFever, Name: "Fever",
			Questions: []Question{
				choice("FEV-1", "What is your temperature?", map[string]Transition{
					"Under 100.4F": Next(),
					"Over 100.4F":  Show(NotifyCareTeam()),
				}, "Under 100.4F", "Over 100.4F"),
				choice("FEV-2", "What have you taken to lower your temperature?", map[string]Transition{
					"Tylenol": Next(),
					"Advil":   Next(),
					"None":    Next(),
				}, "Tylenol", "Advil", "None"),
				choice("FEV-3", "How many days have you had a fever?", map[string]Transition{
					"1 day":            Next(),
					"2-3 days":         Next(),
					"More than 3 days": Show(NotifyCareTeam()),
				}, "1 day", "2-3 days", "More than 3 days"),
				yn("FEV-4", "Any trouble breathing?", Show(CallEmergency())),
				choice("FEV-5", "Have you been able to eat and drink normally?", map[string]Transition{
					"Normal":                 Next(),
					"Reduced appetite":       Next(),
					"Difficulty keeping down": Next(),
					"No intake for 24 hours": Show(ContactProvider()),
				}, "Normal", "Reduced appetite", "Difficulty keeping down", "No intake for 24 hours"),
				withPrompt("FEV-6", "Are you able to perform daily self care like bathing and eating?", yesNo(Next(), Show(NotifyCareTeam()))),
			},
		},
		{
			ID: ModNausea, Name: "Nausea",
			Questions: []Question{
				choice("NAU-1", "How many days have you been nauseated?", map[string]Transition{
					"Less than a day":  Next(),
					"Last 24 hours":    Next(),
					"2-3 days":         Next(),
					"More than 3 days": Next(),
				}, "Less than a day", "Last 24 hours", "2-3 days", "More than 3 days"),
				choice("NAU-2", "Have you been able to eat and drink without difficulty in the last 24 hours?", map[string]Transition{
					"Normal":                 Next(),
					"Reduced appetite":       Next(),
					"Difficulty keeping down": Next(),
					"Barely anything":        Show(NotifyCareTeam()),
					"No intake in 24 hours":  Show(NotifyCareTeam()),
				}, "Normal", "Reduced appetite", "Difficulty keeping down", "Barely anything", "No intake in 24 hours"),
				choice("NAU-3", "What anti-nausea medications are you taking?", map[string]Transition{
					"Zofran":    Next(),
					"Compazine": Next(),
					"None":      Next(),
				}, "Zofran", "Compazine", "None"),
				rating("NAU-4", "Rate your nausea after taking medication.", Show(NotifyCareTeam()), true),
				withPrompt("NAU-5", "Have you vomited?", yesNo(JumpTo(ModVomiting), Next())),
				withPrompt("NAU-6", "Any signs of dehydration, such as very dark urine or constant thirst?", yesNo(JumpTo(ModDehydration), Next())),
				withPrompt("NAU-7", "Are you able to perform daily self care?", yesNo(Next(), Show(NotifyCareTeam()))),
			},
		},
		{
			ID: ModVomiting, Name: "Vomiting",
			Questions: []Question{
				choice("VOM-1", "How many days have you been vomiting?", map[string]Transition{
					"Less than a day":  Next(),
					"1-2 days":         Next(),
					"More than 2 days": Next(),
				}, "Less than a day", "1-2 days", "More than 2 days"),
				choice("VOM-2", "How many times have you vomited in the last 24 hours?", map[string]Transition{
					"1-5":       Next(),
					"6 or more": Show(NotifyCareTeam()),
				}, "1-5", "6 or more"),
				choice("VOM-3", "How is your oral intake over the last 12 hours?", map[string]Transition{
					"Reduced but I can eat and drink": Next(),
					"Difficulty keeping food down":    Next(),
					"Barely anything":                 Next(),
					"No intake for 12 hours":          Show(NotifyCareTeam()),
				}, "Reduced but I can eat and drink", "Difficulty keeping food down", "Barely anything", "No intake for 12 hours"),
				rating("VOM-4", "Rate your vomiting after taking medication.", Show(NotifyCareTeam()), true),
				withPrompt("VOM-5", "Do you have abdominal pain or cramping?", yesNo(JumpTo(ModAbdominal), Next())),
				withPrompt("VOM-6", "Do you also have diarrhea?", yesNo(JumpTo(ModDiarrhea), Next())),
			},
		},
		{
			ID: ModDiarrhea, Name: "Diarrhea",
			Questions: []Question{
				choice("DIA-1", "How many days have you had diarrhea?", map[string]Transition{
					"1 day":            Next(),
					"2-3 days":         Next(),
					"More than 3 days": Show(NotifyCareTeam()),
				}, "1 day", "2-3 days", "More than 3 days"),
				choice("DIA-2", "How many loose stools in the last 24 hours?", map[string]Transition{
					"1-5":         Next(),
					"More than 5": Show(NotifyCareTeam()),
				}, "1-5", "More than 5"),
				choice("DIA-3", "Do you see any of these in your stool?", map[string]Transition{
					"Black color": Show(NotifyCareTeam()),
					"Blood":       Show(NotifyCareTeam()),
					"Mucus":       Show(NotifyCareTeam()),
					"None":        Next(),
				}, "Black color", "Blood", "Mucus", "None"),
				choice("DIA-4", "Rate your abdominal cramping.", map[string]Transition{
					"None":     Next(),
					"Mild":     Next(),
					"Moderate": Show(NotifyCareTeam()),
					"Severe":   Show(NotifyCareTeam()),
				}, "None", "Mild", "Moderate", "Severe"),
				withPrompt("DIA-5", "Any signs of dehydration, such as dark urine or constant thirst?", yesNo(JumpTo(ModDehydration), Next())),
				withPrompt("DIA-6", "Do you also have nausea or vomiting?", yesNo(JumpTo(ModNausea), Next())),
			},
		},
		{
			ID: ModFatigue, Name: "Fatigue",
			Questions: []Question{
				yn("FAT-1", "Does your fatigue interfere with performing daily tasks?", Show(ContactProvider())),
				rating("FAT-2", "Rate your fatigue.", Show(ContactProvider()), true),
				choice("FAT-3", "How many hours are you sleeping during the day?", map[string]Transition{
					"Less than 2 hours": Next(),
					"2-4 hours":         Next(),
					"More than 4 hours": Next(),
				}, "Less than 2 hours", "2-4 hours", "More than 4 hours"),
				withPrompt("FAT-4", "Do you also have a fever?", yesNo(JumpTo(ModFever), Next())),
				withPrompt("FAT-5", "Have you lost your appetite?", yesNo(JumpTo(ModNoAppetite), Next())),
			},
		},
		{
			ID: ModEye, Name: "Eye Complaints",
			Questions: []Question{
				withPrompt("EYE-1", "Is this a new problem?", yesNo(Next(), Next())),
				yn("EYE-2", "Is there any pain, discharge, or excessive tearing?", Show(NotifyCareTeam())),
				yn("EYE-3", "Are there any new problems with your vision?", Show(NotifyCareTeam())),
				rating("EYE-4", "Rate your symptoms.", Show(NotifyCareTeam()), false),
				withPrompt("EYE-5", "Have you seen an eye doctor for these complaints yet?", yesNo(Next(), Next())),
			},
		},
		{
			ID: ModMouthSores, Name: "Mouth Sores",
			Questions: []Question{
				choice("MSO-1", "Are you able to eat and drink normally?", map[string]Transition{
					"Normal":                Next(),
					"Reduced":               Next(),
					"Difficulty swallowing": Next(),
					"Barely anything":       Show(NotifyCareTeam()),
					"Not at all":            Show(NotifyCareTeam()),
				}, "Normal", "Reduced", "Difficulty swallowing", "Barely anything", "Not at all"),
				rating("MSO-2", "Rate your mouth sores.", Show(NotifyCareTeam()), false),
				withPrompt("MSO-3", "Is it painful to swallow?", yesNo(Next(), Next())),
				withPrompt("MSO-4", "Do you have a fever?", yesNo(JumpTo(ModFever), Next())),
				withPrompt("MSO-5", "Any signs of dehydration?", yesNo(JumpTo(ModDehydration), Next())),
			},
		},
		{
			ID: ModNoAppetite, Name: "No Appetite",
			Questions: []Question{
				choice("APP-1", "Have you lost weight?", map[string]Transition{
					"No": Next(),
					"Less than 3 pounds in a week": Next(),
					"More than 3 pounds in a week": Show(NotifyCareTeam()),
				}, "No", "Less than 3 pounds in a week", "More than 3 pounds in a week"),
				choice("APP-2", "Are you able to eat and drink normally?", map[string]Transition{
					"Normal":          Next(),
					"Reduced":         Next(),
					"Barely anything": Show(NotifyCareTeam()),
					"Not at all":      Show(NotifyCareTeam()),
				}, "Normal", "Reduced", "Barely anything", "Not at all"),
				withPrompt("APP-3", "Is it painful to swallow?", yesNo(JumpTo(ModMouthSores), Next())),
				withPrompt("APP-4", "Any signs of dehydration?", yesNo(JumpTo(ModDehydration), Next())),
			},
		},
		{
			ID: ModConstipation, Name: "Constipation",
			Questions: []Question{
				choice("CON-1", "How many days since your last bowel movement?", map[string]Transition{
					"1 day":            Next(),
					"2 days":           Next(),
					"More than 2 days": Show(NotifyCareTeam()),
				}, "1 day", "2 days", "More than 2 days"),
				withPrompt("CON-2", "Are you passing gas?", yesNo(Next(), Show(NotifyCareTeam()))),
				rating("CON-3", "Rate your constipation.", Show(NotifyCareTeam()), false),
				withPrompt("CON-4", "Are you having repeated vomiting?", yesNo(JumpTo(ModVomiting), Next())),
				withPrompt("CON-5", "Any signs of dehydration?", yesNo(JumpTo(ModDehydration), Next())),
			},
		},
		{
			ID: ModUrinary, Name: "Urinary Problems",
			Questions: []Question{
				yn("URI-1", "Has the amount of urine drastically reduced or increased?", Show(NotifyCareTeam())),
				choice("URI-2", "Rate any burning during urination.", map[string]Transition{
					"None":     Next(),
					"Mild":     Next(),
					"Moderate": Show(NotifyCareTeam()),
					"Severe":   Show(NotifyCareTeam()),
				}, "None", "Mild", "Moderate", "Severe"),
				yn("URI-3", "Are you having any pelvic pain with urination?", Show(NotifyCareTeam())),
				yn("URI-4", "Do you see any blood in your urine?", Show(NotifyCareTeam())),
				withPrompt("URI-5", "Are you drinking fluids normally?", yesNo(Next(), JumpTo(ModDehydration))),
			},
		},
		{
			ID: ModSkinRash, Name: "Skin Rash",
			Questions: []Question{
				choice("SKI-1", "Where is the rash?", map[string]Transition{
					"Face":          Next(),
					"Chest":         Next(),
					"Arms":          Next(),
					"Legs":          Next(),
					"Hands or feet": Next(),
					"Infusion site": Next(),
				}, "Face", "Chest", "Arms", "Legs", "Hands or feet", "Infusion site"),
				choice("SKI-2", "If at the infusion site: any swelling, blistering, redness, or open wound?", map[string]Transition{
					"Yes":                  Show(NotifyCareTeam()),
					"No":                   Next(),
					"Not at infusion site": Next(),
				}, "Yes", "No", "Not at infusion site"),
				yn("SKI-3", "Does the rash cover more than 30 percent of your body?", Show(NotifyCareTeam())),
				rating("SKI-4", "Rate your rash.", Show(NotifyCareTeam()), false),
				withPrompt("SKI-5", "Do you feel unwell or have a fever?", yesNo(JumpTo(ModFever), Next())),
			},
		},
		{
			ID: ModPainRouter, Name: "General Pain",
			Questions: []Question{
				choice("PAI-1", "Where is your pain?", map[string]Transition{
					"Chest":             Show(CallEmergency()),
					"Head":              JumpTo(ModHeadache),
					"Stomach":           JumpTo(ModAbdominal),
					"Legs or calf":      JumpTo(ModLegPain),
					"Mouth or throat":   JumpTo(ModMouthSores),
					"Muscles or joints": JumpTo(ModJointPain),
					"Port site":         JumpTo(ModPortPain),
					"General":           JumpTo(ModGeneralAches),
				}, "Chest", "Head", "Stomach", "Legs or calf", "Mouth or throat", "Muscles or joints", "Port site", "General"),
			},
		},
		{
			ID: ModSwelling, Name: "Swelling",
			Questions: []Question{
				choice("SWE-1", "Where is your swelling?", map[string]Transition{
					"One leg":   JumpTo(ModLegPain),
					"Both legs": Next(),
					"Arm":       Next(),
					"Face":      Next(),
					"Other":     Next(),
				}, "One leg", "Both legs", "Arm", "Face", "Other"),
				yn("SWE-2", "Is there any redness where you have swelling?", Show(NotifyCareTeam())),
				choice("SWE-3", "Rate your swelling.", map[string]Transition{
					"Mild":     Next(),
					"Moderate": Show(NotifyCareTeam()),
					"Severe":   Show(NotifyCareTeam()),
				}, "Mild", "Moderate", "Severe"),
				yn("SWE-4", "Are you short of breath?", Show(CallEmergency())),
				withPrompt("SWE-5", "Do you have a history of blood clots?", yesNo(Next(), Next())),
			},
		},
		{
			ID: ModCough, Name: "Cough",
			Questions: []Question{
				choice("COU-1", "How long have you had the cough?", map[string]Transition{
					"Less than a week": Next(),
					"More than a week": Next(),
				}, "Less than a week", "More than a week"),
				choice("COU-2", "What is your temperature?", map[string]Transition{
					"Under 100.4F": Next(),
					"Over 100.4F":  JumpTo(ModFever),
				}, "Under 100.4F", "Over 100.4F"),
				yn("COU-3", "Do you have chest pain or shortness of breath?", Show(CallEmergency())),
				yn("COU-4", "Does the cough prevent you from doing your daily activities?", Show(NotifyCareTeam())),
				choice("COU-5", "What is your oxygen saturation, if known?", map[string]Transition{
					"Under 92%":     Show(CallEmergency()),
					"92% or higher": Next(),
					"Unknown":       Next(),
				}, "Under 92%", "92% or higher", "Unknown"),
				rating("COU-6", "Rate your cough.", Show(NotifyCareTeam()), false),
			},
		},
		{
			ID: ModNeuropathy, Name: "Neuropathy",
			Questions: []Question{
				choice("NEU-1", "How long have you had numbness and tingling?", map[string]Transition{
					"New":       Next(),
					"Long term": Next(),
				}, "New", "Long term"),
				yn("NEU-2", "Does the numbness or tingling interfere with your normal activities?", Show(NotifyCareTeam())),
				choice("NEU-3", "Rate your symptoms.", map[string]Transition{
					"Mild":     Next(),
					"Moderate": Show(NotifyCareTeam()),
					"Severe":   Show(NotifyCareTeam()),
				}, "Mild", "Moderate", "Severe"),
				yn("NEU-4", "Has the numbness moved up your arms or legs?", Show(NotifyCareTeam())),
				yn("NEU-5", "Have you fallen or felt unsteady on your feet?", Show(SafetyRisk())),
			},
		},
	}
}

func bloodClotCard() ActionCard {
	card := CallEmergency()
	card.Title = "Possible Blood Clot"
	card.Action = "Contact your care team ASAP or call 911."
	card.Script = "Tell them your leg is painful, swollen, or warm and you may have a blood clot."
	return card
}
