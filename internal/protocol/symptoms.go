package protocol

// Symptom is a selectable entry on the symptom-selection screen. The code is
// the module id the assessment starts in.
type Symptom struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// SymptomGroup clusters related symptoms for display.
type SymptomGroup struct {
	Category string    `json:"category"`
	Symptoms []Symptom `json:"symptoms"`
}

// SymptomGroups returns the grouped symptom catalog in display order.
func SymptomGroups() []SymptomGroup {
	return []SymptomGroup{
		{
			Category: "Digestive Health",
			Symptoms: []Symptom{
				{"Nausea", ModNausea},
				{"Vomiting", ModVomiting},
				{"Diarrhea", ModDiarrhea},
				{"Constipation", ModConstipation},
				{"No Appetite", ModNoAppetite},
				{"Mouth Sores", ModMouthSores},
				{"Abdominal Pain", ModAbdominal},
			},
		},
		{
			Category: "Pain & Nerve",
			Symptoms: []Symptom{
				{"General Pain", ModPainRouter},
				{"Headache", ModHeadache},
				{"Leg/Calf Pain", ModLegPain},
				{"Neuropathy", ModNeuropathy},
				{"Port Site Pain", ModPortPain},
			},
		},
		{
			Category: "Systemic & Infection",
			Symptoms: []Symptom{
				{"Fever", ModFever},
				{"Bleeding or Bruising", ModBleeding},
				{"Fatigue", ModFatigue},
				{"Dehydration", ModDehydration},
				{"Cough", ModCough},
				{"Urinary Problems", ModUrinary},
			},
		},
		{
			Category: "Skin & External",
			Symptoms: []Symptom{
				{"Skin Rash", ModSkinRash},
				{"Swelling", ModSwelling},
				{"Eye Complaints", ModEye},
			},
		},
	}
}
