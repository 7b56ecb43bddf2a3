package approval

// FormType enumerates the document kinds handled by the portal.
type FormType string

const (
	FormManifestationLetter  FormType = "manifestation_letter"
	FormConsentLetter        FormType = "consent_letter"
	FormWaiver               FormType = "waiver_form"
	FormAttendanceSheet      FormType = "attendance_sheet"
	FormTravelOrder          FormType = "travel_order"
	FormItinerary            FormType = "itinerary"
	FormMeetingMinutes       FormType = "meeting_minutes"
	FormNeedsDiagnosisReport FormType = "needs_diagnosis_report"
	FormCommunityProfile     FormType = "community_profile"
	FormBudgetProposal       FormType = "budget_proposal"
	FormProjectProposal      FormType = "project_proposal"
	FormTerminalReport       FormType = "terminal_report"
	FormEvaluationReport     FormType = "evaluation_report"
	FormImpactAssessment     FormType = "impact_assessment"
	FormPostActivityReport   FormType = "post_activity_report"
)

// flowKind groups form types that share a base reviewer sequence.
type flowKind int

const (
	// kindSingle needs the ComEx office only.
	kindSingle flowKind = iota
	// kindDual needs ComEx then ASD.
	kindDual
	// kindFull needs ComEx, ASD, AD; student submissions additionally
	// collect the Dean's signature.
	kindFull
	// kindPostActivity needs ComEx and ASD for every submitter category.
	kindPostActivity
)

var formKinds = map[FormType]flowKind{
	FormManifestationLetter:  kindSingle,
	FormConsentLetter:        kindSingle,
	FormWaiver:               kindSingle,
	FormAttendanceSheet:      kindSingle,
	FormTravelOrder:          kindDual,
	FormItinerary:            kindDual,
	FormMeetingMinutes:       kindDual,
	FormNeedsDiagnosisReport: kindDual,
	FormCommunityProfile:     kindDual,
	FormBudgetProposal:       kindDual,
	FormProjectProposal:      kindFull,
	FormTerminalReport:       kindFull,
	FormEvaluationReport:     kindFull,
	FormImpactAssessment:     kindFull,
	FormPostActivityReport:   kindPostActivity,
}

func (ft FormType) String() string {
	return string(ft)
}

// ParseFormType validates a raw form type string.
func ParseFormType(s string) (FormType, bool) {
	_, ok := formKinds[FormType(s)]
	return FormType(s), ok
}

// FormTypes lists every supported form type.
func FormTypes() []FormType {
	out := make([]FormType, 0, len(formKinds))
	for ft := range formKinds {
		out = append(out, ft)
	}
	return out
}
