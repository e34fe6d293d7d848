// Package domain defines the persistent record types, enumerations, and error
// values shared by every layer of the clinical record store.
package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Collection names every store backend recognises as persistence buckets.
const (
	CollectionPatients        = "patients"
	CollectionExams           = "exams"
	CollectionOphthalmo       = "ophthalmo"
	CollectionAnamnesis       = "anamnesis"
	CollectionPrescriptions   = "prescriptions"
	CollectionLabExams        = "lab_exams"
	CollectionFinancial       = "financial"
	CollectionDrugs           = "drugs"
	CollectionTemplates       = "templates"
	CollectionReferenceValues = "reference_values"
	CollectionSettings        = "settings"
	CollectionProfiles        = "profiles"
)

// Collections lists every bucket in a stable order used by persistence backends.
var Collections = []string{
	CollectionPatients,
	CollectionExams,
	CollectionOphthalmo,
	CollectionAnamnesis,
	CollectionPrescriptions,
	CollectionLabExams,
	CollectionFinancial,
	CollectionDrugs,
	CollectionTemplates,
	CollectionReferenceValues,
	CollectionSettings,
	CollectionProfiles,
}

// SettingsID is the fixed id of the singleton settings document.
const SettingsID = "global_settings"

// PatientScope segregates veterinary and human patients.
type PatientScope string

// Patient scopes. Legacy records without a scope are migrated by inferring
// from the free-text practice field.
const (
	ScopeVet   PatientScope = "VET"
	ScopeHuman PatientScope = "HUMAN"
)

// RecordStatus tracks the report lifecycle of clinical documents.
type RecordStatus string

// Clinical record statuses.
const (
	StatusDraft         RecordStatus = "draft"
	StatusPendingReview RecordStatus = "pending_review"
	StatusFinalized     RecordStatus = "finalized"
)

// PracticeType distinguishes clinic-wide operating modes.
type PracticeType string

// Practice types carried on settings, anamnesis records, and drugs.
const (
	PracticeVet   PracticeType = "vet"
	PracticeHuman PracticeType = "human"
)

// TransactionType classifies a financial transaction.
type TransactionType string

// Financial transaction types.
const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionStatus tracks cashflow state.
type TransactionStatus string

// Financial transaction statuses. Pending amounts contribute only to the
// forecast, cancelled amounts contribute to nothing.
const (
	TransactionPending   TransactionStatus = "pending"
	TransactionPaid      TransactionStatus = "paid"
	TransactionCancelled TransactionStatus = "cancelled"
)

// PaymentMethod enumerates accepted settlement methods.
type PaymentMethod string

// Payment methods validated on financial records when present.
const (
	PaymentPix        PaymentMethod = "pix"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCash       PaymentMethod = "cash"
	PaymentTransfer   PaymentMethod = "transfer"
)

// LabFlag marks a lab result against its reference interval.
type LabFlag string

// Lab result flags. The empty flag means "not assessed".
const (
	FlagLow          LabFlag = "low"
	FlagNormal       LabFlag = "normal"
	FlagHigh         LabFlag = "high"
	FlagCriticalLow  LabFlag = "critical_low"
	FlagCriticalHigh LabFlag = "critical_high"
	FlagNone         LabFlag = ""
)

// Patient is an animal or human patient record.
type Patient struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Scope      PatientScope `json:"scope,omitempty"`
	Species    string       `json:"species,omitempty"`
	Breed      string       `json:"breed,omitempty"`
	Size       string       `json:"size,omitempty"`
	OwnerName  string       `json:"owner_name,omitempty"`
	OwnerPhone string       `json:"owner_phone,omitempty"`
	Document   string       `json:"document,omitempty"`
	BirthDate  string       `json:"birth_date,omitempty"`
	BirthYear  string       `json:"birth_year,omitempty"`
	Weight     float64      `json:"weight,omitempty"`
	Sex        string       `json:"sex,omitempty"`
	IsNeutered bool         `json:"is_neutered,omitempty"`
	// Practice is the legacy free-text field scope inference reads from.
	Practice  string     `json:"practice,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// OrganEntry carries report text and free-form measurements for one organ of
// an imaging exam. Measurements and visual payloads are opaque to the store.
type OrganEntry struct {
	OrganName    string         `json:"organ_name"`
	ReportText   string         `json:"report_text,omitempty"`
	Measurements map[string]any `json:"measurements,omitempty"`
	VisualData   any            `json:"visual_data,omitempty"`
}

// ExamImage is an image payload attached to an imaging exam. Data holds the
// working (possibly annotated) payload, OriginalData the untouched capture.
type ExamImage struct {
	ID           string   `json:"id"`
	Filename     string   `json:"filename"`
	Data         string   `json:"data"`
	OriginalData string   `json:"original_data,omitempty"`
	MimeType     string   `json:"mime_type,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	// BlobKey points at the archived original in the configured blob store,
	// empty when archival is disabled.
	BlobKey string `json:"blob_key,omitempty"`
}

// Exam is an imaging exam (ultrasound, radiology, CT, echo).
type Exam struct {
	ID            string       `json:"id"`
	PatientID     string       `json:"patient_id"`
	ExamType      string       `json:"exam_type,omitempty"`
	Date          time.Time    `json:"date,omitzero"`
	ExamWeight    float64      `json:"exam_weight,omitempty"`
	ReferringVet  string       `json:"referring_vet,omitempty"`
	OrgansData    []OrganEntry `json:"organs_data,omitempty"`
	ReportContent string       `json:"report_content,omitempty"`
	Conclusion    string       `json:"conclusion,omitempty"`
	Images        []ExamImage  `json:"images,omitempty"`
	Status        RecordStatus `json:"status,omitempty"`
	UpdatedAt     *time.Time   `json:"updated_at,omitempty"`
}

// EyeData captures the per-eye findings of an ophthalmologic exam. The
// biomicroscopy and fundoscopy maps are open clinical payloads.
type EyeData struct {
	VisualAcuity          string            `json:"visual_acuity,omitempty"`
	VisualAcuityCorrected string            `json:"visual_acuity_corrected,omitempty"`
	IOP                   float64           `json:"iop,omitempty"`
	IOPMethod             string            `json:"iop_method,omitempty"`
	Biomicroscopy         map[string]string `json:"biomicroscopy,omitempty"`
	Fundoscopy            map[string]string `json:"fundoscopy,omitempty"`
	EyeFundusDrawing      string            `json:"eye_fundus_drawing,omitempty"`
	CampimetryGrid        any               `json:"campimetry_grid,omitempty"`
	Diagnosis             string            `json:"diagnosis,omitempty"`
	Conduct               string            `json:"conduct,omitempty"`
}

// OphthalmoExam is a structured ophthalmologic exam with per-eye findings.
type OphthalmoExam struct {
	ID                 string       `json:"id"`
	PatientID          string       `json:"patient_id"`
	PatientName        string       `json:"patient_name,omitempty"`
	Date               time.Time    `json:"date,omitzero"`
	DoctorName         string       `json:"doctor_name,omitempty"`
	RequestingDoctor   string       `json:"requesting_doctor,omitempty"`
	ChiefComplaint     string       `json:"chief_complaint,omitempty"`
	ClinicalHistory    string       `json:"clinical_history,omitempty"`
	CurrentMedications string       `json:"current_medications,omitempty"`
	Allergies          string       `json:"allergies,omitempty"`
	RightEye           EyeData      `json:"right_eye"`
	LeftEye            EyeData      `json:"left_eye"`
	GeneralDiagnosis   string       `json:"general_diagnosis,omitempty"`
	TreatmentPlan      string       `json:"treatment_plan,omitempty"`
	FollowUp           string       `json:"follow_up,omitempty"`
	Notes              string       `json:"notes,omitempty"`
	Status             RecordStatus `json:"status,omitempty"`
	CreatedAt          time.Time    `json:"created_at,omitzero"`
	UpdatedAt          *time.Time   `json:"updated_at,omitempty"`
	FinalizedAt        *time.Time   `json:"finalized_at,omitempty"`
}

// Anamnesis is a clinical interview record. The general data and physical
// exam maps are keyed by scope-specific fields and stay schema-less.
type Anamnesis struct {
	ID            string         `json:"id"`
	PatientID     string         `json:"patient_id"`
	Date          time.Time      `json:"date"`
	DoctorName    string         `json:"doctor_name,omitempty"`
	Type          PracticeType   `json:"type"`
	MainComplaint string         `json:"main_complaint,omitempty"`
	History       string         `json:"history,omitempty"`
	GeneralData   map[string]any `json:"general_data,omitempty"`
	PhysicalExam  map[string]any `json:"physical_exam,omitempty"`
	Diagnosis     string         `json:"diagnosis,omitempty"`
	Conduct       string         `json:"conduct,omitempty"`
}

// PrescriptionItem is one prescribed drug with dosage instructions.
type PrescriptionItem struct {
	DrugName string `json:"drug_name"`
	Dosage   string `json:"dosage,omitempty"`
	Quantity string `json:"quantity,omitempty"`
}

// Prescription is a dated list of prescribed items for a patient.
type Prescription struct {
	ID         string             `json:"id"`
	PatientID  string             `json:"patient_id"`
	DoctorName string             `json:"doctor_name,omitempty"`
	Date       time.Time          `json:"date,omitzero"`
	Items      []PrescriptionItem `json:"items,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

// LabResult is one measured parameter of a lab exam.
type LabResult struct {
	Parameter string   `json:"parameter"`
	Value     string   `json:"value,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	RefMin    *float64 `json:"ref_min,omitempty"`
	RefMax    *float64 `json:"ref_max,omitempty"`
	Flag      LabFlag  `json:"flag,omitempty"`
	Category  string   `json:"category,omitempty"`
}

// LabExam is a laboratory exam with per-parameter results.
type LabExam struct {
	ID              string       `json:"id"`
	PatientID       string       `json:"patient_id"`
	PatientName     string       `json:"patient_name,omitempty"`
	PatientSpecies  string       `json:"patient_species,omitempty"`
	OwnerName       string       `json:"owner_name,omitempty"`
	Date            time.Time    `json:"date"`
	ExamType        string       `json:"exam_type"`
	ExamTypeLabel   string       `json:"exam_type_label,omitempty"`
	RequestingVet   string       `json:"requesting_vet,omitempty"`
	Results         []LabResult  `json:"results,omitempty"`
	Conclusion      string       `json:"conclusion,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	ClinicalHistory string       `json:"clinical_history,omitempty"`
	Status          RecordStatus `json:"status,omitempty"`
	CreatedAt       time.Time    `json:"created_at,omitzero"`
	UpdatedAt       *time.Time   `json:"updated_at,omitempty"`
	FinalizedAt     *time.Time   `json:"finalized_at,omitempty"`
	FinalizedBy     string       `json:"finalized_by,omitempty"`
}

// Transaction is a financial transaction (income or expense).
type Transaction struct {
	ID       string            `json:"id"`
	Type     TransactionType   `json:"type"`
	Category string            `json:"category,omitempty"`
	Amount   decimal.Decimal   `json:"amount"`
	Status   TransactionStatus `json:"status,omitempty"`
	// Date is the legacy base date kept for backward compatibility; the
	// balance window prefers DueDate when present.
	Date          time.Time     `json:"date"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	Description   string        `json:"description,omitempty"`
	PatientID     string        `json:"patient_id,omitempty"`
}

// MarshalJSON emits the amount as a plain JSON number so the numeric schema
// constraint on financial documents holds, without flipping shopspring's
// process-global MarshalJSONWithoutQuotes switch.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain: plain(t), Amount: json.Number(t.Amount.String())})
}

// Drug is a reference drug entry used by prescription editors.
type Drug struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Type          PracticeType `json:"type,omitempty"`
	Category      string       `json:"category,omitempty"`
	DefaultDosage string       `json:"default_dosage,omitempty"`
}

// Template is a reference report text template.
type Template struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Organ string `json:"organ,omitempty"`
	Lang  string `json:"lang,omitempty"`
}

// ReferenceValue is a normal-range reference row for measurements.
type ReferenceValue struct {
	ID        string   `json:"id"`
	Species   string   `json:"species,omitempty"`
	Organ     string   `json:"organ"`
	Parameter string   `json:"parameter,omitempty"`
	MinValue  *float64 `json:"min_value,omitempty"`
	MaxValue  *float64 `json:"max_value,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Size      string   `json:"size,omitempty"`
}

// LetterheadMargins holds print margins in millimetres.
type LetterheadMargins struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Profile is a clinic identity profile; the active one is mirrored flattened
// into the settings singleton.
type Profile struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	ClinicName        string             `json:"clinic_name,omitempty"`
	ClinicAddress     string             `json:"clinic_address,omitempty"`
	PractitionerName  string             `json:"practitioner_name,omitempty"`
	LicenseNumber     string             `json:"license_number,omitempty"`
	ProfessionalEmail string             `json:"professional_email,omitempty"`
	ProfessionalPhone string             `json:"professional_phone,omitempty"`
	LetterheadPath    string             `json:"letterhead_path,omitempty"`
	SignaturePath     string             `json:"signature_path,omitempty"`
	LetterheadMargins *LetterheadMargins `json:"letterhead_margins_mm,omitempty"`
}

// Settings is the singleton configuration document. Exactly one instance with
// id SettingsID exists after store initialization.
type Settings struct {
	ID                string             `json:"id"`
	PracticeType      PracticeType       `json:"practice_type,omitempty"`
	ActiveModules     []string           `json:"active_modules,omitempty"`
	ClinicName        string             `json:"clinic_name,omitempty"`
	ClinicAddress     string             `json:"clinic_address,omitempty"`
	PractitionerName  string             `json:"practitioner_name,omitempty"`
	LicenseNumber     string             `json:"license_number,omitempty"`
	ProfessionalEmail string             `json:"professional_email,omitempty"`
	ProfessionalPhone string             `json:"professional_phone,omitempty"`
	LetterheadPath    string             `json:"letterhead_path,omitempty"`
	SignaturePath     string             `json:"signature_path,omitempty"`
	LetterheadMargins *LetterheadMargins `json:"letterhead_margins_mm,omitempty"`
	Theme             string             `json:"theme,omitempty"`
	ActiveProfileID   string             `json:"active_profile_id,omitempty"`
	ActiveProfileName string             `json:"active_profile_name,omitempty"`
}

// TimelineEntry normalizes one clinical record for the merged patient
// timeline. Data carries the raw document.
type TimelineEntry struct {
	Collection string    `json:"collection"`
	Date       time.Time `json:"date"`
	Data       Document  `json:"data"`
}

// Balance aggregates financial transactions inside a query window.
type Balance struct {
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpense    decimal.Decimal `json:"total_expense"`
	PendingForecast decimal.Decimal `json:"pending_forecast"`
	Balance         decimal.Decimal `json:"balance"`
}

// MarshalJSON keeps balance sums as JSON numbers, matching transaction
// amounts.
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]json.Number{
		"total_income":     json.Number(b.TotalIncome.String()),
		"total_expense":    json.Number(b.TotalExpense.String()),
		"pending_forecast": json.Number(b.PendingForecast.String()),
		"balance":          json.Number(b.Balance.String()),
	})
}
