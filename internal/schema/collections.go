package schema

import "clinicore/pkg/domain"

// Current schema versions per collection. Bumping one of these requires a
// matching migration step, otherwise opening an existing store fails with a
// schema conflict.
const (
	PatientsVersion        = 2
	ExamsVersion           = 3
	OphthalmoVersion       = 1
	AnamnesisVersion       = 0
	PrescriptionsVersion   = 0
	LabExamsVersion        = 0
	FinancialVersion       = 1
	DrugsVersion           = 1
	TemplatesVersion       = 0
	ReferenceValuesVersion = 0
	SettingsVersion        = 2
	ProfilesVersion        = 0
)

var (
	scopeEnum         = []string{string(domain.ScopeVet), string(domain.ScopeHuman)}
	practiceEnum      = []string{string(domain.PracticeVet), string(domain.PracticeHuman)}
	reportStatusEnum  = []string{string(domain.StatusDraft), string(domain.StatusFinalized)}
	labStatusEnum     = []string{string(domain.StatusDraft), string(domain.StatusPendingReview), string(domain.StatusFinalized)}
	transactionEnum   = []string{string(domain.TransactionIncome), string(domain.TransactionExpense)}
	cashflowEnum      = []string{string(domain.TransactionPending), string(domain.TransactionPaid), string(domain.TransactionCancelled)}
	paymentMethodEnum = []string{
		string(domain.PaymentPix), string(domain.PaymentCreditCard), string(domain.PaymentDebitCard),
		string(domain.PaymentCash), string(domain.PaymentTransfer),
	}
)

var marginKeys = map[string]Field{
	"top":    {Type: FieldNumber},
	"left":   {Type: FieldNumber},
	"right":  {Type: FieldNumber},
	"bottom": {Type: FieldNumber},
}

func profileIdentityFields() map[string]Field {
	return map[string]Field{
		"clinic_name":           {Type: FieldString},
		"clinic_address":        {Type: FieldString},
		"practitioner_name":     {Type: FieldString},
		"license_number":        {Type: FieldString},
		"professional_email":    {Type: FieldString},
		"professional_phone":    {Type: FieldString},
		"letterhead_path":       {Type: FieldString},
		"signature_path":        {Type: FieldString},
		"letterhead_margins_mm": {Type: FieldObject, Keys: marginKeys},
	}
}

// Default returns the registry with every collection of the clinical store.
func Default() *Registry {
	r := NewRegistry()

	r.Register(Schema{
		Collection: domain.CollectionPatients,
		Version:    PatientsVersion,
		Fields: map[string]Field{
			"id":   {Type: FieldString, Required: true},
			"name": {Type: FieldString, Required: true},
			// Not required so pre-scope records keep loading; the v2
			// migration fills the default.
			"scope":       {Type: FieldString, Enum: scopeEnum},
			"species":     {Type: FieldString},
			"breed":       {Type: FieldString},
			"size":        {Type: FieldString},
			"owner_name":  {Type: FieldString},
			"owner_phone": {Type: FieldString},
			"document":    {Type: FieldString},
			"birth_date":  {Type: FieldString},
			"birth_year":  {Type: FieldString},
			"weight":      {Type: FieldNumber},
			"sex":         {Type: FieldString, Enum: []string{"M", "F", "male", "female"}},
			"is_neutered": {Type: FieldBoolean},
			"practice":    {Type: FieldString},
			"created_at":  {Type: FieldString},
			"updated_at":  {Type: FieldString},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionExams,
		Version:    ExamsVersion,
		Fields: map[string]Field{
			"id":             {Type: FieldString, Required: true},
			"patient_id":     {Type: FieldString, Required: true},
			"exam_type":      {Type: FieldString},
			"date":           {Type: FieldString},
			"exam_weight":    {Type: FieldNumber},
			"referring_vet":  {Type: FieldString},
			"organs_data":    {Type: FieldArray},
			"report_content": {Type: FieldString},
			"conclusion":     {Type: FieldString},
			"images":         {Type: FieldArray},
			"status":         {Type: FieldString, Enum: reportStatusEnum},
			"updated_at":     {Type: FieldString},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionOphthalmo,
		Version:    OphthalmoVersion,
		Fields: map[string]Field{
			"id":                  {Type: FieldString, Required: true},
			"patient_id":          {Type: FieldString, Required: true},
			"patient_name":        {Type: FieldString},
			"date":                {Type: FieldString},
			"doctor_name":         {Type: FieldString},
			"requesting_doctor":   {Type: FieldString},
			"chief_complaint":     {Type: FieldString},
			"clinical_history":    {Type: FieldString},
			"current_medications": {Type: FieldString},
			"allergies":           {Type: FieldString},
			"right_eye":           {Type: FieldObject, Open: true},
			"left_eye":            {Type: FieldObject, Open: true},
			"general_diagnosis":   {Type: FieldString},
			"treatment_plan":      {Type: FieldString},
			"follow_up":           {Type: FieldString},
			"notes":               {Type: FieldString},
			"status":              {Type: FieldString, Enum: reportStatusEnum},
			"created_at":          {Type: FieldString},
			"updated_at":          {Type: FieldString},
			"finalized_at":        {Type: FieldString, Nullable: true},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionAnamnesis,
		Version:    AnamnesisVersion,
		Fields: map[string]Field{
			"id":             {Type: FieldString, Required: true},
			"patient_id":     {Type: FieldString, Required: true},
			"date":           {Type: FieldString, Required: true},
			"doctor_name":    {Type: FieldString},
			"type":           {Type: FieldString, Required: true, Enum: practiceEnum},
			"main_complaint": {Type: FieldString},
			"history":        {Type: FieldString},
			"general_data":   {Type: FieldObject, Open: true},
			"physical_exam":  {Type: FieldObject, Open: true},
			"diagnosis":      {Type: FieldString},
			"conduct":        {Type: FieldString},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionPrescriptions,
		Version:    PrescriptionsVersion,
		Fields: map[string]Field{
			"id":          {Type: FieldString, Required: true},
			"patient_id":  {Type: FieldString, Required: true},
			"doctor_name": {Type: FieldString},
			"date":        {Type: FieldString},
			"items":       {Type: FieldArray},
			"notes":       {Type: FieldString},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionLabExams,
		Version:    LabExamsVersion,
		Fields: map[string]Field{
			"id":               {Type: FieldString, Required: true},
			"patient_id":       {Type: FieldString, Required: true},
			"patient_name":     {Type: FieldString},
			"patient_species":  {Type: FieldString},
			"owner_name":       {Type: FieldString},
			"date":             {Type: FieldString, Required: true},
			"requesting_vet":   {Type: FieldString},
			"exam_type":        {Type: FieldString, Required: true},
			"exam_type_label":  {Type: FieldString},
			"results":          {Type: FieldArray},
			"conclusion":       {Type: FieldString},
			"notes":            {Type: FieldString},
			"clinical_history": {Type: FieldString},
			"status":           {Type: FieldString, Enum: labStatusEnum},
			"created_at":       {Type: FieldString},
			"updated_at":       {Type: FieldString},
			"finalized_at":     {Type: FieldString, Nullable: true},
			"finalized_by":     {Type: FieldString},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionFinancial,
		Version:    FinancialVersion,
		Fields: map[string]Field{
			"id":             {Type: FieldString, Required: true},
			"type":           {Type: FieldString, Required: true, Enum: transactionEnum},
			"category":       {Type: FieldString},
			"amount":         {Type: FieldNumber, Required: true, Positive: true},
			"date":           {Type: FieldString, Required: true},
			"description":    {Type: FieldString},
			"patient_id":     {Type: FieldString},
			"status":         {Type: FieldString, Enum: cashflowEnum},
			"payment_method": {Type: FieldString, Enum: paymentMethodEnum},
			"due_date":       {Type: FieldString, Nullable: true},
			"paid_at":        {Type: FieldString, Nullable: true},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionDrugs,
		Version:    DrugsVersion,
		Fields: map[string]Field{
			"id":             {Type: FieldString, Required: true},
			"name":           {Type: FieldString, Required: true},
			"type":           {Type: FieldString, Enum: practiceEnum},
			"category":       {Type: FieldString},
			"default_dosage": {Type: FieldString},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionTemplates,
		Version:    TemplatesVersion,
		Fields: map[string]Field{
			"id":    {Type: FieldString, Required: true},
			"title": {Type: FieldString, Required: true},
			"text":  {Type: FieldString, Required: true},
			"organ": {Type: FieldString},
			"lang":  {Type: FieldString},
		},
	})

	r.Register(Schema{
		Collection: domain.CollectionReferenceValues,
		Version:    ReferenceValuesVersion,
		Fields: map[string]Field{
			"id":        {Type: FieldString, Required: true},
			"organ":     {Type: FieldString, Required: true},
			"species":   {Type: FieldString},
			"parameter": {Type: FieldString},
			"min_value": {Type: FieldNumber},
			"max_value": {Type: FieldNumber},
			"unit":      {Type: FieldString},
			"size":      {Type: FieldString},
		},
	})

	settingsFields := profileIdentityFields()
	settingsFields["id"] = Field{Type: FieldString, Required: true}
	settingsFields["practice_type"] = Field{Type: FieldString, Enum: practiceEnum}
	settingsFields["active_modules"] = Field{Type: FieldArray}
	settingsFields["theme"] = Field{Type: FieldString}
	settingsFields["active_profile_id"] = Field{Type: FieldString, Nullable: true}
	settingsFields["active_profile_name"] = Field{Type: FieldString, Nullable: true}
	r.Register(Schema{
		Collection: domain.CollectionSettings,
		Version:    SettingsVersion,
		Fields:     settingsFields,
	})

	profileFields := profileIdentityFields()
	profileFields["id"] = Field{Type: FieldString, Required: true}
	profileFields["name"] = Field{Type: FieldString, Required: true}
	r.Register(Schema{
		Collection: domain.CollectionProfiles,
		Version:    ProfilesVersion,
		Fields:     profileFields,
	})

	return r
}
