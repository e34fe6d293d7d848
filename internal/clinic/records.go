package clinic

import (
	"context"

	"clinicore/pkg/domain"
)

// Ophthalmologic exams.

func (s *Service) CreateOphthalmoExam(ctx context.Context, e domain.OphthalmoExam) (domain.OphthalmoExam, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_ophthalmo_exam", start, err) }()

	e.ID = s.newID()
	e.CreatedAt = s.now()
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	if e.Status == "" {
		e.Status = domain.StatusDraft
	}
	var out domain.OphthalmoExam
	out, err = insertTyped(s, ctx, domain.CollectionOphthalmo, e)
	return out, err
}

func (s *Service) GetOphthalmoExam(id string) (domain.OphthalmoExam, bool, error) {
	return getTyped[domain.OphthalmoExam](s, domain.CollectionOphthalmo, id)
}

// ListOphthalmoExams returns ophthalmologic exams newest first; empty
// patientID lists all.
func (s *Service) ListOphthalmoExams(patientID string) ([]domain.OphthalmoExam, error) {
	sel := domain.Selector{}
	if patientID != "" {
		sel["patient_id"] = domain.Condition{Eq: patientID}
	}
	return listTyped[domain.OphthalmoExam](s, domain.CollectionOphthalmo, sel, domain.FindOptions{SortField: "date", SortDesc: true})
}

func (s *Service) UpdateOphthalmoExam(ctx context.Context, id string, fields domain.Document) (domain.OphthalmoExam, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_ophthalmo_exam", start, err) }()
	var out domain.OphthalmoExam
	out, err = patchTyped[domain.OphthalmoExam](s, ctx, domain.CollectionOphthalmo, id, fields)
	return out, err
}

func (s *Service) DeleteOphthalmoExam(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_ophthalmo_exam", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionOphthalmo, id)
	return err
}

// Anamnesis records.

func (s *Service) CreateAnamnesis(ctx context.Context, a domain.Anamnesis) (domain.Anamnesis, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_anamnesis", start, err) }()

	a.ID = s.newID()
	if a.Date.IsZero() {
		a.Date = s.now()
	}
	if a.Type == "" {
		a.Type = domain.PracticeVet
	}
	var out domain.Anamnesis
	out, err = insertTyped(s, ctx, domain.CollectionAnamnesis, a)
	return out, err
}

func (s *Service) GetAnamnesis(id string) (domain.Anamnesis, bool, error) {
	return getTyped[domain.Anamnesis](s, domain.CollectionAnamnesis, id)
}

func (s *Service) ListAnamnesis(patientID string) ([]domain.Anamnesis, error) {
	sel := domain.Selector{}
	if patientID != "" {
		sel["patient_id"] = domain.Condition{Eq: patientID}
	}
	return listTyped[domain.Anamnesis](s, domain.CollectionAnamnesis, sel, domain.FindOptions{SortField: "date", SortDesc: true})
}

func (s *Service) UpdateAnamnesis(ctx context.Context, id string, fields domain.Document) (domain.Anamnesis, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_anamnesis", start, err) }()
	var out domain.Anamnesis
	out, err = patchTyped[domain.Anamnesis](s, ctx, domain.CollectionAnamnesis, id, fields)
	return out, err
}

func (s *Service) DeleteAnamnesis(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_anamnesis", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionAnamnesis, id)
	return err
}

// Prescriptions.

func (s *Service) CreatePrescription(ctx context.Context, p domain.Prescription) (domain.Prescription, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_prescription", start, err) }()

	p.ID = s.newID()
	if p.Date.IsZero() {
		p.Date = s.now()
	}
	var out domain.Prescription
	out, err = insertTyped(s, ctx, domain.CollectionPrescriptions, p)
	return out, err
}

func (s *Service) GetPrescription(id string) (domain.Prescription, bool, error) {
	return getTyped[domain.Prescription](s, domain.CollectionPrescriptions, id)
}

func (s *Service) ListPrescriptions(patientID string) ([]domain.Prescription, error) {
	sel := domain.Selector{}
	if patientID != "" {
		sel["patient_id"] = domain.Condition{Eq: patientID}
	}
	return listTyped[domain.Prescription](s, domain.CollectionPrescriptions, sel, domain.FindOptions{SortField: "date", SortDesc: true})
}

func (s *Service) UpdatePrescription(ctx context.Context, id string, fields domain.Document) (domain.Prescription, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_prescription", start, err) }()
	var out domain.Prescription
	out, err = patchTyped[domain.Prescription](s, ctx, domain.CollectionPrescriptions, id, fields)
	return out, err
}

func (s *Service) DeletePrescription(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_prescription", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionPrescriptions, id)
	return err
}

// Laboratory exams.

func (s *Service) CreateLabExam(ctx context.Context, e domain.LabExam) (domain.LabExam, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_lab_exam", start, err) }()

	e.ID = s.newID()
	e.CreatedAt = s.now()
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	if e.Status == "" {
		e.Status = domain.StatusDraft
	}
	var out domain.LabExam
	out, err = insertTyped(s, ctx, domain.CollectionLabExams, e)
	return out, err
}

func (s *Service) GetLabExam(id string) (domain.LabExam, bool, error) {
	return getTyped[domain.LabExam](s, domain.CollectionLabExams, id)
}

func (s *Service) ListLabExams(patientID string) ([]domain.LabExam, error) {
	sel := domain.Selector{}
	if patientID != "" {
		sel["patient_id"] = domain.Condition{Eq: patientID}
	}
	return listTyped[domain.LabExam](s, domain.CollectionLabExams, sel, domain.FindOptions{SortField: "date", SortDesc: true})
}

func (s *Service) UpdateLabExam(ctx context.Context, id string, fields domain.Document) (domain.LabExam, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_lab_exam", start, err) }()
	var out domain.LabExam
	out, err = patchTyped[domain.LabExam](s, ctx, domain.CollectionLabExams, id, fields)
	return out, err
}

func (s *Service) DeleteLabExam(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_lab_exam", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionLabExams, id)
	return err
}
