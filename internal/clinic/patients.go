package clinic

import (
	"context"
	"strings"

	"clinicore/pkg/domain"
)

// PatientFilter narrows ListPatients. Zero values mean no constraint.
type PatientFilter struct {
	Scope        domain.PatientScope
	NameContains string
}

// CreatePatient stores a new patient. The id and created_at are assigned
// here; an empty scope is inferred from the legacy practice field.
func (s *Service) CreatePatient(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_patient", start, err) }()

	p.ID = s.newID()
	p.CreatedAt = s.now()
	if p.Scope == "" {
		if strings.EqualFold(p.Practice, string(domain.PracticeHuman)) {
			p.Scope = domain.ScopeHuman
		} else {
			p.Scope = domain.ScopeVet
		}
	}
	var out domain.Patient
	out, err = insertTyped(s, ctx, domain.CollectionPatients, p)
	return out, err
}

// GetPatient returns a patient by id; ok is false when absent.
func (s *Service) GetPatient(id string) (domain.Patient, bool, error) {
	return getTyped[domain.Patient](s, domain.CollectionPatients, id)
}

// ListPatients returns patients matching the filter, sorted by name.
func (s *Service) ListPatients(filter PatientFilter) ([]domain.Patient, error) {
	sel := domain.Selector{}
	if filter.Scope != "" {
		sel["scope"] = domain.Condition{Eq: string(filter.Scope)}
	}
	if filter.NameContains != "" {
		sel["name"] = domain.Condition{Contains: filter.NameContains}
	}
	return listTyped[domain.Patient](s, domain.CollectionPatients, sel, domain.FindOptions{SortField: "name"})
}

// UpdatePatient applies a shallow partial update.
func (s *Service) UpdatePatient(ctx context.Context, id string, fields domain.Document) (domain.Patient, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_patient", start, err) }()
	var out domain.Patient
	out, err = patchTyped[domain.Patient](s, ctx, domain.CollectionPatients, id, fields)
	return out, err
}

// DeletePatient removes a patient and cascades deletion to the patient's
// imaging exams. Other record types referencing the patient are kept.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_patient", start, err) }()

	exams := s.store.Find(domain.CollectionExams, domain.Selector{
		"patient_id": {Eq: id},
	}, domain.FindOptions{})
	for _, exam := range exams {
		s.dropArchivedImages(ctx, exam)
		if _, err = s.store.Remove(ctx, domain.CollectionExams, domain.DocumentID(exam)); err != nil {
			return err
		}
	}
	s.metrics.SetDocuments(domain.CollectionExams, s.store.Count(domain.CollectionExams))
	err = s.removeDoc(ctx, domain.CollectionPatients, id)
	return err
}
