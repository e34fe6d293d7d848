package clinic

import (
	"context"

	"clinicore/pkg/domain"
)

// Drugs.

// ListDrugs returns the drug reference set, optionally filtered by practice
// type, sorted by name.
func (s *Service) ListDrugs(practice domain.PracticeType) ([]domain.Drug, error) {
	sel := domain.Selector{}
	if practice != "" {
		sel["type"] = domain.Condition{Eq: string(practice)}
	}
	return listTyped[domain.Drug](s, domain.CollectionDrugs, sel, domain.FindOptions{SortField: "name"})
}

// SearchDrugs matches drug names by case-insensitive substring.
func (s *Service) SearchDrugs(query string, practice domain.PracticeType) ([]domain.Drug, error) {
	sel := domain.Selector{"name": {Contains: query}}
	if practice != "" {
		sel["type"] = domain.Condition{Eq: string(practice)}
	}
	return listTyped[domain.Drug](s, domain.CollectionDrugs, sel, domain.FindOptions{SortField: "name"})
}

func (s *Service) CreateDrug(ctx context.Context, d domain.Drug) (domain.Drug, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_drug", start, err) }()

	d.ID = s.newID()
	if d.Category == "" {
		d.Category = "Geral"
	}
	var out domain.Drug
	out, err = insertTyped(s, ctx, domain.CollectionDrugs, d)
	return out, err
}

func (s *Service) UpdateDrug(ctx context.Context, id string, fields domain.Document) (domain.Drug, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_drug", start, err) }()
	var out domain.Drug
	out, err = patchTyped[domain.Drug](s, ctx, domain.CollectionDrugs, id, fields)
	return out, err
}

func (s *Service) DeleteDrug(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_drug", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionDrugs, id)
	return err
}

// Report templates.

// ListTemplates returns report templates, optionally filtered by organ.
func (s *Service) ListTemplates(organ string) ([]domain.Template, error) {
	sel := domain.Selector{}
	if organ != "" {
		sel["organ"] = domain.Condition{Eq: organ}
	}
	return listTyped[domain.Template](s, domain.CollectionTemplates, sel, domain.FindOptions{SortField: "title"})
}

func (s *Service) CreateTemplate(ctx context.Context, t domain.Template) (domain.Template, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_template", start, err) }()

	t.ID = s.newID()
	if t.Lang == "" {
		t.Lang = "pt"
	}
	var out domain.Template
	out, err = insertTyped(s, ctx, domain.CollectionTemplates, t)
	return out, err
}

func (s *Service) UpdateTemplate(ctx context.Context, id string, fields domain.Document) (domain.Template, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_template", start, err) }()
	var out domain.Template
	out, err = patchTyped[domain.Template](s, ctx, domain.CollectionTemplates, id, fields)
	return out, err
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_template", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionTemplates, id)
	return err
}

// Reference values.

// ReferenceValueFilter narrows ListReferenceValues.
type ReferenceValueFilter struct {
	Organ   string
	Species string
}

func (s *Service) ListReferenceValues(filter ReferenceValueFilter) ([]domain.ReferenceValue, error) {
	sel := domain.Selector{}
	if filter.Organ != "" {
		sel["organ"] = domain.Condition{Eq: filter.Organ}
	}
	if filter.Species != "" {
		sel["species"] = domain.Condition{Eq: filter.Species}
	}
	return listTyped[domain.ReferenceValue](s, domain.CollectionReferenceValues, sel, domain.FindOptions{SortField: "parameter"})
}

func (s *Service) CreateReferenceValue(ctx context.Context, rv domain.ReferenceValue) (domain.ReferenceValue, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_reference_value", start, err) }()

	rv.ID = s.newID()
	var out domain.ReferenceValue
	out, err = insertTyped(s, ctx, domain.CollectionReferenceValues, rv)
	return out, err
}

func (s *Service) UpdateReferenceValue(ctx context.Context, id string, fields domain.Document) (domain.ReferenceValue, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_reference_value", start, err) }()
	var out domain.ReferenceValue
	out, err = patchTyped[domain.ReferenceValue](s, ctx, domain.CollectionReferenceValues, id, fields)
	return out, err
}

func (s *Service) DeleteReferenceValue(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_reference_value", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionReferenceValues, id)
	return err
}
