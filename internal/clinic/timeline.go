package clinic

import (
	"sort"
	"time"

	"clinicore/pkg/domain"
)

// GetPatientTimeline merges the patient's imaging exams, prescriptions and
// lab exams into one list sorted by date descending. Records without a
// usable date fall back to a per-source secondary field and finally to now,
// so no entry is ever dropped. Ties keep the per-source input order.
func (s *Service) GetPatientTimeline(patientID string) ([]domain.TimelineEntry, error) {
	start := s.now()
	var err error
	defer func() { s.observe("get_patient_timeline", start, err) }()

	now := s.now()
	var entries []domain.TimelineEntry
	for _, source := range []struct {
		collection string
		fallback   string
	}{
		{domain.CollectionExams, "updated_at"},
		{domain.CollectionPrescriptions, ""},
		{domain.CollectionLabExams, "created_at"},
	} {
		docs := s.store.Find(source.collection, domain.Selector{
			"patient_id": {Eq: patientID},
		}, domain.FindOptions{})
		for _, doc := range docs {
			entries = append(entries, domain.TimelineEntry{
				Collection: source.collection,
				Date:       entryDate(doc, source.fallback, now),
				Data:       doc,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func entryDate(doc domain.Document, fallbackField string, now time.Time) time.Time {
	if t, ok := domain.DocumentTime(doc, "date"); ok {
		return t
	}
	if fallbackField != "" {
		if t, ok := domain.DocumentTime(doc, fallbackField); ok {
			return t
		}
	}
	return now
}
