package clinic

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"clinicore/pkg/domain"
)

// TransactionFilter narrows GetTransactions. Month is 1-12 and only applies
// together with Year; a zero Year means an unrestricted window.
type TransactionFilter struct {
	Type      domain.TransactionType
	Status    domain.TransactionStatus
	Category  string
	PatientID string
	Month     time.Month
	Year      int
}

// AddTransaction stores a financial transaction. Status defaults to paid,
// payment method to cash, category to Geral; due_date falls back to the base
// date and paid_at is set only for paid records.
func (s *Service) AddTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	start := s.now()
	var err error
	defer func() { s.observe("add_transaction", start, err) }()

	t.ID = s.newID()
	if t.Date.IsZero() {
		t.Date = s.now()
	}
	if t.Status == "" {
		t.Status = domain.TransactionPaid
	}
	if t.PaymentMethod == "" {
		t.PaymentMethod = domain.PaymentCash
	}
	if t.Category == "" {
		t.Category = "Geral"
	}
	if t.DueDate == nil {
		due := t.Date
		t.DueDate = &due
	}
	if t.PaidAt == nil && t.Status == domain.TransactionPaid {
		paid := t.Date
		t.PaidAt = &paid
	}
	if t.Status != domain.TransactionPaid {
		t.PaidAt = nil
	}
	var out domain.Transaction
	out, err = insertTyped(s, ctx, domain.CollectionFinancial, t)
	return out, err
}

func (s *Service) GetTransaction(id string) (domain.Transaction, bool, error) {
	return getTyped[domain.Transaction](s, domain.CollectionFinancial, id)
}

// GetTransactions returns transactions matching the filter, newest first by
// effective date (due_date when present, else date).
func (s *Service) GetTransactions(filter TransactionFilter) ([]domain.Transaction, error) {
	sel := domain.Selector{}
	if filter.Type != "" {
		sel["type"] = domain.Condition{Eq: string(filter.Type)}
	}
	if filter.Status != "" {
		sel["status"] = domain.Condition{Eq: string(filter.Status)}
	}
	if filter.Category != "" {
		sel["category"] = domain.Condition{Eq: filter.Category}
	}
	if filter.PatientID != "" {
		sel["patient_id"] = domain.Condition{Eq: filter.PatientID}
	}
	all, err := listTyped[domain.Transaction](s, domain.CollectionFinancial, sel, domain.FindOptions{})
	if err != nil {
		return nil, err
	}
	from, until, windowed := monthWindow(filter.Year, filter.Month)
	out := make([]domain.Transaction, 0, len(all))
	for _, t := range all {
		if windowed && !inWindow(effectiveDate(t), from, until) {
			continue
		}
		out = append(out, t)
	}
	sortTransactionsDesc(out)
	return out, nil
}

// UpdateTransaction applies a partial update and keeps paid_at consistent
// with the status transition: moving to paid stamps paid_at when absent,
// moving to pending clears it.
func (s *Service) UpdateTransaction(ctx context.Context, id string, fields domain.Document) (domain.Transaction, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_transaction", start, err) }()

	if status, ok := fields["status"].(string); ok {
		var current domain.Transaction
		var found bool
		current, found, err = s.GetTransaction(id)
		if err != nil {
			return domain.Transaction{}, err
		}
		if !found {
			err = domain.NotFoundError{Collection: domain.CollectionFinancial, ID: id}
			return domain.Transaction{}, err
		}
		fields = domain.CloneDocument(fields)
		switch domain.TransactionStatus(status) {
		case domain.TransactionPaid:
			if _, supplied := fields["paid_at"]; !supplied && current.PaidAt == nil {
				fields["paid_at"] = s.now().Format(time.RFC3339Nano)
			}
		case domain.TransactionPending:
			fields["paid_at"] = nil
		}
	}
	var out domain.Transaction
	out, err = patchTyped[domain.Transaction](s, ctx, domain.CollectionFinancial, id, fields)
	return out, err
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_transaction", start, err) }()
	err = s.removeDoc(ctx, domain.CollectionFinancial, id)
	return err
}

// BalanceFilter selects the month window for GetBalance. Zero Year means
// all-time.
type BalanceFilter struct {
	Month time.Month
	Year  int
}

// GetBalance aggregates transactions inside the window: paid records count
// toward income or expense by type, pending records toward the forecast
// only, cancelled records toward nothing.
func (s *Service) GetBalance(filter BalanceFilter) (domain.Balance, error) {
	start := s.now()
	var err error
	defer func() { s.observe("get_balance", start, err) }()

	var all []domain.Transaction
	all, err = listTyped[domain.Transaction](s, domain.CollectionFinancial, nil, domain.FindOptions{})
	if err != nil {
		return domain.Balance{}, err
	}
	from, until, windowed := monthWindow(filter.Year, filter.Month)

	b := domain.Balance{
		TotalIncome:     decimal.Zero,
		TotalExpense:    decimal.Zero,
		PendingForecast: decimal.Zero,
		Balance:         decimal.Zero,
	}
	for _, t := range all {
		if windowed && !inWindow(effectiveDate(t), from, until) {
			continue
		}
		switch t.Status {
		case domain.TransactionPending:
			b.PendingForecast = b.PendingForecast.Add(t.Amount)
		case domain.TransactionPaid:
			if t.Type == domain.TransactionIncome {
				b.TotalIncome = b.TotalIncome.Add(t.Amount)
			} else {
				b.TotalExpense = b.TotalExpense.Add(t.Amount)
			}
		}
	}
	b.Balance = b.TotalIncome.Sub(b.TotalExpense)
	return b, nil
}

// effectiveDate is the date the balance window tests: due_date if present,
// else the legacy base date.
func effectiveDate(t domain.Transaction) time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.Date
}

// monthWindow returns [firstOfMonth, firstOfNextMonth) in UTC. windowed is
// false when no year is given.
func monthWindow(year int, month time.Month) (from, until time.Time, windowed bool) {
	if year == 0 {
		return time.Time{}, time.Time{}, false
	}
	if month == 0 {
		month = time.January
	}
	from = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	until = from.AddDate(0, 1, 0)
	return from, until, true
}

func inWindow(t, from, until time.Time) bool {
	return !t.Before(from) && t.Before(until)
}

func sortTransactionsDesc(list []domain.Transaction) {
	sort.SliceStable(list, func(i, j int) bool {
		di, dj := effectiveDate(list[i]), effectiveDate(list[j])
		if di.Equal(dj) {
			return list[i].ID < list[j].ID
		}
		return di.After(dj)
	})
}
