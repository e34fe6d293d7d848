package migrate

import "clinicore/pkg/domain"

// Default returns the engine with every documented migration chain installed.
// Chains must stay aligned with the versions in internal/schema.
func Default() *Engine {
	e := NewEngine()

	e.Register(domain.CollectionPatients, 0, Passthrough)
	e.Register(domain.CollectionPatients, 1, migratePatientScope)

	e.Register(domain.CollectionSettings, 0, Passthrough)
	e.Register(domain.CollectionSettings, 1, Passthrough)

	e.Register(domain.CollectionExams, 0, Passthrough)
	e.Register(domain.CollectionExams, 1, Passthrough)
	e.Register(domain.CollectionExams, 2, Passthrough)

	e.Register(domain.CollectionFinancial, 0, migrateFinancialCashflow)
	e.Register(domain.CollectionOphthalmo, 0, migrateOphthalmoEyes)
	e.Register(domain.CollectionDrugs, 0, migrateDrugCategory)

	return e
}

// migratePatientScope backfills the segregation scope on legacy patients so
// existing records do not disappear behind scope filters. Records whose
// free-text practice field says "human" become HUMAN, everything else VET.
func migratePatientScope(doc domain.Document) domain.Document {
	if s, _ := doc["scope"].(string); s != "" {
		return doc
	}
	if practice, _ := doc["practice"].(string); practice == "human" {
		doc["scope"] = string(domain.ScopeHuman)
	} else {
		doc["scope"] = string(domain.ScopeVet)
	}
	return doc
}

// migrateFinancialCashflow adds the cashflow fields to legacy transactions
// while keeping the old single-date behavior: everything recorded before the
// upgrade counts as paid in cash on its legacy date.
func migrateFinancialCashflow(doc domain.Document) domain.Document {
	status, _ := doc["status"].(string)
	if status == "" {
		status = string(domain.TransactionPaid)
		doc["status"] = status
	}
	if pm, _ := doc["payment_method"].(string); pm == "" {
		doc["payment_method"] = string(domain.PaymentCash)
	}
	date, hasDate := doc["date"].(string)
	if _, ok := doc["due_date"]; !ok || doc["due_date"] == nil {
		if hasDate {
			doc["due_date"] = date
		} else {
			doc["due_date"] = nil
		}
	}
	if _, ok := doc["paid_at"]; !ok || doc["paid_at"] == nil {
		if status == string(domain.TransactionPending) {
			doc["paid_at"] = nil
		} else if hasDate {
			doc["paid_at"] = date
		} else {
			doc["paid_at"] = nil
		}
	}
	return doc
}

// migrateOphthalmoEyes reshapes the legacy flat exam into the per-eye
// structure. Suffix fields (_od right, _os left) are lifted into the eye
// objects and the general diagnosis defaults from the legacy one.
func migrateOphthalmoEyes(doc domain.Document) domain.Document {
	right, _ := doc["right_eye"].(map[string]any)
	if right == nil {
		right = map[string]any{}
	}
	left, _ := doc["left_eye"].(map[string]any)
	if left == nil {
		left = map[string]any{}
	}
	lift := func(legacy, target string, eye map[string]any) {
		if v, ok := doc[legacy]; ok {
			if _, taken := eye[target]; !taken {
				eye[target] = v
			}
			delete(doc, legacy)
		}
	}
	lift("visual_acuity_od", "visual_acuity", right)
	lift("visual_acuity_os", "visual_acuity", left)
	lift("iop_od", "iop", right)
	lift("iop_os", "iop", left)
	doc["right_eye"] = right
	doc["left_eye"] = left
	if gd, _ := doc["general_diagnosis"].(string); gd == "" {
		if legacy, _ := doc["diagnosis"].(string); legacy != "" {
			doc["general_diagnosis"] = legacy
		}
		delete(doc, "diagnosis")
	}
	return doc
}

// migrateDrugCategory defaults the category on seed rows that predate it.
func migrateDrugCategory(doc domain.Document) domain.Document {
	if c, _ := doc["category"].(string); c == "" {
		doc["category"] = "Geral"
	}
	return doc
}
