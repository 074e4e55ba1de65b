package quality

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"PriceCast/internal/domain/models"
)

// SchemaError signals a structural precondition failure: an empty batch, or
// a required field absent from every record. Data-quality degradation is
// never a SchemaError; it is reported and processing continues.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s", e.Reason)
}

// Validator runs the three quality checks over a batch, each gating only its
// own violators: missing fields, declared ranges, exact duplicates.
type Validator struct {
	validate        *validator.Validate
	missingWarnRate float64
	now             func() time.Time
}

func New(missingWarnRate float64) *Validator {
	return &Validator{
		validate:        validator.New(),
		missingWarnRate: missingWarnRate,
		now:             time.Now,
	}
}

// Validate checks records in order and returns the surviving batch with its
// quality report. Re-validating a returned batch yields it unchanged.
func (v *Validator) Validate(records []models.PricingRecord) (models.ValidatedBatch, models.QualityReport, error) {
	var report models.QualityReport
	report.TotalRecords = len(records)

	if len(records) == 0 {
		return models.ValidatedBatch{}, report, &SchemaError{Reason: "empty batch"}
	}

	// Missing-field check. Track per-field absence to distinguish a
	// structural failure (field missing everywhere) from dirty rows.
	fieldMissing := make(map[string]int)
	afterMissing := make([]models.PricingRecord, 0, len(records))
	for _, r := range records {
		missing := r.MissingFields()
		if len(missing) == 0 {
			afterMissing = append(afterMissing, r)
			continue
		}
		report.MissingDropped++
		for _, f := range missing {
			fieldMissing[f]++
		}
	}
	for field, count := range fieldMissing {
		if count == len(records) {
			return models.ValidatedBatch{}, report, &SchemaError{
				Reason: fmt.Sprintf("field %q absent from every record", field),
			}
		}
	}

	// Range check against declared field domains.
	afterRange := make([]models.PricingRecord, 0, len(afterMissing))
	for _, r := range afterMissing {
		if err := v.validate.Struct(r); err != nil {
			report.RangeDropped++
			continue
		}
		if r.OptimalPrice < 0 {
			report.RangeDropped++
			continue
		}
		afterRange = append(afterRange, r)
	}

	// Duplicate check: exact full-tuple duplicates beyond the first occurrence.
	seen := make(map[models.RecordKey]struct{}, len(afterRange))
	accepted := make([]models.PricingRecord, 0, len(afterRange))
	for _, r := range afterRange {
		key := r.Key()
		if _, dup := seen[key]; dup {
			report.DuplicateDropped++
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, r)
	}

	report.Accepted = len(accepted)
	report.PassRate = float64(report.Accepted) / float64(report.TotalRecords)
	report.MissingRate = float64(report.MissingDropped) / float64(report.TotalRecords)
	report.DuplicateRate = float64(report.DuplicateDropped) / float64(report.TotalRecords)
	report.Degraded = report.MissingRate > v.missingWarnRate
	report.ValidatedAt = v.now()

	return models.ValidatedBatch{Records: accepted}, report, nil
}
