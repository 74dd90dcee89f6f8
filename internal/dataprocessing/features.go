package dataprocessing

import (
	"basketcli/pkg/contracts/domain"
)

// DeriveFeatures computes the calendar and segment columns for every joined
// record. It is total and column-additive: existing fields are never touched,
// and the returned slice is a new one of the same length and order.
func DeriveFeatures(records []domain.JoinedRecord) []domain.JoinedRecord {
	out := make([]domain.JoinedRecord, len(records))
	for i, record := range records {
		record.Year = record.BasketDate.Year()
		record.Month = int(record.BasketDate.Month())
		record.DayOfWeek = record.BasketDate.Weekday().String()
		_, record.ISOWeek = record.BasketDate.ISOWeek()

		if record.CustomerKnown {
			record.AgeGroup = AgeGroupFor(record.CustomerAge)
			record.TenureGroup = TenureGroupFor(record.Tenure)
		}

		out[i] = record
	}
	return out
}

// AgeGroupFor maps an age onto its bucket. Buckets are left-open and
// right-closed, so a value on a boundary belongs to the lower bucket. Age 0
// sits below the open bound of the first bucket and ages above 100 sit above
// the last; both yield the empty string, an explicitly missing bucket.
func AgeGroupFor(age int) string {
	switch {
	case age <= 0:
		return ""
	case age <= 25:
		return domain.AgeGroup18To25
	case age <= 35:
		return domain.AgeGroup26To35
	case age <= 45:
		return domain.AgeGroup36To45
	case age <= 55:
		return domain.AgeGroup46To55
	case age <= 100:
		return domain.AgeGroup55Plus
	default:
		return ""
	}
}

// TenureGroupFor maps a tenure in days onto its bucket, with the same
// left-open right-closed convention as AgeGroupFor. Tenure 0 and tenures
// above 150 are missing.
func TenureGroupFor(tenure int) string {
	switch {
	case tenure <= 0:
		return ""
	case tenure <= 60:
		return domain.TenureGroupNew
	case tenure <= 90:
		return domain.TenureGroupMid
	case tenure <= 120:
		return domain.TenureGroupLoyal
	case tenure <= 150:
		return domain.TenureGroupVeryLoyal
	default:
		return ""
	}
}
