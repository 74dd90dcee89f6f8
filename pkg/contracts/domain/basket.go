package domain

import (
	"time"
)

// BasketRecord represents a single transaction line from basket_details.csv.
// One customer buying one product on one date, with a quantity.
type BasketRecord struct {
	CustomerID  string    `json:"customer_id" csv:"customer_id" validate:"required"`
	ProductID   string    `json:"product_id" csv:"product_id" validate:"required"`
	BasketCount int       `json:"basket_count" csv:"basket_count" validate:"min=0"`
	BasketDate  time.Time `json:"basket_date" csv:"basket_date" validate:"required"`
}

// CustomerRecord represents one row from customer_details.csv.
// Sex and CustomerAge may carry noisy source values until cleaning runs.
type CustomerRecord struct {
	CustomerID  string `json:"customer_id" csv:"customer_id" validate:"required"`
	Sex         string `json:"sex" csv:"sex"`
	CustomerAge int    `json:"customer_age" csv:"customer_age" validate:"min=0"`
	Tenure      int    `json:"tenure" csv:"tenure" validate:"min=0"`
}

// JoinedRecord is a basket line enriched with the owning customer's
// attributes and the derived calendar and segment columns. Basket fields are
// never mutated after the join; derivation only adds columns.
type JoinedRecord struct {
	BasketRecord

	// Customer attributes from the left join. When CustomerKnown is false the
	// basket had no matching customer row and the fields below carry no
	// meaning; consumers must treat them as missing, not zero.
	CustomerKnown bool   `json:"customer_known"`
	Sex           string `json:"sex,omitempty"`
	CustomerAge   int    `json:"customer_age,omitempty"`
	Tenure        int    `json:"tenure,omitempty"`

	// Calendar features derived from BasketDate.
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	DayOfWeek string `json:"day_of_week"`
	ISOWeek   int    `json:"iso_week"`

	// Segment features. Empty string means the value fell outside the bucket
	// domain (age 0 or >100, tenure 0 or >150, or unknown customer) and is
	// deliberately left unbucketed.
	AgeGroup    string `json:"age_group,omitempty"`
	TenureGroup string `json:"tenure_group,omitempty"`
}

// Canonical sex categories. Source files may additionally contain placeholder
// tokens that the cleaner maps onto SexOther.
const (
	SexMale   = "Male"
	SexFemale = "Female"
	SexOther  = "Diğer"
)

// Age group bucket names, ordered youngest to oldest.
const (
	AgeGroup18To25 = "18-25"
	AgeGroup26To35 = "26-35"
	AgeGroup36To45 = "36-45"
	AgeGroup46To55 = "46-55"
	AgeGroup55Plus = "55+"
)

// Tenure group bucket names, ordered newest to most loyal. The Turkish labels
// come straight from the business side and are kept verbatim so reports match
// what stakeholders already know.
const (
	TenureGroupNew       = "Yeni(0-60)"
	TenureGroupMid       = "Orta(61-90)"
	TenureGroupLoyal     = "Sadık(91-120)"
	TenureGroupVeryLoyal = "ÇokSadık(120+)"
)

// AgeGroups returns the full age bucket domain in display order. Aggregations
// over age groups must report every bucket, including empty ones.
func AgeGroups() []string {
	return []string{AgeGroup18To25, AgeGroup26To35, AgeGroup36To45, AgeGroup46To55, AgeGroup55Plus}
}

// TenureGroups returns the full tenure bucket domain in display order.
func TenureGroups() []string {
	return []string{TenureGroupNew, TenureGroupMid, TenureGroupLoyal, TenureGroupVeryLoyal}
}

// Weekdays returns the day-of-week domain in Monday-first order, matching the
// business reporting week.
func Weekdays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}
