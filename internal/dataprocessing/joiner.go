package dataprocessing

import (
	"fmt"
	"log/slog"

	"basketcli/internal/errors"
	"basketcli/pkg/contracts/domain"
)

// Join performs a left outer join of basket records to customer attributes on
// customer id. Every basket row is preserved exactly once, so the result has
// the same length and order as baskets. Baskets whose customer is absent from
// the customer table keep CustomerKnown false; their attributes stay missing
// rather than defaulted so aggregates can tell absence from zero.
//
// Duplicate customer ids would let a left join silently multiply basket rows,
// which corrupts every downstream aggregate. The chosen policy is to fail
// fast with a DataIntegrity error instead of picking one of the duplicates.
func Join(baskets []domain.BasketRecord, customers []domain.CustomerRecord) ([]domain.JoinedRecord, error) {
	byID := make(map[string]domain.CustomerRecord, len(customers))
	for _, customer := range customers {
		if _, exists := byID[customer.CustomerID]; exists {
			return nil, errors.NewDataIntegrityError(
				fmt.Sprintf("duplicate customer_id %q in customer table", customer.CustomerID)).
				WithContext("customer_id", customer.CustomerID)
		}
		byID[customer.CustomerID] = customer
	}

	joined := make([]domain.JoinedRecord, 0, len(baskets))
	unmatched := 0
	for _, basket := range baskets {
		record := domain.JoinedRecord{BasketRecord: basket}

		if customer, ok := byID[basket.CustomerID]; ok {
			record.CustomerKnown = true
			record.Sex = customer.Sex
			record.CustomerAge = customer.CustomerAge
			record.Tenure = customer.Tenure
		} else {
			unmatched++
		}

		joined = append(joined, record)
	}

	slog.Info("joined basket and customer tables",
		slog.Int("basket_rows", len(baskets)),
		slog.Int("customer_rows", len(customers)),
		slog.Int("unmatched_baskets", unmatched))

	return joined, nil
}
