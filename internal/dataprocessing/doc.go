// Package dataprocessing implements the ingest half of the basket reporting
// pipeline: loading the two input tables, cleaning the customer table,
// joining baskets to customers and deriving calendar and segment features.
//
// # Architecture
//
// The package is organized into four stages, each a pure function of whole
// tables except the loaders, which touch the filesystem:
//
// 1. Loader: reads basket_details.csv and customer_details.csv against
// explicit, validated schemas
// 2. Cleaner: normalizes placeholder sex tokens and imputes out-of-range ages
// 3. Joiner: left join of baskets to customer attributes on customer id
// 4. FeatureDeriver: adds year, month, day of week, ISO week, age group and
// tenure group columns
//
// # Usage
//
//	baskets, err := dataprocessing.LoadBaskets("basket_details.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	customers, err := dataprocessing.LoadCustomers("customer_details.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cleaned := dataprocessing.NewCleaner(nil, 0).CleanCustomers(customers)
//	joined, err := dataprocessing.Join(baskets, cleaned.Customers)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enriched := dataprocessing.DeriveFeatures(joined)
//
// # Data Flow
//
//	CSV files → Loader → records → Cleaner → Joiner → FeatureDeriver → aggregate/exporter/report
//
// # Error Handling
//
// Every failure is an *errors.AppError carrying its taxonomy type:
//
//	- DATA_SOURCE for missing or unreadable input files
//	- SCHEMA for a required column absent from a header
//	- DATA_FORMAT for cells that do not parse as their declared type
//	- DATA_INTEGRITY for duplicate customer ids at join time
//
// All of them are fatal for the run. The pipeline has no cleaning stage for
// basket-side fields, so nothing downstream could detect a coerced sentinel;
// failing outright is the only safe behavior.
package dataprocessing
