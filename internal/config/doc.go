// Package config provides centralized configuration management for the
// basket reporting pipeline. It handles loading configuration from multiple
// sources, validation, and a type-safe API for accessing configuration values
// throughout the run.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. basketcli.yaml configuration file (highest priority)
//	2. Environment variables
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BASKET_* for namespacing:
//
//	BASKET_INPUTS_BASKETS_PATH=basket_details.csv
//	BASKET_INPUTS_CUSTOMERS_PATH=customer_details.csv
//	BASKET_OUTPUT_DIR=reports
//	BASKET_REPORT_TOP_N=10
//	BASKET_LOGGING_LEVEL=info
//
// # Validation
//
// All configuration is validated at load time with go-playground/validator
// struct tags; an invalid configuration fails the run before any input is
// read.
//
// # Usage
//
// Load configuration at startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
