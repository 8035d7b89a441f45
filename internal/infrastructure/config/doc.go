// Package config handles loading and validating roomsense configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// The defaults describe a stock install: an HDC1000 at 0x40 on /dev/i2c-1,
// sampled every 60 seconds and written to database "myroom" on
// localhost:8086. A deployment with that layout needs no config file.
//
// Security Considerations:
//   - Tokens and passwords should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load(os.Getenv("ROOMSENSE_CONFIG"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.TSDB.Endpoint)
package config
