// Package config loads the configuration of the DRE report tools.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML configuration file
//  3. Default values (lowest priority)
//
// The file is taken from DRE_CONFIG_FILE, or else the first of dre.yaml and
// configs/dre.yaml that exists. Relative paths inside the file are resolved
// against the file's directory.
//
// # Environment Variables
//
// All environment variables follow the pattern DRE_<SECTION>_<FIELD>:
//
//	DRE_SERVER_PORT=8080
//	DRE_STATEMENT_WORKBOOK=data/dre.xlsx
//	DRE_STATEMENT_SHEET=DRE_dummy
//	DRE_REPORT_DEFAULT_PERIODS=Jan,Fev,Mar
//	DRE_LOGGING_LEVEL=debug
//
// # Categories
//
// The report categories default to dre.DefaultRegistry. Setting
// report.categories_file replaces them with the list in that YAML file; see
// CategoriesFile for its layout.
package config
