package config

const (
	defaultInputDir         = "pdfs"
	defaultDatasetDir       = "scopus_csv_records"
	defaultOutputDir        = "match_results"
	defaultLogDir           = "~/.local/share/pdfmatch/logs"
	defaultStateDir         = "~/.local/share/pdfmatch"
	defaultDatasetPattern   = "scopus_*.csv"
	defaultTitleColumn      = "Title"
	defaultIdentifierColumn = "DOI"
	defaultFileExtension    = ".pdf"
	defaultResolverBase     = "https://doi.org"
	defaultWorkbookName     = "ALL_RESULTS.xlsx"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultIdentifierSource = "ISJ"
	defaultEncodingSource   = "ISR"
	defaultRequireAck       = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:   defaultInputDir,
			DatasetDir: defaultDatasetDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			StateDir:   defaultStateDir,
		},
		Dataset: Dataset{
			Pattern:          defaultDatasetPattern,
			TitleColumn:      defaultTitleColumn,
			IdentifierColumn: defaultIdentifierColumn,
			FileExtension:    defaultFileExtension,
		},
		Matching: Matching{
			IdentifierSources:     []string{defaultIdentifierSource},
			EncodingSources:       []string{defaultEncodingSource},
			RequireAcknowledgment: defaultRequireAck,
		},
		Links: Links{
			ResolverBase: defaultResolverBase,
		},
		Export: Export{
			WorkbookName: defaultWorkbookName,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
