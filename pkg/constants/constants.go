package constants

const (
	DotSpecs              = ".specs"
	SpecsEnvVarPrefix     = "SPECS_"
	ManifestFileExtension = ".yaml"
	CsvFileExtension      = ".csv"
	DefaultListSeparator  = ";"
	DefaultHttpPort       = 8010
)
