package config

const (
	// EnvPrefix namespaces every environment variable, e.g. DRE_SERVER_PORT.
	EnvPrefix = "DRE"

	// DotEnvFile is read by Load for local development.
	DotEnvFile = ".env"

	// DefaultSheet and DefaultIndexColumn locate the statement in the
	// management workbook.
	DefaultSheet       = "DRE_dummy"
	DefaultIndexColumn = "Variaveis"
)

// Months are the period labels of the statement, in calendar order.
var Months = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// configFileLocations are searched in order when DRE_CONFIG_FILE is unset.
var configFileLocations = []string{
	"dre.yaml",
	"configs/dre.yaml",
	"../configs/dre.yaml",
	"../../configs/dre.yaml",
}
