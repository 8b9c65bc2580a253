package config

// EnvPrefix is the envconfig prefix for all application variables.
const EnvPrefix = "ORIENTA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Env var names referenced in error messages and tests.
const (
	EnvDBDSN  = "ORIENTA_DB_DSN"
	EnvDBHost = "ORIENTA_DB_HOST"
	EnvDBUser = "ORIENTA_DB_USER"
	EnvDBName = "ORIENTA_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
