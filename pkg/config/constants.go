package config

const (
	// EnvPrefix namespaces every environment variable consumed by the service.
	EnvPrefix = "swiftcargo"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SWIFTCARGO_APP_ENV"
	EnvDBDSN  = "SWIFTCARGO_DB_DSN"
	EnvDBHost = "SWIFTCARGO_DB_HOST"
	EnvDBUser = "SWIFTCARGO_DB_USER"
	EnvDBName = "SWIFTCARGO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
