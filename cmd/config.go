package cmd

type Config struct {
	HTTPPort     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	RedisAddr    string
	MediaDir     string
	MediaBaseURL string

	// RequestTimeoutSeconds bounds every handler invocation; a hung
	// datastore call fails the request instead of blocking it forever.
	RequestTimeoutSeconds string
}
