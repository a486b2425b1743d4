package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Port         string
	APIAccessKey string

	// Upstream news source
	FinnhubAPIKey    string
	NewsLookbackDays int

	// Summarization
	GeminiAPIKey string

	// Email delivery
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	// Scheduling
	WorkerCount       int
	SchedulerInterval int
	DigestHourUTC     int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
