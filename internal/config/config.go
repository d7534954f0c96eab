package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Wiki     WikiConfig
	Rewriter RewriterConfig
	Limits   LimitsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	PrefetchTopicName  string
}

type WikiConfig struct {
	APIBase        string
	RESTBase       string
	SimpleAPIBase  string
	SimpleRESTBase string
	RelatedBase    string
	UserAgent      string
}

type RewriterConfig struct {
	BaseURL string
}

type LimitsConfig struct {
	QuestionCap     int // max questions per topic
	MediaCap        int // max images per enriched question
	SuggestionChips int // max "did you mean" chips on not-found
	PrefetchCount   int // questions enriched eagerly after aggregation
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			PrefetchTopicName:  getEnv("PREFETCH_TOPIC_NAME", "ENRICH_TOP_QUESTIONS"),
		},
		Wiki: WikiConfig{
			APIBase:        getEnv("WIKI_API_BASE", "https://en.wikipedia.org/w/api.php"),
			RESTBase:       getEnv("WIKI_REST_BASE", "https://en.wikipedia.org/api/rest_v1"),
			SimpleAPIBase:  getEnv("SIMPLE_WIKI_API_BASE", "https://simple.wikipedia.org/w/api.php"),
			SimpleRESTBase: getEnv("SIMPLE_WIKI_REST_BASE", "https://simple.wikipedia.org/api/rest_v1"),
			RelatedBase:    getEnv("RELATED_API_BASE", "https://api.duckduckgo.com"),
			UserAgent:      getEnv("WIKI_USER_AGENT", "curio-be/1.0"),
		},
		Rewriter: RewriterConfig{
			BaseURL: getEnv("REWRITER_BASE_URL", "http://localhost:8787"),
		},
		Limits: LimitsConfig{
			QuestionCap:     getEnvAsInt("QUESTION_CAP", 20),
			MediaCap:        getEnvAsInt("MEDIA_CAP", 12),
			SuggestionChips: getEnvAsInt("SUGGESTION_CHIPS", 8),
			PrefetchCount:   getEnvAsInt("PREFETCH_COUNT", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
