package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds everything the ChatbotService reads from the environment.
type Config struct {
	// Server
	Port string

	// Logging
	LogLevel  string
	LogFormat string

	// Completion provider
	Provider       string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	GeminiAPIKey   string
	GeminiModel    string
	LLMTimeout     time.Duration
	LLMConcurrency int

	// Chat page
	PageTitle  string
	Greeting   string
	BotIconURL string
}

// Load reads the configuration. A .env file in the working directory is applied first if it exists.
func Load() *Config {
	// Missing .env is fine, the real environment wins anyway.
	_ = godotenv.Load()

	return &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "json"),
		Provider:       strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:   getEnvOrDefault("OPENAI_API_KEY", os.Getenv("chatBot")),
		OpenAIBaseURL:  getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		GeminiAPIKey:   getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		LLMTimeout:     getEnvAsDurationOrDefault("LLM_TIMEOUT", 30*time.Second),
		LLMConcurrency: getEnvAsIntOrDefault("LLM_MAX_CONCURRENT", 16),
		PageTitle:      getEnvOrDefault("CHAT_PAGE_TITLE", "Craig Long LLC Chatbot"),
		Greeting:       getEnvOrDefault("CHAT_GREETING", "Hello! I'm the Craig Long LLC virtual assistant. How can I help you today?"),
		BotIconURL:     getEnvOrDefault("CHAT_BOT_ICON_URL", "https://i.postimg.cc/VktGpw2C/Untitled-design-1.png"),
	}
}

// Validate checks that the selected provider has what it needs to start.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider))
	}
	if c.LLMConcurrency < 1 {
		errs = append(errs, fmt.Errorf("LLM_MAX_CONCURRENT must be at least 1, got %d", c.LLMConcurrency))
	}
	if c.LLMTimeout < 0 {
		errs = append(errs, fmt.Errorf("LLM_TIMEOUT must not be negative, got %s", c.LLMTimeout))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// getEnvAsDurationOrDefault accepts Go durations ("45s") or a bare number of seconds.
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
