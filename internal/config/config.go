package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSheetURL is the published catalog sheet used when CATALOG_SHEET_URL is unset.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTOYa1xUpJrVcd2cvyxlvcu4J3vsK3puGn0opnhnTB1qbRL-_ul6wsFJRDtkpkxytPVhgLslDmy8t3w/pub?output=csv&gid=0"

// CompletionFileName is the fixed storage key of the completion set.
const CompletionFileName = "learnstack_completed.json"

type Config struct {
	// Catalog source
	SheetURLs        []string
	SheetMode        string // "csv" or "gviz"
	EmbedStrategy    string // "drive" or "youtube"
	DeterministicIDs bool
	HTTPTimeout      time.Duration
	ReloadSchedule   string // cron spec; empty disables background reloads

	// Local state
	DataDir string

	// HTTP server
	ServerPort         int
	CORSAllowedOrigins []string
	RateLimitPerMinute int

	LogLevel string

	// SFTP
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars take precedence.
func Load() Config {
	_ = godotenv.Load()

	sheet, ok := os.LookupEnv("CATALOG_SHEET_URL")
	if !ok {
		sheet = DefaultSheetURL
	}

	return Config{
		SheetURLs:        SplitURLs(sheet),
		SheetMode:        strings.ToLower(getenv("CATALOG_SHEET_MODE", "csv")),
		EmbedStrategy:    strings.ToLower(getenv("EMBED_STRATEGY", "drive")),
		DeterministicIDs: getenvBool("CATALOG_DETERMINISTIC_IDS", false),
		HTTPTimeout:      time.Duration(getenvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		ReloadSchedule:   strings.TrimSpace(os.Getenv("CATALOG_RELOAD_SCHEDULE")),

		DataDir: getenv("DATA_DIR", "./data"),

		ServerPort:         getenvInt("SERVER_PORT", 8080),
		CORSAllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getenvInt("RATE_LIMIT_PER_MINUTE", 100),

		LogLevel: getenv("LOG_LEVEL", "info"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/inbound"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
	}
}

// CompletionPath is where the completion set is persisted.
func (c Config) CompletionPath() string {
	return filepath.Join(c.DataDir, CompletionFileName)
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvList(k string, def []string) []string {
	out := splitList(os.Getenv(k))
	if len(out) == 0 {
		return def
	}
	return out
}

// SplitURLs splits a whitespace separated list of URLs. Commas are legal
// inside a table-query (tq=...) so they never separate URLs.
func SplitURLs(s string) []string {
	return strings.Fields(s)
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(s string) []string {
	return splitList(s)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
