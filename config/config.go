package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds scraper configuration.
type Config struct {
	Delay             time.Duration // minimum gap between storefront requests, gateway-wide
	RandomDelay       time.Duration // jitter added on top of Delay
	Timeout           time.Duration // per-request timeout
	MaxRetries        int           // attempts per URL, including the first
	RetryBackoffMin   time.Duration // lower bound of the randomized sleep between attempts
	RetryBackoffMax   time.Duration // upper bound of the randomized sleep between attempts
	MaxConcurrent     int           // worker count for multi-brand queries
	QueryTimeout      time.Duration // whole-query deadline for multi-brand scrapes
	MaxSearchTerms    int           // per-brand cap on search terms per query
	ImageCheckTimeout time.Duration // HEAD timeout for image validation
	ImageCacheSize    int           // entries kept in the image validation cache
	RespectRobotsTxt  bool
	RegistryFile      string // optional JSON registry override, empty uses built-ins
	OutputFile        string
	OutputFormat      string // json or csv
	MetricsAddr       string
	Verbose           bool
}

// DefaultConfig returns conservative defaults tuned for the curated
// storefront list.
func DefaultConfig() *Config {
	return &Config{
		Delay:             2 * time.Second,
		RandomDelay:       500 * time.Millisecond,
		Timeout:           15 * time.Second,
		MaxRetries:        3,
		RetryBackoffMin:   2 * time.Second,
		RetryBackoffMax:   5 * time.Second,
		MaxConcurrent:     3,
		QueryTimeout:      30 * time.Second,
		MaxSearchTerms:    2,
		ImageCheckTimeout: 5 * time.Second,
		ImageCacheSize:    512,
		RespectRobotsTxt:  false,
		OutputFile:        "output/products.json",
		OutputFormat:      "json",
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	if c.RandomDelay < 0 {
		return fmt.Errorf("random delay cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	if c.RetryBackoffMin < 0 {
		return fmt.Errorf("retry backoff min cannot be negative")
	}
	if c.RetryBackoffMax < c.RetryBackoffMin {
		return fmt.Errorf("retry backoff max (%s) cannot be below retry backoff min (%s)", c.RetryBackoffMax, c.RetryBackoffMin)
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max concurrent must be positive")
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("query timeout must be positive")
	}
	if c.MaxSearchTerms <= 0 {
		return fmt.Errorf("max search terms must be positive")
	}
	if c.ImageCheckTimeout <= 0 {
		return fmt.Errorf("image check timeout must be positive")
	}
	if c.ImageCacheSize <= 0 {
		return fmt.Errorf("image cache size must be positive")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "json" && c.OutputFormat != "csv" {
		return fmt.Errorf("output format must be json or csv")
	}
	return nil
}

// EnvInt reads an integer environment override.
func EnvInt(key string) (int, bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, true, nil
}

// EnvString reads a string environment override.
func EnvString(key string) (string, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}
