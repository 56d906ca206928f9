package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DBUrl       string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool
}

// ParseFlags reads configuration from flags, with a .env file (if present)
// providing defaults through the environment.
func ParseFlags() (cfg Config, err error) {
	godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envOr("QF_HOST", "0.0.0.0"), "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", envUintOr("QF_PORT", 80), "listen port number (default 80)")
	flag.StringVar(&cfg.DBUrl, "db-url", envOr("QF_DB_URL", "feedback.sqlite"), "path to SQLite3 DB file (default feedback.sqlite)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", envOr("QF_TOKEN_SECRET", ""), "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", envUintOr("QF_TOKEN_TTL", 120), "token TTL in seconds (default 120)")
	flag.BoolVar(&cfg.Debug, "debug", os.Getenv("QF_DEBUG") != "", "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUintOr(key string, fallback uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return fallback
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
