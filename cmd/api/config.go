package main

import (
	"errors"
	"fmt"
	"github.com/ardanlabs/conf"
	log "github.com/sirupsen/logrus"
	"program-portal-go/internal/programs"
	"strings"
	"time"
)

var ErrStoreNotConfigured = errors.New("record store is not configured")

const (
	StoreAirtable = "airtable"
	StorePostgres = "postgres"
	StoreFixture  = "fixture"
)

type Config struct {
	Port  string `conf:"default:8080,env:PORT"`
	Store string `conf:"default:airtable,env:STORE"`

	AirtableAPIKey  string `conf:"env:AIRTABLE_API_KEY,noprint"`
	AirtableBaseID  string `conf:"env:AIRTABLE_BASE_ID"`
	AirtableBaseURL string `conf:"env:AIRTABLE_BASE_URL"`
	DBConn          string `conf:"env:DB_CONN,noprint"`
	FixturePath     string `conf:"default:testdata/programs.yaml,env:FIXTURE_PATH"`

	ProgramsTable  string `conf:"default:Programs,env:PROGRAMS_TABLE"`
	ModulesTable   string `conf:"default:Training Modules,env:MODULES_TABLE"`
	ManualsTable   string `conf:"default:Protocol Manuals,env:MANUALS_TABLE"`
	FormsTable     string `conf:"default:Documentation Forms,env:FORMS_TABLE"`
	ResourcesTable string `conf:"default:Additional Resources,env:RESOURCES_TABLE"`

	CacheMaxAge               time.Duration `conf:"default:60s,env:CACHE_MAX_AGE"`
	CacheStaleWhileRevalidate time.Duration `conf:"default:300s,env:CACHE_STALE_WHILE_REVALIDATE"`
	CORSOrigins               string        `conf:"default:*,env:CORS_ORIGINS"`

	LogLevel  string `conf:"default:info,env:LOG_LEVEL"`
	LogFormat string `conf:"default:text,env:LOG_FORMAT"`

	NewRelicAppName    string `conf:"default:program-portal,env:NEW_RELIC_APP_NAME"`
	NewRelicLicenseKey string `conf:"env:NEW_RELIC_LICENSE_KEY,noprint"`
}

func ReadConfig() (*Config, error) {
	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the selected store has the credentials it needs.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreAirtable:
		if c.AirtableAPIKey == "" || c.AirtableBaseID == "" {
			return fmt.Errorf("%w: airtable api key and base id are required", ErrStoreNotConfigured)
		}
	case StorePostgres:
		if c.DBConn == "" {
			return fmt.Errorf("%w: database connection string is required", ErrStoreNotConfigured)
		}
	case StoreFixture:
		if c.FixturePath == "" {
			return fmt.Errorf("%w: fixture path is required", ErrStoreNotConfigured)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrStoreNotConfigured, c.Store)
	}
	return nil
}

func (c *Config) Tables() programs.Tables {
	return programs.Tables{
		Programs:  c.ProgramsTable,
		Modules:   c.ModulesTable,
		Manuals:   c.ManualsTable,
		Forms:     c.FormsTable,
		Resources: c.ResourcesTable,
	}
}

func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) CachePolicy() CachePolicy {
	return CachePolicy{
		MaxAge:               c.CacheMaxAge,
		StaleWhileRevalidate: c.CacheStaleWhileRevalidate,
	}
}

func configureLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	return nil
}
