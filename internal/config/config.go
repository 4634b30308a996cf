package config

import (
	"cmp"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DiosOne/library-api/internal/domain/consts"
)

const (
	defaultAddr      = "0.0.0.0"
	defaultPort      = 5000
	defaultDBHost    = "localhost"
	defaultDBName    = "library_db"
	defaultDBUser    = "postgres"
	defaultDBPass    = ""
	defaultDBPort    = 5432
	defaultDBSSLMode = "require"
)

type Config struct {
	Addr      string
	Debug     bool
	DBHost    string
	DBName    string
	DBUser    string
	DBPass    string
	DBPort    int
	DBSSLMode string
	DBTimeout time.Duration
}

func ReadConfig() (*Config, error) {
	var host, dbHost, dbName, dbUser, dbPass, dbSSLMode string
	var port, dbPort int
	var debug bool
	var dbTimeout time.Duration
	flag.StringVar(&host, "addr", defaultAddr, "flag to set the server startup host")
	flag.IntVar(&port, "port", defaultPort, "flag to set the server startup port")
	flag.BoolVar(&debug, "debug", false, "flag to set Debug logger level")
	flag.StringVar(&dbHost, "db-host", defaultDBHost, "database host")
	flag.StringVar(&dbName, "db-name", defaultDBName, "database name")
	flag.StringVar(&dbUser, "db-user", defaultDBUser, "database user")
	flag.StringVar(&dbPass, "db-pass", defaultDBPass, "database password")
	flag.IntVar(&dbPort, "db-port", defaultDBPort, "database port")
	flag.StringVar(&dbSSLMode, "db-sslmode", defaultDBSSLMode, "database sslmode")
	flag.DurationVar(&dbTimeout, "db-timeout", consts.DefaultDBTimeout, "per-call database timeout")
	flag.Parse()

	host = cmp.Or(os.Getenv("SERVER_HOST"), host)
	p := cmp.Or(os.Getenv("PORT"), strconv.Itoa(port))
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, err
	}
	dbHost = cmp.Or(os.Getenv("DB_HOST"), dbHost)
	dbName = cmp.Or(os.Getenv("DB_NAME"), dbName)
	dbUser = cmp.Or(os.Getenv("DB_USER"), dbUser)
	dbPass = cmp.Or(os.Getenv("DB_PASS"), dbPass)
	dp := cmp.Or(os.Getenv("DB_PORT"), strconv.Itoa(dbPort))
	dbPort, err = strconv.Atoi(dp)
	if err != nil {
		return nil, err
	}
	dbSSLMode = cmp.Or(os.Getenv("DB_SSLMODE"), dbSSLMode)
	if os.Getenv("DEBUG") == "true" {
		debug = true
	}
	if t := os.Getenv("DB_TIMEOUT"); t != "" {
		dbTimeout, err = time.ParseDuration(t)
		if err != nil {
			return nil, err
		}
	}
	return &Config{
		Addr:      fmt.Sprintf("%s:%d", host, port),
		Debug:     debug,
		DBHost:    dbHost,
		DBName:    dbName,
		DBUser:    dbUser,
		DBPass:    dbPass,
		DBPort:    dbPort,
		DBSSLMode: dbSSLMode,
		DBTimeout: dbTimeout,
	}, nil
}

// DSN assembles the postgres connection string from the discrete fields.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
