package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types

    "github.com/joho/godotenv" // godotenv loads a .env file into the environment when present
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing
    AMQPURL        string // RabbitMQ connection URL (empty disables events)
}

// Load reads configuration values from environment variables and returns
// a Config.  A .env file is loaded first when one exists so local
// development does not have to export everything by hand.  Required
// variables are enforced by must(); missing values cause the program to
// exit with a fatal log message.
func Load() Config {
    if err := godotenv.Load(); err == nil {
        log.Println("loaded configuration from .env file")
    }
    return Config{
        Env:            getenv("APP_ENV", "dev"),
        Port:           getenv("APP_PORT", "8080"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   intEnv("ACCESS_TOKEN_TTL_MIN", 15),
        RefreshTTLDays: intEnv("REFRESH_TOKEN_TTL_DAYS", 30),
        BcryptCost:     intEnv("BCRYPT_COST", 12),
        AMQPURL:        os.Getenv("RABBITMQ_URL"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenv returns the value of key or def when unset/empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// intEnv is like getenv but converts the retrieved string to an integer.
// Invalid numbers fall back to the default rather than aborting startup.
func intEnv(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Printf("invalid int for %s: %q, using default %d", key, v, def)
        return def
    }
    return n
}
