package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	Debug     bool
	SeedDemo  bool
}

func LoadConfig(envFile string) *Config {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("no %s file, using environment", envFile)
	}

	return &Config{
		DBSource:  getEnv("DB_SOURCE", "ecorider.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    24 * time.Hour,
		Debug:     getEnv("DEBUG", "") == "1",
		SeedDemo:  getEnv("SEED_DEMO", "") == "1",
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
