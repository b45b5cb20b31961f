package cmd

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// loadDotEnv loads variables from env files that exist. Variables already set
// in the environment win over the file.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.Warnf("Ignoring env file %s: %v", p, err)
		}
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("Ignoring %s=%q: not an integer", key, v)
		return def
	}
	return n
}
