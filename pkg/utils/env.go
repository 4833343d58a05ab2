package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func LoadEnv(key string) (string, error) {
	value, valid := os.LookupEnv(key)
	if !valid {
		return "", fmt.Errorf("fail to load env '%v'", key)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("env '%v' is empty", key)
	}
	return value, nil
}

func LoadEnvWithDefault(key string, defaultValue string) string {
	value, err := LoadEnv(key)
	if err != nil {
		return defaultValue
	}
	return value
}

func LoadIntEnvWithDefault(key string, defaultValue int64) (int64, error) {
	value, err := LoadEnv(key)
	if err != nil {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("env '%v' is not integer: %w", key, err)
	}
	return intValue, nil
}
