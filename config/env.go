package config

import (
	"strings"

	"tradebot/pkg/types"
	"tradebot/pkg/utils"

	"github.com/joho/godotenv"
)

type Environment struct {
	EnvName      types.EnvName
	ConfigSource types.YamlMode
	S3Bucket     string
	S3Key        string
}

// LoadEnvironment reads .env (if present) and resolves the runtime
// environment. Variables already set in the process win over .env.
func LoadEnvironment() Environment {
	_ = godotenv.Load()

	var env Environment
	switch name := strings.ToLower(utils.LoadEnvWithDefault("ENVIRONMENT", "")); name {
	case "prod", "production":
		env.EnvName = types.EnvProd
	case "dev", "staging":
		env.EnvName = types.EnvDev
	default:
		env.EnvName = types.EnvLocal
	}

	switch strings.ToUpper(utils.LoadEnvWithDefault("CONFIG_SOURCE", "")) {
	case string(types.YamlModeS3):
		env.ConfigSource = types.YamlModeS3
		env.S3Bucket = utils.LoadEnvWithDefault("CONFIG_S3_BUCKET", "")
		env.S3Key = utils.LoadEnvWithDefault("CONFIG_S3_KEY", configFiles[env.EnvName])
	default:
		env.ConfigSource = types.YamlModeLocal
	}
	return env
}
