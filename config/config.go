package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tradebot/pkg/s3client"
	"tradebot/pkg/types"
	"tradebot/pkg/utils"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEnvPrefix = "BINANCE"

	defaultTimeoutMs    = 10_000
	defaultRecvWindowMs = 5_000
	defaultLogDir       = "logs"
	defaultLogFile      = "trading_bot.log"

	BaseApiMainUrl    = "https://fapi.binance.com"
	BaseApiTestnetUrl = "https://testnet.binancefuture.com"
)

var ErrMissingCredentials = errors.New("missing API credentials")

var configFiles = map[types.EnvName]string{
	types.EnvLocal: "tradebot.yaml",
	types.EnvDev:   "tradebot.dev.yaml",
	types.EnvProd:  "tradebot.prod.yaml",
}

type Config struct {
	Exchange *ExchangeConfig `yaml:"exchange"`
	Log      *LogConfig      `yaml:"log"`
}

type ExchangeConfig struct {
	ExchangeName types.ExchangeName `yaml:"exchange"`
	EnvPrefix    string             `yaml:"envPrefix"`
	BaseUrl      string             `yaml:"baseUrl"`      // optional, testnet unless prod
	TimeoutMs    int64              `yaml:"timeoutMs"`    // optional
	RecvWindowMs int64              `yaml:"recvWindowMs"` // optional
}

type LogConfig struct {
	Dir          string `yaml:"dir"`
	File         string `yaml:"file"`
	Level        string `yaml:"level"`        // file sink, default debug
	ConsoleLevel string `yaml:"consoleLevel"` // stderr sink, default warning
}

// LoadConfig reads the YAML config for env from disk or S3. A missing local
// file is not an error: defaults apply.
func LoadConfig(env Environment) (*Config, error) {
	var data []byte
	var err error

	switch env.ConfigSource {
	case types.YamlModeS3:
		if env.S3Bucket == "" {
			return nil, fmt.Errorf("CONFIG_S3_BUCKET is required when CONFIG_SOURCE is S3")
		}
		accessKey, err := utils.LoadEnv("AWS_ACCESS_KEY")
		if err != nil {
			return nil, err
		}
		secretKey, err := utils.LoadEnv("AWS_SECRET_KEY")
		if err != nil {
			return nil, err
		}
		client, err := s3client.Init(accessKey, secretKey, utils.LoadEnvWithDefault("AWS_REGION", s3client.DefaultRegion))
		if err != nil {
			return nil, err
		}
		data, err = s3client.GetObject(client, env.S3Bucket, env.S3Key)
		if err != nil {
			return nil, fmt.Errorf("fail to load config 's3://%s/%s': %w", env.S3Bucket, env.S3Key, err)
		}
	default:
		fileName := utils.LoadEnvWithDefault("CONFIG_FILE", configFiles[env.EnvName])
		data, err = os.ReadFile(fileName)
		if errors.Is(err, os.ErrNotExist) {
			data = nil
		} else if err != nil {
			return nil, fmt.Errorf("fail to load config file '%s': %w", fileName, err)
		}
	}

	return ParseConfig(data, env)
}

// ParseConfig decodes YAML data, fills defaults and applies environment
// overrides (<prefix>_BASE_URL, <prefix>_TIMEOUT_MS, <prefix>_RECV_WINDOW_MS,
// LOG_DIR).
func ParseConfig(data []byte, env Environment) (*Config, error) {
	var config Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("fail to decode config: %w", err)
		}
	}
	if config.Exchange == nil {
		config.Exchange = &ExchangeConfig{}
	}
	if config.Log == nil {
		config.Log = &LogConfig{}
	}

	exchg := config.Exchange
	if exchg.ExchangeName == "" {
		exchg.ExchangeName = types.ExchangeBnf
	}
	if exchg.EnvPrefix == "" {
		exchg.EnvPrefix = DefaultEnvPrefix
	}
	if exchg.BaseUrl == "" {
		exchg.BaseUrl = BaseApiTestnetUrl
		if env.EnvName == types.EnvProd {
			exchg.BaseUrl = BaseApiMainUrl
		}
	}
	exchg.BaseUrl = utils.LoadEnvWithDefault(exchg.EnvPrefix+"_BASE_URL", exchg.BaseUrl)
	timeoutMs, err := utils.LoadIntEnvWithDefault(exchg.EnvPrefix+"_TIMEOUT_MS", exchg.TimeoutMs)
	if err != nil {
		return nil, err
	}
	recvWindowMs, err := utils.LoadIntEnvWithDefault(exchg.EnvPrefix+"_RECV_WINDOW_MS", exchg.RecvWindowMs)
	if err != nil {
		return nil, err
	}
	exchg.TimeoutMs, exchg.RecvWindowMs = timeoutMs, recvWindowMs
	if exchg.TimeoutMs < 0 || exchg.RecvWindowMs < 0 {
		return nil, fmt.Errorf("timeoutMs and recvWindowMs must not be negative")
	}
	if exchg.TimeoutMs == 0 {
		exchg.TimeoutMs = defaultTimeoutMs
	}
	if exchg.RecvWindowMs == 0 {
		exchg.RecvWindowMs = defaultRecvWindowMs
	}

	logCfg := config.Log
	if logCfg.Dir == "" {
		logCfg.Dir = defaultLogDir
	}
	logCfg.Dir = utils.LoadEnvWithDefault("LOG_DIR", logCfg.Dir)
	if logCfg.File == "" {
		logCfg.File = defaultLogFile
	}
	logCfg.File = filepath.Base(logCfg.File)

	return &config, nil
}

// LoadCredentials reads <prefix>_API_KEY and <prefix>_API_SECRET. Both are
// required; there is no point retrying without them.
func LoadCredentials(prefix string) (types.Credentials, error) {
	keyName := prefix + "_API_KEY"
	secretName := prefix + "_API_SECRET"
	key := utils.LoadEnvWithDefault(keyName, "")
	secret := utils.LoadEnvWithDefault(secretName, "")
	if key == "" || secret == "" {
		return types.Credentials{}, fmt.Errorf("%w: set %s and %s in your environment or .env file", ErrMissingCredentials, keyName, secretName)
	}
	return types.Credentials{APIKey: key, APISecret: secret}, nil
}
