package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
)

// DefaultEnvFile is read, if present, before the process environment.
const DefaultEnvFile = ".env"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	envFile string
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() *ConfigRepositoryImpl {
	return &ConfigRepositoryImpl{envFile: DefaultEnvFile}
}

// NewConfigRepositoryWithEnvFile reads dotenv values from path instead of ./.env.
// An empty path disables the dotenv file.
func NewConfigRepositoryWithEnvFile(path string) *ConfigRepositoryImpl {
	return &ConfigRepositoryImpl{envFile: path}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// LoadEnv sobrepõe em cfg as variáveis de ambiente. Valores do processo têm
// precedência sobre os do arquivo .env, que nunca altera o ambiente real.
func (r *ConfigRepositoryImpl) LoadEnv(cfg *types.Config) error {
	dotenv := map[string]string{}
	if r.envFile != "" {
		values, err := godotenv.Read(r.envFile)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("error reading %s: %w", r.envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	strs := map[string]*string{
		"AWS_PROFILE":            &cfg.Profile,
		"AWS_REGION":             &cfg.Region,
		"REPORT_BUCKET":          &cfg.Bucket,
		"REPORT_KEY_PREFIX":      &cfg.KeyPrefix,
		"REPORT_TIMEZONE":        &cfg.Timezone,
		"REPORT_SCHEDULE":        &cfg.Schedule,
		"SLACK_BOT_TOKEN":        &cfg.SlackToken,
		"SLACK_CHANNEL":          &cfg.SlackChannel,
		"SLACK_WEBHOOK_URL":      &cfg.SlackWebhookURL,
		"LOG_LEVEL":              &cfg.LogLevel,
		"LOG_FORMAT":             &cfg.LogFormat,
		"OTEL_EXPORTER_TYPE":     &cfg.OTELExporterType,
		"OTEL_EXPORTER_ENDPOINT": &cfg.OTELExporterEndpoint,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REPORT_TOP_SUMMARY": &cfg.TopSummary,
		"REPORT_TOP_THREAD":  &cfg.TopThread,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"REPORT_INCLUDE_BUDGETS": &cfg.IncludeBudgets,
		"REPORT_SKIP_IF_EXISTS":  &cfg.SkipIfExists,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = b
	}

	return nil
}
