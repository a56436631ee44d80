package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/repository"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"gopkg.in/yaml.v3"
)

// Formatos aceitos em report_type.
var validReportTypes = map[string]bool{
	"pdf":  true,
	"csv":  true,
	"json": true,
	"xlsx": true,
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON e valida os valores.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

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

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return &config, nil
}

// validate normaliza report_type e rejeita valores que o gerador não aceita.
func validate(config *types.Config) error {
	if config.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", config.Days)
	}

	if config.StartDate != "" {
		if _, err := time.Parse("2006-01-02", config.StartDate); err != nil {
			return fmt.Errorf("start_date %q: %w", config.StartDate, types.ErrInvalidDateLiteral)
		}
	}

	for i, reportType := range config.ReportType {
		reportType = strings.ToLower(strings.TrimSpace(reportType))
		if !validReportTypes[reportType] {
			return fmt.Errorf("report_type %q: %w", reportType, types.ErrUnsupportedFormat)
		}
		config.ReportType[i] = reportType
	}

	return nil
}
