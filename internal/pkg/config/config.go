// Package config предоставляет управление конфигурацией приложения
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Export содержит конфигурацию текстового экспорта
type Export struct {
	// OutputDir — базовый каталог вывода экспортов.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	// InternalLinksDomain — домен для ссылок на игры ботов.
	InternalLinksDomain string `json:"internal_links_domain" yaml:"internal_links_domain"`
	// SliceSize — размер страницы при записи сообщений и фотографий.
	SliceSize int `json:"slice_size" yaml:"slice_size"`
	// Spreadsheet включает дополнительный вывод contacts.xlsx.
	Spreadsheet bool `json:"spreadsheet" yaml:"spreadsheet"`
}

// Dir возвращает каталог вывода с гарантированным завершающим разделителем.
func (e Export) Dir() string {
	if strings.HasSuffix(e.OutputDir, string(os.PathSeparator)) || strings.HasSuffix(e.OutputDir, "/") {
		return e.OutputDir
	}
	return e.OutputDir + string(os.PathSeparator)
}

// Server содержит конфигурацию сервера
type Server struct {
	Host                   string `json:"host" yaml:"host"`
	Port                   int    `json:"port" yaml:"port"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// Processing содержит конфигурацию обработки
type Processing struct {
	TaskTimeoutSeconds int `json:"task_timeout_seconds" yaml:"task_timeout_seconds"` // 0 - без ограничений
	CacheTTLMinutes    int `json:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
}

// TaskTimeout возвращает таймаут задачи как Duration; 0 — без ограничений.
func (p Processing) TaskTimeout() time.Duration {
	return time.Duration(p.TaskTimeoutSeconds) * time.Second
}

// CacheTTL возвращает срок жизни кеша как Duration.
func (p Processing) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLMinutes) * time.Minute
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

// Config содержит конфигурацию приложения
type Config struct {
	Export     Export     `json:"export" yaml:"export"`
	Server     Server     `json:"server" yaml:"server"`
	Processing Processing `json:"processing" yaml:"processing"`
	Logging    Logging    `json:"logging" yaml:"logging"`
}

// LoadConfig загружает конфигурацию приложения из переменных окружения, .env файла или config.yml
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла, если он существует
	if err := godotenv.Load(); err != nil {
		// Если .env файла не существует, это нормально, мы будем полагаться на переменные окружения или config.yml
	}

	// Попытка загрузки из config.yml сначала
	cfg, err := loadFromYAML("config.yml")
	if err != nil {
		// Если загрузка YAML не удалась, используем переменные окружения
		cfg, err = loadFromEnv()
		if err != nil {
			return nil, fmt.Errorf("не удалось загрузить конфигурацию из env: %w", err)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

// loadFromYAML загружает конфигурацию из YAML-файла
func loadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл конфигурации %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("не удалось разобрать YAML конфигурацию: %w", err)
	}

	return &cfg, nil
}

// loadFromEnv загружает конфигурацию из переменных окружения
func loadFromEnv() (*Config, error) {
	portStr := getEnv("SERVER_PORT", strconv.Itoa(DefaultServerPort))
	taskTimeoutStr := getEnv("TASK_TIMEOUT_SECONDS", strconv.Itoa(DefaultTaskTimeoutSeconds))
	cacheTTLStr := getEnv("CACHE_TTL_MINUTES", strconv.Itoa(DefaultCacheTTLMinutes))
	sliceSizeStr := getEnv("EXPORT_SLICE_SIZE", strconv.Itoa(DefaultSliceSize))

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("недопустимый SERVER_PORT: %w", err)
	}

	taskTimeout, err := strconv.Atoi(taskTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("недопустимый TASK_TIMEOUT_SECONDS: %w", err)
	}

	cacheTTL, err := strconv.Atoi(cacheTTLStr)
	if err != nil {
		return nil, fmt.Errorf("недопустимый CACHE_TTL_MINUTES: %w", err)
	}

	sliceSize, err := strconv.Atoi(sliceSizeStr)
	if err != nil {
		return nil, fmt.Errorf("недопустимый EXPORT_SLICE_SIZE: %w", err)
	}

	return &Config{
		Export: Export{
			OutputDir:           getEnv("EXPORT_OUTPUT_DIR", DefaultOutputDir),
			InternalLinksDomain: getEnv("INTERNAL_LINKS_DOMAIN", DefaultInternalLinksDomain),
			SliceSize:           sliceSize,
			Spreadsheet:         getEnv("EXPORT_SPREADSHEET", "") == "true",
		},
		Server: Server{
			Host: getEnv("SERVER_HOST", DefaultServerHost),
			Port: port,
		},
		Processing: Processing{
			TaskTimeoutSeconds: taskTimeout,
			CacheTTLMinutes:    cacheTTL,
		},
		Logging: Logging{
			Level: getEnv("LOG_LEVEL", DefaultLogLevel),
		},
	}, nil
}

// applyDefaults заполняет незаданные поля значениями по умолчанию
func applyDefaults(cfg *Config) {
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = DefaultOutputDir
	}
	if cfg.Export.InternalLinksDomain == "" {
		cfg.Export.InternalLinksDomain = DefaultInternalLinksDomain
	}
	if cfg.Export.SliceSize == 0 {
		cfg.Export.SliceSize = DefaultSliceSize
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ShutdownTimeoutSeconds == 0 {
		cfg.Server.ShutdownTimeoutSeconds = DefaultShutdownTimeoutSeconds
	}
	if cfg.Processing.TaskTimeoutSeconds == 0 {
		cfg.Processing.TaskTimeoutSeconds = DefaultTaskTimeoutSeconds
	}
	if cfg.Processing.CacheTTLMinutes == 0 {
		cfg.Processing.CacheTTLMinutes = DefaultCacheTTLMinutes
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

// ShutdownTimeout возвращает таймаут остановки сервера как Duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Export.OutputDir == "" {
		return fmt.Errorf("export.output_dir не может быть пустым")
	}

	if c.Export.InternalLinksDomain == "" {
		return fmt.Errorf("export.internal_links_domain не может быть пустым")
	}
	if !strings.HasSuffix(c.Export.InternalLinksDomain, "/") {
		return fmt.Errorf("export.internal_links_domain должен заканчиваться символом '/'")
	}

	if c.Export.SliceSize <= 0 {
		return fmt.Errorf("export.slice_size должно быть положительным целым числом")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port должен быть действительным номером порта (1-65535)")
	}

	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("server.shutdown_timeout_seconds должно быть положительным")
	}

	if c.Processing.TaskTimeoutSeconds < 0 {
		return fmt.Errorf("processing.task_timeout_seconds должно быть неотрицательным (0 для отсутствия ограничений)")
	}

	if c.Processing.CacheTTLMinutes <= 0 {
		return fmt.Errorf("processing.cache_ttl_minutes должно быть положительным целым числом")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level должен быть одним из: debug, info, warn, error")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
