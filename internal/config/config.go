package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Detection DetectionConfig
	Gemini    GeminiConfig
	Email     EmailConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки локального файла SQLite
type DatabaseConfig struct {
	// Path — путь к файлу базы данных
	Path string `mapstructure:"path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения. По умолчанию 0 (без ретраев).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (в миллисекундах).
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (в миллисекундах).
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// DetectionConfig содержит настройки камеры и модели детекции.
// Порог уверенности и длительность окна фиксированы в коде (detection.DefaultConfig).
type DetectionConfig struct {
	// CameraDevice — номер устройства захвата (0 — камера по умолчанию)
	CameraDevice int `mapstructure:"camera_device"`

	// ModelPath — путь к весам детектора в формате ONNX
	ModelPath string `mapstructure:"model_path"`

	// ClassNamesPath — путь к файлу имен классов модели
	ClassNamesPath string `mapstructure:"class_names_path"`
}

// GeminiConfig содержит настройки клиента генеративной модели
type GeminiConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// EmailConfig содержит настройки уведомлений о низких оценках в отзывах
type EmailConfig struct {
	// Enabled включает отправку уведомлений; без ключа и адресов сервис работает как noop
	Enabled      bool   `mapstructure:"enabled"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	AlertTo      string `mapstructure:"alert_to"`

	// LowRatingMax — максимальная оценка, при которой уходит уведомление. По умолчанию 5.
	LowRatingMax int `mapstructure:"low_rating_max"`
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// Привязываем переменные окружения явно
	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("database.path", "DATABASE_PATH")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("detection.camera_device", "DETECTION_CAMERA_DEVICE")
	vip.BindEnv("detection.model_path", "DETECTION_MODEL_PATH")
	vip.BindEnv("detection.class_names_path", "DETECTION_CLASS_NAMES_PATH")

	vip.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	vip.BindEnv("gemini.model", "GEMINI_MODEL")

	vip.BindEnv("email.enabled", "EMAIL_ENABLED")
	vip.BindEnv("email.resend_api_key", "EMAIL_RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("email.alert_to", "EMAIL_ALERT_TO")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Умолчания
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	// Запись должна переживать блокирующее окно детекции (десять секунд)
	// и долгую генерацию материалов
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 90
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "curioscope.db"
	}
	if cfg.Email.LowRatingMax <= 0 {
		cfg.Email.LowRatingMax = 5
	}

	// Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Path: %s", cfg.Database.Path)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("JWT Secret Set: %t", cfg.JWT.Secret != "")
		log.Printf("Detection Camera Device: %d", cfg.Detection.CameraDevice)
		log.Printf("Detection Model Path: %s", cfg.Detection.ModelPath)
		log.Printf("Gemini API Key Set: %t", cfg.Gemini.APIKey != "")
		log.Printf("Email Alerts Enabled: %t", cfg.Email.Enabled)
		log.Printf("-----------------------------------------")
	}

	// Проверка обязательных параметров
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required in config (check GEMINI_API_KEY env var)")
	}
	if cfg.Detection.ModelPath == "" || cfg.Detection.ClassNamesPath == "" {
		return nil, fmt.Errorf("detection model configuration (model_path, class_names_path) is incomplete")
	}

	return &cfg, nil
}
