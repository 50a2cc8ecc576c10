package cfg

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"github.com/caarlos0/env/v11"
	"github.com/jimlawless/whereami"
)

// Источники условия для внешнего реестра
const (
	ConditionBackendStatic   = "static"
	ConditionBackendRedis    = "redis"
	ConditionBackendPostgres = "postgres"
	ConditionBackendMinio    = "minio"
)

type Config struct {
	Registry  *RegistryCfg
	Http      *HTTPConfig
	Grpc      *GRPCConfig
	Kafka     *KafkaCfg
	Condition *ConditionCfg
	Db        *PGDBCfg
	Redis     *RedisCfg
	Minio     *MinIOCfg
}

type RegistryCfg struct {
	Admin domain.Address `env:"REGISTRY_ADMIN,required,notEmpty"` // Адрес администратора при запуске
}

type HTTPConfig struct {
	Port         string        `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"KEEP_ALIVE" envDefault:"60s"`
}

type GRPCConfig struct {
	Port        string `env:"GRPC_PORT" envDefault:"8091"`
	NetworkMode string `env:"GRPC_NETWORK_MODE" envDefault:"tcp"`
}

type KafkaCfg struct {
	Enabled           bool          `env:"KAFKA_ENABLED" envDefault:"false"`
	Topic             string        `env:"KAFKA_TOPIC" envDefault:"registry-events"`
	Brokers           []string      `env:"KAFKA_BROKERS" envSeparator:","`
	NetworkMode       string        `env:"KAFKA_NETWORK_MODE" envDefault:"tcp"`
	Partitions        int           `env:"KAFKA_PARTITIONS" envDefault:"3"`
	ReplicationFactor int           `env:"REPLICATION_FACTOR" envDefault:"1"`
	BatchSize         int           `env:"OUTBOX_BATCH_SIZE" envDefault:"10"`
	PollInterval      time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"5s"`
	MaxBackoff        time.Duration `env:"OUTBOX_MAX_BACKOFF" envDefault:"30s"`
}

// ConditionCfg описывает, где хранится внешний реестр условий.
type ConditionCfg struct {
	Backend   string        `env:"CONDITION_BACKEND" envDefault:"static"`
	AllowList []int64       `env:"CONDITION_ALLOWLIST" envSeparator:","`
	RedisKey  string        `env:"CONDITION_REDIS_KEY" envDefault:"registry:verified-params"`
	Prefix    string        `env:"CONDITION_OBJECT_PREFIX" envDefault:"attestations"`
	Timeout   time.Duration `env:"CONDITION_TIMEOUT" envDefault:"3s"`
}

type PGDBCfg struct {
	Host          string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port          string `env:"POSTGRES_PORT" envDefault:"5432"`
	User          string `env:"POSTGRES_USER"`
	Password      string `env:"POSTGRES_PASSWORD"`
	DBName        string `env:"POSTGRES_DB"`
	SSLMode       string `env:"SSL_MODE" envDefault:"disable"`
	MigrationsURL string `env:"MIGRATIONS_URL" envDefault:"file://db/migrations"`
}

type RedisCfg struct {
	Addr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password    string        `env:"REDIS_PASSWORD"`
	User        string        `env:"REDIS_USER"`
	DB          int           `env:"REDIS_DB_ID" envDefault:"0"`
	MaxRetries  int           `env:"MAX_RETRIES" envDefault:"3"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	Timeout     time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`
}

type MinIOCfg struct {
	MinioEndpoint     string `env:"MINIO_ENDPOINT" envDefault:"minio:9000"` // Адрес конечной точки Minio
	BucketName        string `env:"BUCKET_NAME"`                            // Бакет с документами-подтверждениями
	MinioRootUser     string `env:"MINIO_ROOT_USER"`
	MinioRootPassword string `env:"MINIO_ROOT_PASSWORD"`
	MinioUseSSL       bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	var registry RegistryCfg
	if err := parse(log, "registry", &registry); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var http HTTPConfig
	if err := parse(log, "http", &http); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var grpc GRPCConfig
	if err := parse(log, "grpc", &grpc); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var condition ConditionCfg
	if err := parse(log, "condition", &condition); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var db PGDBCfg
	if err := parse(log, "postgres", &db); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var redis RedisCfg
	if err := parse(log, "redis", &redis); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var minio MinIOCfg
	if err := parse(log, "minio", &minio); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cfg := &Config{
		Registry:  &registry,
		Http:      &http,
		Grpc:      &grpc,
		Kafka:     kafka,
		Condition: &condition,
		Db:        &db,
		Redis:     &redis,
		Minio:     &minio,
	}

	if err := validateCondition(cfg); err != nil {
		log.Errorf(err, "invalid condition backend configuration")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return cfg, nil
}

func loadKafkaCfg(log logger.Logger) (*KafkaCfg, error) {
	var kafka KafkaCfg
	if err := parse(log, "kafka", &kafka); err != nil {
		return nil, err
	}

	if kafka.Enabled && len(kafka.Brokers) == 0 {
		err := fmt.Errorf("KAFKA_BROKERS environment variable is required when KAFKA_ENABLED=true")
		log.Errorf(err, "missing KAFKA_BROKERS")
		return nil, err
	}

	if kafka.BatchSize <= 0 {
		log.Errorf(e.ErrIncorrectEnvVariable, "invalid OUTBOX_BATCH_SIZE")
		return nil, e.Wrap("OUTBOX_BATCH_SIZE", e.ErrIncorrectEnvVariable)
	}

	return &kafka, nil
}

// validateCondition проверяет, что для выбранного источника условий заданы обязательные параметры.
func validateCondition(cfg *Config) error {
	switch cfg.Condition.Backend {
	case ConditionBackendStatic, ConditionBackendRedis:
		return nil
	case ConditionBackendPostgres:
		if cfg.Db.User == "" || cfg.Db.Password == "" || cfg.Db.DBName == "" {
			return fmt.Errorf("POSTGRES_USER, POSTGRES_PASSWORD and POSTGRES_DB are required for %q backend", cfg.Condition.Backend)
		}
		return nil
	case ConditionBackendMinio:
		if cfg.Minio.BucketName == "" {
			return fmt.Errorf("BUCKET_NAME is required for %q backend", cfg.Condition.Backend)
		}
		return nil
	default:
		return e.Wrap(cfg.Condition.Backend, e.ErrUnknownConditionBackend)
	}
}

// parse заполняет структуру из переменных окружения и логирует ошибку разбора.
func parse(log logger.Logger, section string, target any) error {
	if err := env.Parse(target); err != nil {
		log.Errorf(err, "invalid %s configuration", section)
		return e.Wrap(section, err)
	}

	return nil
}
