package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"

	KVMemory = "memory"
	KVBolt   = "bolt"
	KVRedis  = "redis"
)

type Config struct {
	Env       string          `yaml:"env" env:"APP_ENV" env-default:"local"`
	DSN       string          `yaml:"dsn" env:"DSN"`
	HTTP      HTTPConfig      `yaml:"http"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	KV        KVConfig        `yaml:"kv"`
	Redis     RedisConf       `yaml:"redis"`
	Assets    AssetsConfig    `yaml:"assets"`
	Companion CompanionConfig `yaml:"companion"`
	Nav       NavConfig       `yaml:"nav"`
}

type HTTPConfig struct {
	Host          string        `yaml:"host"`
	Port          string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout       time.Duration `yaml:"timeout" env-default:"4s"`
	SessionSecret string        `yaml:"session_secret" env:"SESSION_SECRET" env-default:"fan-showcase-local"`
}

type CatalogConfig struct {
	Source string `yaml:"source" env:"CATALOG_SOURCE" env-default:"embedded"`
	Path   string `yaml:"path" env:"CATALOG_PATH"`
	Watch  bool   `yaml:"watch" env-default:"false"`
	Seed   bool   `yaml:"seed" env-default:"false"` // заполнить postgres встроенными данными, если таблицы пусты
}

type KVConfig struct {
	Driver   string        `yaml:"driver" env:"KV_DRIVER" env-default:"memory"`
	BoltPath string        `yaml:"bolt_path" env-default:"fan_showcase.db"`
	StateTTL time.Duration `yaml:"state_ttl" env-default:"24h"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

type AssetsConfig struct {
	BaseDir      string   `yaml:"base_dir" env-default:"./assets"`
	BaseURL      string   `yaml:"base_url" env-default:"/assets"`
	Placeholders []string `yaml:"placeholders"`
}

type CompanionConfig struct {
	InteractiveDelay time.Duration `yaml:"interactive_delay" env-default:"1s"`
	Left             float64       `yaml:"left" env-default:"20"`
	Top              float64       `yaml:"top" env-default:"500"`
	Width            float64       `yaml:"width" env-default:"120"`
	Height           float64       `yaml:"height" env-default:"120"`
	IdleTTL          time.Duration `yaml:"idle_ttl" env-default:"30m"`
}

type NavConfig struct {
	Offset         int           `yaml:"offset" env-default:"80"`
	ScrollDuration time.Duration `yaml:"scroll_duration" env-default:"800ms"`
}

// DefaultPlaceholders are used when assets.placeholders is empty.
var DefaultPlaceholders = []string{
	"https://via.placeholder.com/100x100/8BC34A/2E7D32?text=游戏",
	"https://via.placeholder.com/100x100/E53935/FFFFFF?text=GAME",
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	if len(cfg.Assets.Placeholders) == 0 {
		cfg.Assets.Placeholders = DefaultPlaceholders
	}

	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
