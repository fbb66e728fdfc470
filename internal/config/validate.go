package config

import (
	"errors"
	"fmt"
)

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogEmbedded:
	case CatalogFile:
		if c.Catalog.Path == "" {
			return errors.New("catalog.path is required for the file source")
		}
	case CatalogPostgres:
		if c.DSN == "" {
			return errors.New("dsn is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown catalog.source %q", c.Catalog.Source)
	}

	switch c.KV.Driver {
	case KVMemory, KVBolt:
	case KVRedis:
		if c.Redis.RedisAddr == "" {
			return errors.New("redis.redis_addr is required for the redis kv driver")
		}
	default:
		return fmt.Errorf("unknown kv.driver %q", c.KV.Driver)
	}

	return nil
}
