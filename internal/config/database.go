// internal/config/database.go
package config

import (
	"fmt"
	"time"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (c *CatalogConfig) Timeout() time.Duration {
	if c.FetchTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c *CheckoutConfig) TTL() time.Duration {
	if c.TokenTTL <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.TokenTTL) * time.Minute
}
