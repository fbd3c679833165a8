package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=5001"`
	JWTSecret             string        `env:"JWT_SECRET,required=true"`
	FrontendOrigin        string        `env:"FRONTEND_ORIGIN,required=true"`
	AuthTokenDuration     time.Duration `env:"AUTH_TOKEN_DURATION,default=1h"`
	ExtendedTokenDuration time.Duration `env:"EXTENDED_TOKEN_DURATION,default=168h"`
	MonitorInterval       time.Duration `env:"MONITOR_INTERVAL,default=30s"`
	LogLevel              string        `env:"LOG_LEVEL,default=INFO"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
