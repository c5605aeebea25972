//go:generate app-config -input ./app.json -output ./config_structs.go -pkg config --struct BaseConfig -extension overrides.yml
//go:generate config-getters -input ./config_structs.go -output config_getters.go
package config

import (
	"fmt"
	"time"
)

func (a BaseConfig) Validate() error {
	if a.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", a.Server.Port)
	}
	return nil
}

func (p Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

func (p Persistence) GetServer() string {
	return p.DSN
}

func (p Persistence) GetOtelIdentifier() string {
	return ""
}

func (s Server) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}
