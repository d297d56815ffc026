// validate.go: sanity checks applied to settings after unmarshaling
package conf

import (
	"fmt"
	"strconv"
)

// ValidateSettings checks that the loaded settings are internally consistent.
func ValidateSettings(settings *Settings) error {
	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return fmt.Errorf("no database backend enabled, enable either output.sqlite or output.mysql")
	}
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return fmt.Errorf("both database backends enabled, enable only one of output.sqlite or output.mysql")
	}

	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		return fmt.Errorf("output.sqlite.path must not be empty")
	}

	if settings.Output.MySQL.Enabled {
		if settings.Output.MySQL.Database == "" || settings.Output.MySQL.Host == "" {
			return fmt.Errorf("output.mysql requires database and host")
		}
		if _, err := strconv.Atoi(settings.Output.MySQL.Port); err != nil {
			return fmt.Errorf("output.mysql.port is not a valid port number: %q", settings.Output.MySQL.Port)
		}
	}

	if settings.WebServer.Enabled {
		port, err := strconv.Atoi(settings.WebServer.Port)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("webserver.port is not a valid port number: %q", settings.WebServer.Port)
		}
	}

	if settings.Session.TTLMinutes <= 0 {
		return fmt.Errorf("session.ttlminutes must be positive, got %d", settings.Session.TTLMinutes)
	}

	return nil
}
