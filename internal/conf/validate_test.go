package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Output: OutputSettings{
			SQLite: SQLiteSettings{Enabled: true, Path: "birdlist.db"},
		},
		WebServer: WebServerSettings{Enabled: true, Port: "8080"},
		Session:   SessionSettings{TTLMinutes: 1440},
	}
}

func TestValidateSettings(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsNoBackend(t *testing.T) {
	s := validSettings()
	s.Output.SQLite.Enabled = false
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettingsBothBackends(t *testing.T) {
	s := validSettings()
	s.Output.MySQL.Enabled = true
	s.Output.MySQL.Database = "birdlist"
	s.Output.MySQL.Host = "localhost"
	s.Output.MySQL.Port = "3306"
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettingsBadPort(t *testing.T) {
	s := validSettings()
	s.WebServer.Port = "not-a-port"
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettingsBadTTL(t *testing.T) {
	s := validSettings()
	s.Session.TTLMinutes = 0
	assert.Error(t, ValidateSettings(s))
}
