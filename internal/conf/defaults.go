// defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "BirdList-Go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "birdlist.log")
	viper.SetDefault("main.log.maxsize", 100)
	viper.SetDefault("main.log.maxage", 28)
	viper.SetDefault("main.log.backups", 3)
	viper.SetDefault("main.log.compress", false)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "birdlist.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "birdlist")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "birdlist")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "webserver.log")

	viper.SetDefault("session.ttlminutes", 1440)

	viper.SetDefault("seed.speciesfile", "species.csv")
	viper.SetDefault("seed.sightingsfile", "sightings.csv")
	viper.SetDefault("seed.checklistsfile", "checklists.csv")
}
