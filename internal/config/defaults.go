package config

import (
	"path/filepath"
	"time"

	"github.com/Strum355/log"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const appName = "moodtune"

func initDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8081")
	v.SetDefault("http.cors_origin", "http://localhost:3000")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", defaultSQLitePath())
	v.SetDefault("storage.postgres_dsn", "")

	v.SetDefault("redis.address", "")

	v.SetDefault("catalog.driver", "fs")
	v.SetDefault("catalog.root", "songs")
	v.SetDefault("catalog.public_base_url", "http://localhost:8081")
	v.SetDefault("catalog.cache_ttl", 5*time.Minute)
	v.SetDefault("catalog.remote_url", "")
	v.SetDefault("catalog.client_id", "")
	v.SetDefault("catalog.client_secret", "")
	v.SetDefault("catalog.token_url", "")

	v.SetDefault("session.ttl", 24*time.Hour)

	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.queue", 100)
}

// defaultSQLitePath puts the database under the XDG data home, falling
// back to the working directory when that cannot be created.
func defaultSQLitePath() string {
	p, err := xdg.DataFile(filepath.Join(appName, appName+".db"))
	if err != nil {
		log.WithError(err).Warn("cannot create XDG data dir, using working directory")
		return appName + ".db"
	}
	return p
}
