package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/captcha"
	"github.com/tbourn/turret-landing/internal/config"
	"github.com/tbourn/turret-landing/internal/notify"
	"github.com/tbourn/turret-landing/internal/repo"
	"github.com/tbourn/turret-landing/internal/services"
	"github.com/tbourn/turret-landing/internal/storage"
)

// openDB connects to DATABASE_URL and migrates the schema.
func openDB(c config.Config) (*gorm.DB, error) {
	db, err := repo.Open(c.DatabaseURL, repo.Options{Tracing: c.OTEL.Enabled})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// openStore builds the configured file backend.
func openStore(ctx context.Context, c config.Config) (storage.Store, error) {
	if c.Storage.Backend == config.StorageS3 {
		s3, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:    c.Storage.S3Bucket,
			Region:    c.Storage.S3Region,
			Endpoint:  c.Storage.S3Endpoint,
			Prefix:    c.Storage.S3Prefix,
			PathStyle: c.Storage.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	}
	local, err := storage.NewLocal(c.Storage.MediaRoot)
	if err != nil {
		return nil, err
	}
	return local, nil
}

// newNotifier returns the contact notifier. With email disabled messages are
// only logged.
func newNotifier(c config.Config) *notify.Dispatcher {
	var m notify.Mailer = notify.LogMailer{}
	if c.Email.Enabled {
		sm := notify.NewSMTPMailer(c.Email.Host, c.Email.Port, c.Email.Username, c.Email.Password)
		sm.Timeout = c.Email.Timeout
		m = sm
	}
	return notify.NewDispatcher(m, c.Email.From, c.Email.ContactEmail)
}

// newGate builds the bot gate; an empty server key disables verification.
func newGate(c config.Config) *services.BotGate {
	sc := captcha.New(c.Captcha.URL, c.Captcha.ServerKey, c.Captcha.Timeout)
	return services.NewBotGate(sc, c.Captcha.FailClosed)
}
