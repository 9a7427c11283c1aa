package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/db/controller/setting"
)

const titleSettingName = "portal_title"

func seed(cfg *config.Config, db *gorm.DB) {
	// Record the configured portal title so operators can override it later
	// without a restart.
	if _, err := setting.Get(db, titleSettingName); err == nil {
		return
	}

	if _, err := setting.Set(db, titleSettingName, []byte(cfg.Title)); err != nil {
		log.Error().Err(err).Msg("failed to seed portal title setting")
	}
}
