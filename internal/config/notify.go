package config

type NotifyConfig struct {
	TelegramToken   string `yaml:"telegram_token"`
	TelegramAdminID int64  `yaml:"telegram_admin_id"`
}

func loadNotifyConfig() *NotifyConfig {
	return &NotifyConfig{
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminID: getEnvAsInt64("TELEGRAM_ADMIN_CHAT_ID", 0),
	}
}

func (n *NotifyConfig) TelegramEnabled() bool {
	return n.TelegramToken != "" && n.TelegramAdminID != 0
}
