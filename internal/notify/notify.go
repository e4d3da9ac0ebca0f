// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"fmt"
	"os"

	"github.com/Wobas/ngw-geofencer/internal/config"
)

// New builds the [Notifier] selected by cfg.
func New(cfg config.NotifierConfig) (Notifier, error) {
	switch cfg.Kind {
	case config.NotifierConsole, "":
		return NewConsoleNotifier(os.Stdout), nil
	case config.NotifierTelegram:
		return NewTelegramNotifier(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.TelegramChatID), nil
	default:
		return nil, fmt.Errorf("unknown notifier kind %q", cfg.Kind)
	}
}
