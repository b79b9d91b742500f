package config

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	ContractAddress string `env:"CONTRACT_ADDRESS,required"`
	TmWSURL         string `env:"TM_WS_URL,default=wss://k8s.testnet.tm.injective.network/websocket"`
	LCDURL          string `env:"LCD_URL,default=https://k8s.testnet.lcd.injective.network"`
	SignerURL       string `env:"SIGNER_URL,default=http://localhost:8090"`
	WalletAddress   string `env:"WALLET_ADDRESS"`
	NotifiSID       string `env:"NOTIFI_SID"`
	NotifiSecret    string `env:"NOTIFI_SECRET"`
	NotifiEnv       string `env:"NOTIFI_ENV,default=Development"`
	SentryURL       string `env:"SENTRY_URL"`
	SiteBaseURL     string `env:"SITE_BASE_URL"`
	DiscordURL      string `env:"DISCORD_URL"`
}

func New(ctx context.Context, envpath string) (*Config, error) {
	if envpath != "" {
		log.Default().Println("loading env from file: ", envpath)
		err := godotenv.Load(envpath)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	err := envconfig.Process(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
