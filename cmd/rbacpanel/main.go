package main

import (
	"github.com/Egor213/RBACPanel/internal/app"
	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.StringP("config", "c", "", "path to the YAML config (defaults to APP_CONFIG_PATH or config/config.yaml)")
	flag.Parse()

	app.Run(*configPath)
}
