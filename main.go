package main

import (
	"github.com/resthub/account_service/config"
	"github.com/resthub/account_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
