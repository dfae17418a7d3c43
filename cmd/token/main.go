// Command token mints a bearer token for the plantcare API using the
// server's JWT_SIGNING_KEY.
//
//	JWT_SIGNING_KEY=secret go run ./cmd/token -gardener ana -device pixel-7
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "plantcare/internal/jwt_token"
	"plantcare/internal/platform/config"
	"plantcare/internal/platform/logger"
)

func main() {
	gardener := flag.String("gardener", "", "token subject")
	device := flag.String("device", "", "app install label")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, "text")

	if !cfg.AuthEnabled() {
		log.Error("JWT_SIGNING_KEY must be set")
		os.Exit(2)
	}

	raw, err := jwttoken.NewService(cfg.JWTSigningKey).Issue(*gardener, *device, *ttl)
	if err != nil {
		log.Error("issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(raw)
}
