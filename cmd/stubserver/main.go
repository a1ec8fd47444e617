package main

import (
	"log"

	"github.com/iliyamo/parking-reservation-dashboard/internal/config"
	"github.com/iliyamo/parking-reservation-dashboard/internal/stub"
)

func main() {
	cfg := config.LoadStub()
	srv := stub.New(cfg)

	addr := ":" + cfg.Port
	log.Printf("stub parking backend listening on %s", addr)

	if err := srv.Start(addr); err != nil {
		log.Fatal(err)
	}
}
