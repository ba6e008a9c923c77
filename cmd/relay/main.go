package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	dataDir := env("DATA_DIR", ".data")
	if err := os.MkdirAll(dataDir+"/prefs", 0755); err != nil {
		log.Fatal(err)
	}
	if err := loadDevices(devFile(dataDir)); err != nil {
		log.Fatal(err)
	}

	rl := &relay{dataDir: dataDir, conns: newConnRegistry()}
	router := newRouter(rl)

	addr := ":" + env("PORT", "8080")
	fmt.Println("relay listening on", addr, "(data at", dataDir, ")")
	log.Fatal(http.ListenAndServe(addr, router))
}
