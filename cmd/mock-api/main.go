package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"unbelong/internal/mockapi"
)

func main() {
	// serves data/fixtures.json with the gallery API routes
	addr := flag.String("addr", ":9000", "listen address")
	dataPath := flag.String("data", "data/fixtures.json", "fixture file")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)

	fixture, err := mockapi.LoadFixture(*dataPath)
	if err != nil {
		slog.Error("load fixture", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("mock-api listening",
		slog.String("addr", *addr),
		slog.Int("illustrations", len(fixture.Illustrations)),
		slog.Int("works", len(fixture.Works)),
	)
	if err := http.ListenAndServe(*addr, mockapi.New(fixture).Handler()); err != nil {
		slog.Error("mock-api stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
