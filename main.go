package main

import (
	"fmt"
	"os"
	"time"

	"osm-report-server/config"
	"osm-report-server/di"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "prod"
	}

	container := di.NewContainer(env)

	fmt.Println("starting session cleanup job!")
	container.SessionCleanupService.StartPeriodicJob(config.SESSION_CLEANUP_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.OsmReportHttpServer.Start()
}
