package main

import (
	"context"
	"etfoverlap/cmd"
	"etfoverlap/internal/logger"
	"etfoverlap/internal/util"
	"log"
	"os"

	"github.com/robfig/cron/v3"
)

func main() {
	lg := logger.New()
	lg.Infof("starting api, commit %s", os.Getenv("commit_hash"))

	cfg, err := util.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	apiHandler, err := cmd.InitializeDependencies(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.CachePurgeSchedule, func() {
		ctx := logger.WithLogger(context.Background(), lg.With("job", "purgeStaleCache"))
		if _, err := apiHandler.OverlapAnalysisApp.PurgeStaleCache(ctx); err != nil {
			lg.Errorf("failed to purge stale cache: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("invalid CACHE_PURGE_SCHEDULE %q: %v", cfg.CachePurgeSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	err = apiHandler.StartApi(cfg.Port)
	if err != nil {
		log.Fatal(err)
	}
}
