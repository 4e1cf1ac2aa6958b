package wire

import (
	"Mapdrop/internal/api"
	"Mapdrop/internal/api/config"
	"Mapdrop/internal/api/handler"
	"Mapdrop/internal/job"
	"Mapdrop/internal/pkg/cron"
	"Mapdrop/internal/pkg/storage"
	"Mapdrop/internal/repository"
	"Mapdrop/internal/service"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *mongo.Database
	CronMgr *cron.Manager
}

func BuildApplication(db *mongo.Database, store storage.MediaStore, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	opTimeout := time.Duration(cfg.Mongo.OpTimeout) * time.Second
	postSvc := service.NewPostService(postRepo, opTimeout, cfg.Retention.LocalHour)
	mediaSvc := service.NewMediaService(store)

	handlers := &api.HandlersGroup{
		PostHandler:  handler.NewPostHandler(postSvc),
		MediaHandler: handler.NewMediaHandler(mediaSvc, cfg.Upload.MaxSizeBytes),
	}

	router := api.SetupRouter(handlers, cfg, store)

	retentionJob := job.NewMediaRetentionJob(store, cfg.Retention.LocalHour)
	cronMgr := cron.NewCronManager(retentionJob, cfg.Retention.CronSpec)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
