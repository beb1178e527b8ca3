package ioc

import (
	"log"
	"os"
	"time"

	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/web"
	"github.com/codearena/contest_relay/web/jwt"
	"github.com/codearena/contest_relay/web/middleware"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func InitGinServer(l *zap.Logger, jwtHandler jwt.Handler, db *gorm.DB,
	contestHandler *web.ContestHandler,
	submissionHandler *web.SubmissionHandler,
	standingsHandler *web.StandingsHandler,
	adminHandler *web.AdminHandler,
	eventsHandler *web.EventsHandler,
	healthHandler *web.HealthHandler) *web.GinServer {
	var cfg config.GinConfig
	err := viper.UnmarshalKey(cfg.Key(), &cfg)
	if err != nil {
		log.Panicf("unmarshal gin config failed, err: %v", err)
	}

	// 优先使用环境变量中设置的服务端口
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if err = web.RegisterValidations(); err != nil {
		log.Panicf("register validations failed, err: %v", err)
	}

	var adminCfg config.AdminConfig
	if err = viper.UnmarshalKey(adminCfg.Key(), &adminCfg); err != nil {
		log.Panicf("unmarshal admin config failed, err: %v", err)
	}

	corsBuilder := middleware.NewCORSMiddlewareBuilder(
		cfg.AllowOrigins,
		cfg.AllowMethods,
		cfg.AllowHeaders,
		cfg.ExposeHeaders,
		cfg.AllowCredentials,
		time.Duration(cfg.MaxAge)*time.Second)
	jwtBuilder := middleware.NewJWTMiddlewareBuilder(jwtHandler, db, l, cfg.CheckContestPath)

	engine := gin.Default()
	adminBuilder := middleware.NewAdminMiddlewareBuilder(adminCfg.UserIDs, l)

	engine.Use(
		corsBuilder.Build(),
		jwtBuilder.CheckContest(),
		adminBuilder.CheckAdmin(),
	)

	pprof.Register(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	contestHandler.Register(engine)
	submissionHandler.Register(engine)
	standingsHandler.Register(engine)
	adminHandler.Register(engine)
	eventsHandler.Register(engine)
	healthHandler.Register(engine)

	return &web.GinServer{
		Engine: engine,
		Addr:   cfg.Addr,
	}
}
