package main

import (
	"context"
	"os"
	"time"

	mongoutil "ChatGo/data/database/mgo/mongoutil"
	"ChatGo/global"
	"ChatGo/logger"
	mid "ChatGo/middleware"
	chatmod "ChatGo/module/chat"
	chatservice "ChatGo/module/chat/service"
	usermod "ChatGo/module/user"
	userservice "ChatGo/module/user/service"
	"ChatGo/service/chat"
	mgo "ChatGo/service/mgo"
	"ChatGo/service/storage"
	storageredis "ChatGo/service/storage/redis"
	"ChatGo/tools/security"

	"github.com/gin-gonic/gin"
)

func main() {
	conf := global.Load()
	global.ConfigIds()

	if conf.EnvMode == "PRODUCTION" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Mongo comes up in the background; routes wait for it below.
	mgo.StartAsync(context.Background(), &mongoutil.Config{
		Uri:      conf.MongoURI,
		Database: conf.MongoDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mgo.WaitReady(ctx, mgo.Manager()); err != nil {
		logger.Errorf("[boot] mongo not ready: %v", err)
		os.Exit(1)
	}

	// The presence mirror is optional; without redis the registry alone is
	// authoritative.
	mirror := storage.NewNoopMirror()
	if conf.RedisAddr != "" {
		if err := storageredis.InitRedis(storageredis.Config{
			Addr:     conf.RedisAddr,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
		}); err != nil {
			logger.Warnf("[boot] redis unavailable, presence mirror disabled: %v", err)
		} else {
			mirror = storage.NewRedisMirror()
		}
	}

	jwtOpts := security.DefaultOptions(conf.JWTSecret)
	jwtOpts.TTL = conf.TokenTTL
	auth := chat.NewAuthenticator(jwtOpts, userservice.Loader{})

	srv := chat.NewServer(chatservice.MessageStore{}, mirror, auth, chat.Config{
		FanoutWorkers: conf.FanoutWorkers,
		SendQueueSize: conf.SendQueueSize,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mid.Origin(os.Getenv("CLIENT_URL")))

	r.GET("/ws", srv.HandleWS)
	usermod.RegisterRoutes(r)
	chatmod.RegisterRoutes(r)

	logger.Infof("[boot] listening on :%s env=%s", conf.Port, conf.EnvMode)
	if err := r.Run(":" + conf.Port); err != nil {
		logger.Errorf("[boot] http server failed: %v", err)
		os.Exit(1)
	}
}
