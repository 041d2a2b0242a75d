package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/database/mongoclient"
	"github.com/motorline/goapi/base/database/redisclient"
	"github.com/motorline/goapi/base/log"
	"github.com/motorline/goapi/base/metrics"
	bValidator "github.com/motorline/goapi/base/validator"
	"github.com/motorline/goapi/domain/keys"
	mmiddleware "github.com/motorline/goapi/middleware"
	"github.com/motorline/goapi/service/alert"
	"github.com/motorline/goapi/service/cache"
	redisCache "github.com/motorline/goapi/service/cache/provider/redis"
	"github.com/motorline/goapi/service/listing"
	"github.com/motorline/goapi/service/lock"
	"github.com/motorline/goapi/service/query"
	"github.com/motorline/goapi/service/redis"
	account_repository "github.com/motorline/goapi/stores/account/repository"
	account_usecase "github.com/motorline/goapi/stores/account/usecase"
	auction_delivery "github.com/motorline/goapi/stores/auction/delivery/http"
	auction_repository "github.com/motorline/goapi/stores/auction/repository"
	auction_usecase "github.com/motorline/goapi/stores/auction/usecase"
	auth_delivery "github.com/motorline/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/motorline/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/motorline/goapi/stores/auth/usecase"
	bid_delivery "github.com/motorline/goapi/stores/bid/delivery/http"
	bid_repository "github.com/motorline/goapi/stores/bid/repository"
	bid_usecase "github.com/motorline/goapi/stores/bid/usecase"
	hc_delivery "github.com/motorline/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/motorline/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/motorline/goapi/stores/healthcheck/usecase"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "config file path")
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
		Retry:          true,
	})
	redisService := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	// snapshots are shared across instances, so they live in redis
	snapshotCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("snapshot.cacheTtl"),
		Pfx:   keys.PfxBidSnapshot,
		Cache: redisCache.NewRedis(redisService),
	})

	listingClient := listing.NewClient(&listing.ClientCfg{
		HttpClient: http.Client{},
		Url:        viper.GetString("listing.url"),
		Apikey:     viper.GetString("listing.apikey"),
		Timeout:    viper.GetDuration("listing.timeout"),
	})

	alertService := alert.New(alert.Config{
		DiscordBotKey:    viper.GetString("alert.discordBotKey"),
		DiscordChannelId: viper.GetString("alert.discordChannelId"),
		SiteUrl:          viper.GetString("alert.siteUrl"),
	})

	// one lease namespace shared with the closer, so admissions and the
	// closure sweep serialize per auction across both binaries
	locks := lock.New(redisService)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisService)
	accountRepo := account_repository.New(q)
	auctionRepo := auction_repository.New(q)
	ledger := bid_repository.NewLedger(q)

	hc := hc_usecase.New(hcRepo)
	account := account_usecase.New(accountRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), account)
	auction := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Auction: auctionRepo,
		Listing: listingClient,
		Ledger:  ledger,
	})
	bidUsecase := bid_usecase.New(&bid_usecase.BidUseCaseCfg{
		Ledger:  ledger,
		Auction: auction,
		Locks:   locks,
		Cache:   snapshotCache,
		Alert:   alertService,
	})

	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	auction_delivery.New(e, auction)
	bid_delivery.New(e, authMiddleware, bidUsecase)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
