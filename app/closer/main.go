// Command closer scans for auctions past their scheduled end and finalizes
// them. Closing happens through the bid usecase so it takes the same
// per-auction exclusion bids are admitted under.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viney-shih/goroutines"

	"github.com/motorline/goapi/base/backoff"
	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/database/mongoclient"
	"github.com/motorline/goapi/base/database/redisclient"
	"github.com/motorline/goapi/base/goroutine"
	"github.com/motorline/goapi/base/log"
	"github.com/motorline/goapi/base/metrics"
	"github.com/motorline/goapi/domain/auction"
	"github.com/motorline/goapi/domain/bid"
	"github.com/motorline/goapi/domain/keys"
	"github.com/motorline/goapi/service/alert"
	"github.com/motorline/goapi/service/cache"
	redisCache "github.com/motorline/goapi/service/cache/provider/redis"
	"github.com/motorline/goapi/service/listing"
	"github.com/motorline/goapi/service/lock"
	"github.com/motorline/goapi/service/query"
	"github.com/motorline/goapi/service/redis"
	auction_repository "github.com/motorline/goapi/stores/auction/repository"
	auction_usecase "github.com/motorline/goapi/stores/auction/usecase"
	bid_repository "github.com/motorline/goapi/stores/bid/repository"
	bid_usecase "github.com/motorline/goapi/stores/bid/usecase"
)

func init() {
	pflag.Duration("interval", 15*time.Second, "pause between scans")
	pflag.Int32("batch", 100, "max auctions finalized per scan")
	pflag.Int("workers", 8, "finalization worker pool size")
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)

	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/closer/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	ctx.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, false)

	ctx.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCachePool := redisclient.MustConnectRedis(
		viper.GetString("redis_cache.uri"),
		viper.GetString("redis_cache.password"),
		redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		})
	redisService := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

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

	auctionRepo := auction_repository.New(q)
	ledger := bid_repository.NewLedger(q)
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Auction: auctionRepo,
		Listing: listingClient,
		Ledger:  ledger,
	})
	bidUC := bid_usecase.New(&bid_usecase.BidUseCaseCfg{
		Ledger:  ledger,
		Auction: auctionUC,
		// the same lease namespace the api uses, so a closure sweep and an
		// admission on one auction never interleave
		Locks:   lock.New(redisService),
		Cache:   snapshotCache,
		Alert:   alertService,
	})

	interval := viper.GetDuration("interval")
	batch := viper.GetInt32("batch")
	pool := goroutines.NewPool(viper.GetInt("workers"))
	met := metrics.New("closer")

	stopped := make(chan struct{})
	goroutine.RecoverableGo(func() {
		defer close(stopped)
		pacing := backoff.NewConstantBackoff(interval)
		for {
			if err := pacing.Backoff(ctx); err != nil {
				return
			}
			scan(ctx, auctionUC, bidUC, pool, met, batch)
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	cancel()
	<-stopped
	pool.Release()
	log.Log().Info("closer stopped")
}

func scan(
	ctx bCtx.Ctx,
	auctionUC auction.Usecase,
	bidUC bid.Usecase,
	pool *goroutines.Pool,
	met metrics.Service,
	batch int32,
) {
	defer met.BumpTime("scan.time").End()

	now := time.Now().UTC()
	ended, err := auctionUC.ListEndedOpen(ctx, now, batch)
	if err != nil {
		ctx.WithField("err", err).Error("auction.ListEndedOpen failed")
		return
	}
	if len(ended) == 0 {
		return
	}
	ctx.WithField("count", len(ended)).Info("finalizing ended auctions")

	wg := sync.WaitGroup{}
	for _, a := range ended {
		a := a
		wg.Add(1)
		pool.Schedule(func() {
			defer wg.Done()
			if err := bidUC.FinalizeAuction(ctx, a.Id, time.Now().UTC()); err != nil {
				ctx.WithFields(log.Fields{
					"auctionId": a.Id,
					"err":       err,
				}).Error("FinalizeAuction failed")
				met.BumpSum("finalize.err", 1)
			}
		})
	}
	wg.Wait()
}
