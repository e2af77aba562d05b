package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/Lag-KakaoTalk-bot/internal/command"
	appcfg "github.com/park285/Lag-KakaoTalk-bot/internal/config"
	"github.com/park285/Lag-KakaoTalk-bot/internal/images"
	"github.com/park285/Lag-KakaoTalk-bot/internal/irisfast"
	"github.com/park285/Lag-KakaoTalk-bot/internal/meta"
	"github.com/park285/Lag-KakaoTalk-bot/internal/msgcat"
	"github.com/park285/Lag-KakaoTalk-bot/internal/obslog"
	"github.com/park285/Lag-KakaoTalk-bot/internal/overwatch"
	"github.com/park285/Lag-KakaoTalk-bot/internal/owapi"
	"github.com/park285/Lag-KakaoTalk-bot/internal/profile"
	"github.com/park285/Lag-KakaoTalk-bot/internal/storage"
)

const (
	version   = "2.0.0"
	sourceURL = "https://github.com/park285/Lag-KakaoTalk-bot"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cat, err := msgcat.New(os.Getenv("MSGCAT_DIR"))
	if err != nil {
		logger.Fatal("message catalog init failed", zap.Error(err))
	}

	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()

	mctx, mcancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = storage.Migrate(mctx, db)
	mcancel()
	if err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis url invalid", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	client := irisfast.NewClient(cfg.IrisBaseURL, irisfast.WithTimeout(cfg.HTTPTimeout))

	notify := operatorNotifier(client, cat, cfg.OperatorRoom, logger)

	profiles := profile.NewPostgres(db)
	owSvc := overwatch.NewService(
		profiles,
		owapi.New(cfg.OWAPIBaseURL, owapi.WithTimeout(cfg.StatsTimeout)),
		notify,
	)

	catAPI := images.NewCatAPI(cfg.CatAPIKey, images.WithCatTimeout(cfg.HTTPTimeout))
	xkcdSvc := images.NewXKCDService(images.NewXKCDClient(), images.NewComicRepo(db))
	session := images.NewSessionStore(rdb)

	router := command.NewRouter(cfg.BotPrefix, client, cat, cfg.AllowedRooms)
	router.Register(overwatch.NewHandlers(owSvc, profiles, cat, cfg.BotPrefix).Commands()...)
	router.Register(images.NewHandlers(catAPI, xkcdSvc, session, cat).Commands()...)
	router.Register(meta.NewHandlers(time.Now(), version, sourceURL, cfg.BotPrefix).Commands()...)
	router.Register(router.HelpCommand())

	ws := irisfast.NewWebSocket(cfg.IrisWSURL, 5, time.Second)
	ws.OnStateChange(func(state irisfast.WebSocketState) {
		logger.Info("gateway state", zap.String("state", string(state)))
	})
	ws.OnMessage(router.HandleMessage)

	cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = ws.Connect(cctx)
	cancel()
	if err != nil {
		logger.Fatal("gateway connect failed", zap.Error(err))
	}
	logger.Info("lagbot online", zap.String("version", version), zap.String("prefix", cfg.BotPrefix))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	_ = ws.Close(sctx)
}

// operatorNotifier reports upstream breakage to the operator room.
// Fire-and-forget: a failed notification is logged, never retried.
func operatorNotifier(client *irisfast.Client, cat *msgcat.Catalog, room string, logger *zap.Logger) overwatch.Notifier {
	if room == "" {
		return func(string) {}
	}
	return func(detail string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		text := cat.Text("overwatch.operator_alert", map[string]any{"Detail": detail})
		if err := client.SendText(ctx, room, text); err != nil {
			logger.Warn("operator notify failed", zap.Error(err))
		}
	}
}
