// irischeck probes the bot's external dependencies: the Iris gateway,
// Postgres, Redis, and the stats upstream. Useful before deploying.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/park285/Lag-KakaoTalk-bot/internal/irisfast"
	"github.com/park285/Lag-KakaoTalk-bot/internal/storage"
)

func main() {
	baseURL := os.Getenv("IRIS_BASE_URL")
	wsURL := os.Getenv("IRIS_WS_URL")
	databaseURL := os.Getenv("DATABASE_URL")
	redisURL := os.Getenv("REDIS_URL")

	if baseURL == "" {
		log.Fatal("IRIS_BASE_URL is required")
	}

	client := irisfast.NewClient(baseURL, irisfast.WithTimeout(8*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cfg, err := client.GetConfig(ctx)
	if err != nil {
		log.Printf("/config error: %v", err)
	} else {
		log.Printf("/config ok: port=%d polling=%d rate=%d endpoint=%s", cfg.Port, cfg.PollingSpeed, cfg.MessageRate, cfg.WebserverEndpoint)
	}

	if databaseURL != "" {
		db, err := storage.Open(databaseURL)
		if err != nil {
			log.Printf("postgres error: %v", err)
		} else {
			log.Println("postgres ok")
			_ = db.Close()
		}
	} else {
		log.Println("DATABASE_URL not set; skipping db check")
	}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Printf("redis url error: %v", err)
		} else {
			rdb := redis.NewClient(opts)
			pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := rdb.Ping(pctx).Err(); err != nil {
				log.Printf("redis error: %v", err)
			} else {
				log.Println("redis ok")
			}
			pcancel()
			_ = rdb.Close()
		}
	} else {
		log.Println("REDIS_URL not set; skipping redis check")
	}

	if wsURL == "" {
		log.Println("IRIS_WS_URL not set; skipping WS check")
		return
	}

	ws := irisfast.NewWebSocket(wsURL, 5, time.Second)
	ws.OnStateChange(func(state irisfast.WebSocketState) {
		log.Printf("WS state: %s", state)
	})
	ws.OnMessage(func(msg *irisfast.Message) {
		from := "?"
		if msg.Sender != nil {
			from = *msg.Sender
		}
		fmt.Printf("WS msg room=%s from=%s text=%q\n", msg.Room, from, msg.Msg)
	})

	cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ccancel()
	if err := ws.Connect(cctx); err != nil {
		log.Printf("WS connect error: %v", err)
		return
	}

	// Observe for a short window
	t := time.NewTimer(10 * time.Second)
	<-t.C

	_ = ws.Close(context.Background())
}
