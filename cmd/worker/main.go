package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"messmate/internal/config"
	"messmate/internal/queue"
	"messmate/internal/stats"
	"messmate/internal/store"
)

// Worker consumes attendance events and maintains the per-day counters
// behind the admin stats endpoint.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)
	counter := stats.NewCounter(redisClient.Client)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		log.Println("memory queue is process-local; events from a separate API process will not arrive")
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "mess:attendance")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for messages...")
	for msg := range messages {
		if msg.Type != "attendance" {
			continue
		}

		// Body is "<record id>|<date>".
		id, date, ok := splitBody(string(msg.Body))
		if !ok {
			log.Printf("skipping malformed message %q", msg.Body)
			continue
		}

		if err := counter.IncrDay(ctx, date); err != nil {
			log.Printf("counter update failed for event %s: %v", id, err)
			continue
		}
		log.Printf("event %s counted for %s", id, date)
	}

	log.Println("worker stopped")
}

func splitBody(s string) (id, date string, ok bool) {
	i := strings.LastIndexByte(s, '|')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
