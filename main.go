package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	"tax-engine/internal/cache"
	"tax-engine/internal/engine"
	"tax-engine/internal/handler"
	"tax-engine/internal/rules"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	registry, err := rules.Load(os.Getenv("TAX_RULES_FILE"))
	if err != nil {
		log.Fatalf("Loading tax rules failed: %v", err)
	}
	log.Printf("Tax rules loaded for years %v", registry.Years())

	h := handler.New(engine.New(registry), newCache())

	log.Printf("Tax engine starting on port %s", port)
	if err := fasthttp.ListenAndServe(":"+port, h.Handle); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newCache() cache.Cache {
	ttl := 10 * time.Minute
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid CACHE_TTL %q: %v", v, err)
		}
		ttl = d
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		r := cache.NewRedis(addr, ttl)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := r.Ping(ctx)
		if err == nil {
			log.Printf("Using Redis result cache at %s", addr)
			return r
		}
		log.Printf("Redis at %s unreachable, falling back to in-process cache: %v", addr, err)
		r.Close()
	}

	size := 1024
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid CACHE_SIZE %q: %v", v, err)
		}
		size = n
	}
	log.Printf("Using in-process result cache (%d entries)", size)
	return cache.NewMemory(size, ttl)
}
