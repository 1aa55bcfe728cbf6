package main

import (
	"log"
	"os"
	"sync"

	"github.com/lognitor/go-callsite/configs"
	"github.com/lognitor/go-callsite/logger"
	"github.com/lognitor/go-callsite/writers"
)

func main() {
	cfg, err := configs.Load(os.Getenv("CALLSITE_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// examples are built inside this module's checkout
	cfg.Filter.Tokens = []string{}

	l := logger.New(writers.NewStdConsole(), cfg)
	defer func() {
		if err = l.Close(); err != nil {
			log.Fatalf("failed to close logger: %s", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i <= 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			test(l)
		}()
	}
	wg.Wait()
}

func test(l *logger.Logger) {
	for i := 0; i < 3; i++ {
		l.Infof("hello there %d %v", i, struct{}{})
	}
}
