package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/lognitor/go-callsite/configs"
	"github.com/lognitor/go-callsite/logger"
	"github.com/lognitor/go-callsite/writers"
)

type user struct {
	Id   string `json:"id"`
	Body string `json:"body"`
}

var errNotFound = errors.New("user not found")

func main() {
	cfg := configs.Default()
	cfg.Filter.Tokens = []string{}
	cfg.SetOverride(configs.MethodError, configs.MethodOverride{
		Separator:  &configs.SeparatorOverride{Color: configs.Ptr("red")},
		AddNewLine: configs.Ptr(true),
	})
	cfg.SetOverride(configs.MethodDebug, configs.MethodOverride{
		ShowFileName: configs.Ptr(false),
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	l := logger.New(writers.NewStdConsole(), cfg)
	defer l.Close()

	i := logger.NewInterceptor(l, nil)
	i.Install()
	defer i.Restore()

	for n := 0; n < 3; n++ {
		u, err := find(n)
		if err != nil {
			l.Error(err)
			continue
		}
		l.Info(u)
	}

	l.Debug("debug lines hide the file name")
	log.Printf("standard library log goes through the logger too")
}

func find(n int) (user, error) {
	if n == 2 {
		return user{}, fmt.Errorf("find %d: %w", n, errNotFound)
	}
	return user{Id: fmt.Sprintf("%d", n), Body: fmt.Sprintf("body %d", n)}, nil
}
