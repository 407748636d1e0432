package main

import (
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/zulandar/orderdesk/internal/config"
	"github.com/zulandar/orderdesk/internal/db"
	"github.com/zulandar/orderdesk/internal/dispatch"
	"github.com/zulandar/orderdesk/internal/intent"
	"github.com/zulandar/orderdesk/internal/store"
)

// connectFromConfig loads the config file and opens the database it names.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, gormDB, nil
}

// buildDispatcher wires the stores and classifier into a Dispatcher.
func buildDispatcher(gormDB *gorm.DB, out io.Writer) (*dispatch.Dispatcher, error) {
	sessions, err := store.NewSessionStore(gormDB)
	if err != nil {
		return nil, err
	}
	orders, err := store.NewOrderStore(gormDB)
	if err != nil {
		return nil, err
	}
	agents, err := store.NewAgentStore(gormDB)
	if err != nil {
		return nil, err
	}
	classifier, err := intent.NewClassifier(intent.DefaultCorpus())
	if err != nil {
		return nil, err
	}
	return dispatch.New(dispatch.Opts{
		Sessions:   sessions,
		Orders:     orders,
		Agents:     agents,
		Classifier: classifier,
		Out:        out,
	})
}
