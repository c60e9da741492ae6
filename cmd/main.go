package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-console/internal/config"
	"github.com/ukydev/fleet-console/internal/db"
	"github.com/ukydev/fleet-console/internal/store"
)

// app is shared by every subcommand. PersistentPreRunE fills it in.
type app struct {
	cfg *config.Config
	// openKV is replaced in tests.
	openKV func(ctx context.Context, cfg *config.Config) (db.KV, func(), error)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fleetconsole",
		Short:         "Fleet management console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg != nil {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.SetupLogging(); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newAlertsCmd(a),
		newClassifyCmd(),
	)
	return root
}

// openStore opens the configured backend. The returned func releases it.
func (a *app) openStore(ctx context.Context) (*store.Store, func(), error) {
	kv, closeFn, err := a.openKV(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}
	return store.New(kv), closeFn, nil
}

func openKV(ctx context.Context, cfg *config.Config) (db.KV, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("Using in-memory store, data is lost on exit")
		return db.NewMemoryKV(), func() {}, nil
	case config.BackendMongo:
		client, err := db.ConnectMongo(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
		log.WithFields(log.Fields{"db": cfg.MongoDB, "collection": cfg.MongoCollection}).Info("Connected to MongoDB")
		return &db.MongoKV{Collection: coll}, func() { _ = client.Disconnect(context.Background()) }, nil
	default:
		kv, err := db.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", kv.Path()).Info("Opened SQLite store")
		return kv, func() { _ = kv.Close() }, nil
	}
}

func main() {
	a := &app{openKV: openKV}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
