package main

import (
	"context"
	"fmt"
	"log/slog"

	redisDriver "github.com/redis/go-redis/v9"

	"im-client/internal/apiclient"
	"im-client/internal/auth"
	"im-client/internal/config"
	"im-client/internal/imtypes"
	appKafka "im-client/internal/kafka"
	appRedis "im-client/internal/redis"
	"im-client/internal/responder"
	"im-client/internal/session"
	"im-client/internal/storage"
)

// dependencies builds the collaborators selected by the config and closes
// whatever it opened.
type dependencies struct {
	cfg    config.Config
	logger *slog.Logger

	redis   *redisDriver.Client
	closers []func()
}

func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// Redis connects on first use.
func (d *dependencies) Redis(ctx context.Context) (*redisDriver.Client, error) {
	if d.redis != nil {
		return d.redis, nil
	}
	client := redisDriver.NewClient(&redisDriver.Options{
		Addr:     d.cfg.Redis.Addr,
		Password: d.cfg.Redis.Password,
		DB:       d.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("无法连接到 Redis: %w", err)
	}
	d.logger.Info("成功连接到 Redis", slog.String("addr", d.cfg.Redis.Addr))
	d.redis = client
	d.closers = append(d.closers, func() { _ = client.Close() })
	return client, nil
}

func (d *dependencies) Backend(ctx context.Context) (imtypes.Backend, error) {
	switch d.cfg.Backend.Mode {
	case config.BackendAPI:
		client, err := apiclient.NewFromConfig(d.cfg.API, d.logger)
		if err != nil {
			return nil, err
		}
		d.logger.Info("using REST collaborator", slog.String("base_url", d.cfg.API.BaseURL),
			slog.Bool("directory_auth", d.cfg.API.DirectoryAuth))
		return client, nil

	case config.BackendDirect:
		db, err := storage.InitDB(d.cfg.Database, d.logger)
		if err != nil {
			return nil, fmt.Errorf("无法初始化数据库: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			d.closers = append(d.closers, func() { _ = sqlDB.Close() })
		}
		if err := storage.AutoMigrateTables(db, d.logger); err != nil {
			d.logger.Warn("数据库表迁移可能失败", slog.Any("error", err))
		}
		client, err := d.Redis(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewGateway(db, d.cfg.Auth, appRedis.NewRedisTokenBlacklist(client), d.logger), nil
	}
	return nil, fmt.Errorf("unsupported backend mode: %q", d.cfg.Backend.Mode)
}

// Responder picks the automated responder. The REST responder needs the REST
// backend, so direct mode always answers locally.
func (d *dependencies) Responder(backend imtypes.Backend) (imtypes.ResponderGateway, error) {
	switch d.cfg.Responder.Mode {
	case config.ResponderScripted:
		return responder.NewScripted(), nil
	case config.ResponderAPI:
		if remote, ok := backend.(imtypes.ResponderGateway); ok {
			return remote, nil
		}
		d.logger.Info("backend has no remote responder, using the scripted one")
		return responder.NewScripted(), nil
	}
	return nil, fmt.Errorf("unsupported responder mode: %q", d.cfg.Responder.Mode)
}

func (d *dependencies) CredentialStore(ctx context.Context) (auth.CredentialStore, error) {
	switch d.cfg.Credentials.Store {
	case config.CredentialStoreFile:
		return auth.NewFileCredentialStore(d.cfg.Credentials.FilePath), nil
	case config.CredentialStoreRedis:
		client, err := d.Redis(ctx)
		if err != nil {
			return nil, err
		}
		return appRedis.NewCredentialStore(client, d.cfg.Credentials.RedisKey), nil
	}
	return nil, fmt.Errorf("unsupported credential store: %q", d.cfg.Credentials.Store)
}

func (d *dependencies) Events() (session.EventSink, error) {
	if !d.cfg.Kafka.Enabled {
		return session.NopSink{}, nil
	}
	producer, err := appKafka.NewConfluentKafkaProducer(d.cfg.Kafka, d.logger)
	if err != nil {
		return nil, fmt.Errorf("无法创建 Kafka 生产者: %w", err)
	}
	sink := appKafka.NewEventSink(producer, d.cfg.Kafka.EventsTopic)
	d.closers = append(d.closers, sink.Close)
	d.logger.Info("publishing session events", slog.String("topic", d.cfg.Kafka.EventsTopic))
	return sink, nil
}
