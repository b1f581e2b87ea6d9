package config

import (
	"context"
	"path/filepath"

	"cerebro/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// WatchLogLevel 监听配置文件变更，仅热更新日志级别；其余字段需重启生效。
func WatchLogLevel(ctx context.Context, path string, apply func(level string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(abs)
				if err != nil {
					logger.Warnf("config reload skipped: %v", err)
					continue
				}
				logger.Infof("config changed, applying log_level=%s", cfg.App.LogLevel)
				apply(cfg.App.LogLevel)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("config watcher error: %v", err)
			}
		}
	}()
	return nil
}
