package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader 配置文件重新加载成功后调用
type Reloader func(cfg *config.Config)

type Loader func(dir string) (*config.Config, error)

type Watcher struct {
	file      string
	load      Loader
	debounce  time.Duration
	reloaders []Reloader
}

// New 监听 configFile，变更后用 config.LoadConfig 重新读取所在目录
func New(configFile string, reloaders ...Reloader) *Watcher {
	return &Watcher{
		file:      configFile,
		load:      config.LoadConfig,
		debounce:  time.Second,
		reloaders: reloaders,
	}
}

func (w *Watcher) OnReload(r Reloader) {
	w.reloaders = append(w.reloaders, r)
}

// Run 阻塞直到 ctx 结束
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer fw.Close()

	absPath, err := filepath.Abs(w.file)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	// 监听目录而不是文件，编辑器保存时常常是先删除再重建
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// 防抖
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			w.reload(filepath.Dir(absPath))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload(dir string) {
	cfg, err := w.load(dir)
	if err != nil {
		logger.Log.Error("Failed to reload config", zap.Error(err))
		return
	}
	logger.Log.Info("Config reloaded", zap.String("file", w.file))
	for _, r := range w.reloaders {
		r(cfg)
	}
}
