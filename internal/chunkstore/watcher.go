package chunkstore

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DirWatcher logs changes to a Store's directory at debug level, so that
// external changes — an operator running `rm` by hand, a misconfigured second
// node pointed at the same path — show up in the node's log. It does not tell
// them apart from the store's own writes and deletes, which are logged too.
// It does not participate in the protocol; it is purely a diagnostic tripwire.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	done    chan struct{}
}

// WatchDir starts watching dir and logging every fsnotify event it reports.
func WatchDir(dir string, logger *zap.Logger) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	dw := &DirWatcher{watcher: w, logger: logger, done: make(chan struct{})}
	go dw.loop()
	return dw, nil
}

func (dw *DirWatcher) loop() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.logger.Debug("chunk directory event",
				zap.String("name", event.Name),
				zap.String("op", event.Op.String()))
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.logger.Warn("chunk directory watch error", zap.Error(err))
		case <-dw.done:
			return
		}
	}
}

// Close stops the watcher.
func (dw *DirWatcher) Close() error {
	close(dw.done)
	return dw.watcher.Close()
}
