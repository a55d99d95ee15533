// Package dev provides live reload for `blog serve --dev`.
//
// A Watcher observes the pages directory with fsnotify and coalesces
// bursts of events. Each settled batch is handed to a callback, which
// the server wires to ReloadServer.NotifyReload. Browsers connect to
// ReloadPath over a WebSocket using ClientScript, which the layout
// injects only in dev mode.
//
//	reload := dev.NewReloadServer(logger)
//	w := dev.NewWatcher(dev.WatcherConfig{Paths: cfg.WatchDirs()})
//	w.OnChange(func(dev.Change) { reload.NotifyReload() })
//	go w.Run(ctx)
package dev
