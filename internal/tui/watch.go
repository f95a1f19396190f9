package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

type watchMsg struct{}

// watchCmd starts watching the project directory and forwards change
// notifications to ch. The watcher lives for the rest of the process.
func watchCmd(dir string, ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			log.WithFields(log.Fields{"error": err}).Debug("fsnotify unavailable")
			return nil
		}
		if err := w.Add(dir); err != nil {
			log.WithFields(log.Fields{"dir": dir, "error": err}).Debug("cannot watch project dir")
			w.Close()
			return nil
		}
		go func() {
			for {
				select {
				case _, ok := <-w.Events:
					if !ok {
						return
					}
					select {
					case ch <- struct{}{}:
					default:
					}
				case _, ok := <-w.Errors:
					if !ok {
						return
					}
				}
			}
		}()
		return nil
	}
}

// waitWatch blocks until the watcher reports a change.
func waitWatch(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return watchMsg{}
	}
}
