// Package watch reports changes to calendar files made outside the program.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher calls onChange, after a quiet period, when a watched file is
// written or recreated. The directory is watched rather than the file so
// editors that replace the file on save are still noticed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	dirs     map[string]int
	onChange func(string)
	delay    time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	debounce map[string]*time.Timer
	done     chan struct{}
	closed   sync.Once
}

func NewFileWatcher(delay time.Duration, log zerolog.Logger, onChange func(string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		onChange: onChange,
		delay:    delay,
		log:      log,
		debounce: make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	go fw.watch()
	return fw, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; exists {
		return nil // Already watching
	}

	dir := filepath.Dir(absPath)
	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return err
		}
	}
	fw.dirs[dir]++
	fw.files[absPath] = struct{}{}
	return nil
}

func (fw *FileWatcher) RemoveFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; !exists {
		return nil // Not watching
	}
	delete(fw.files, absPath)

	dir := filepath.Dir(absPath)
	fw.dirs[dir]--
	if fw.dirs[dir] == 0 {
		delete(fw.dirs, dir)
		return fw.watcher.Remove(dir)
	}
	return nil
}

// Watching reports whether path is being watched.
func (fw *FileWatcher) Watching(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, ok := fw.files[absPath]
	return ok
}

func (fw *FileWatcher) watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.schedule(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn().Err(err).Msg("file watcher error")

		case <-fw.done:
			return
		}
	}
}

// schedule debounces bursts of events for one file into a single callback.
func (fw *FileWatcher) schedule(name string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, watching := fw.files[name]; !watching {
		return
	}
	if timer, exists := fw.debounce[name]; exists {
		timer.Stop()
	}

	fw.debounce[name] = time.AfterFunc(fw.delay, func() {
		fw.mu.Lock()
		delete(fw.debounce, name)
		_, watching := fw.files[name]
		fw.mu.Unlock()

		select {
		case <-fw.done:
			return
		default:
		}
		if watching && fw.onChange != nil {
			fw.log.Debug().Str("file", name).Msg("file changed on disk")
			fw.onChange(name)
		}
	})
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.closed.Do(func() {
		close(fw.done)

		fw.mu.Lock()
		for _, timer := range fw.debounce {
			timer.Stop()
		}
		fw.mu.Unlock()

		err = fw.watcher.Close()
	})
	return err
}
