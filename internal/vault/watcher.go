package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of note change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // note file edited or created
	ChangeRemoved                    // note file deleted
)

// Change represents a detected change to a note file in the vault.
type Change struct {
	Kind ChangeKind
	Note string // note name derived from the file
	Path string // file path as reported by the watcher
}

// Watcher monitors a vault tree for markdown changes using fsnotify.
// Events are debounced so a burst of writes to one file yields a single
// change.
type Watcher struct {
	Dir     string
	Changes <-chan Change // read-only external channel

	ignore  map[string]bool
	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given vault directory.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Dir:     dir,
		Changes: ch,
		ignore:  make(map[string]bool),
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Ignore excludes a file path from change delivery. The analyzer's own
// report lives inside the vault, so without this the report write after
// each pass would itself look like a note change and re-trigger the next
// pass, endlessly. Must be called before Start.
func (w *Watcher) Ignore(path string) {
	w.ignore[filepath.Clean(path)] = true
}

// Start registers the vault root and its note subdirectories with the
// watcher and begins delivering changes. fsnotify does not recurse, so
// each directory is added explicitly; skip-listed folders are ignored.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirs[d.Name()] && path != w.Dir {
			return fs.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				// Shutdown: deliver what fits in the buffer without
				// blocking, drop the rest. Stop waits on this loop, so
				// a blocking send here would deadlock it.
				for file := range pending {
					select {
					case w.changes <- w.changeFor(file):
					default:
					}
				}
				return
			}
			if !isNoteFile(event.Name) || w.ignore[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					select {
					case w.changes <- w.changeFor(file):
						delete(pending, file)
					default:
						// Consumer is behind; retry on the next tick
						// rather than wedging the event loop.
					}
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next rescan rebuilds anyway.
		}
	}
}

func isNoteFile(name string) bool {
	return strings.HasSuffix(filepath.Base(name), ".md")
}

func (w *Watcher) changeFor(file string) Change {
	kind := ChangeModified
	if _, err := os.Stat(file); err != nil {
		// File is gone; the event was a remove or rename-away.
		kind = ChangeRemoved
	}
	return Change{
		Kind: kind,
		Note: noteName(file),
		Path: file,
	}
}
