package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxLogFiles is how many session logs are kept in the log directory.
const DefaultMaxLogFiles = 50

// Logger is the process-wide logger. It discards everything until
// Initialize enables debug logging.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up Logger and slog's default logger. With debug off and no
// explicit file, logs are discarded. Without an explicit file each run gets
// its own UUID-named file in the state directory. It returns the log file
// path, or "" when logging is off.
func Initialize(debug bool, logFile string, maxLogFiles int) (string, error) {
	if !debug && logFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		slog.SetDefault(Logger)
		return "", nil
	}

	path := logFile
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("create log directory: %w", err)
		}
	} else {
		dir, err := logDir()
		if err != nil {
			return "", fmt.Errorf("get log directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create log directory: %w", err)
		}
		if maxLogFiles > 0 {
			if err := rotateLogs(dir, maxLogFiles); err != nil {
				fmt.Fprintf(os.Stderr, "warning: log rotation failed: %v\n", err)
			}
		}
		path = filepath.Join(dir, uuid.NewString()+".log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(Logger)
	Logger.Info("logging initialized", "log_file", path)
	return path, nil
}

// rotateLogs removes the oldest .log files so that, with the new file, at
// most maxLogFiles remain.
func rotateLogs(dir string, maxLogFiles int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read log directory: %w", err)
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, e.Name()), modTime: info.ModTime()})
	}
	if len(files) < maxLogFiles {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	excess := len(files) - maxLogFiles + 1
	for i := 0; i < excess; i++ {
		if err := os.Remove(files[i].path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: remove old log %s: %v\n", files[i].path, err)
		}
	}
	return nil
}

func logDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "liftr"), nil
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(local, "liftr", "logs"), nil
	default:
		state := os.Getenv("XDG_STATE_HOME")
		if state == "" {
			state = filepath.Join(home, ".local", "state")
		}
		return filepath.Join(state, "liftr"), nil
	}
}
