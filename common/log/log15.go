package log

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Config controls the root log handler.
type Config struct {
	// Debug lowers the stderr level from warn to debug.
	Debug bool
	// ErrorFile, when set, also receives error records as JSON lines.
	ErrorFile string
	// Writer replaces stderr; used by tests.
	Writer io.Writer
}

func init() {
	log15.Root().SetHandler(streamHandler(nil, log15.LvlWarn))
}

// Configure swaps the root handler. Stdout is never written to, it carries
// the command results. Outside debug mode the stream only shows warnings:
// errors are reported by the command itself and go to ErrorFile.
func Configure(cfg Config) error {
	stream := streamHandler(cfg.Writer, log15.LvlDebug)
	if !cfg.Debug {
		stream = log15.FilterHandler(func(r *log15.Record) bool {
			return r.Lvl == log15.LvlWarn
		}, stream)
	}
	handlers := []log15.Handler{stream}

	if cfg.ErrorFile != "" {
		if _, err := CreateDirIfMissing(filepath.Dir(cfg.ErrorFile)); err != nil {
			return err
		}
		fh, err := log15.FileHandler(cfg.ErrorFile, log15.JsonFormat())
		if err != nil {
			return errors.Wrapf(err, "error opening log file [%s]", cfg.ErrorFile)
		}
		handlers = append(handlers, log15.LvlFilterHandler(log15.LvlError, fh))
	}

	log15.Root().SetHandler(log15.SyncHandler(log15.MultiHandler(handlers...)))
	return nil
}

func streamHandler(w io.Writer, lvl log15.Lvl) log15.Handler {
	if w != nil {
		return log15.LvlFilterHandler(lvl, log15.StreamHandler(w, log15.LogfmtFormat()))
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return log15.LvlFilterHandler(lvl, log15.StreamHandler(colorable.NewColorableStderr(), log15.TerminalFormat()))
	}
	return log15.LvlFilterHandler(lvl, log15.StreamHandler(os.Stderr, log15.LogfmtFormat()))
}

// CreateDirIfMissing creates a dir for dirPath if not already exists. If the dir is empty it returns true
func CreateDirIfMissing(dirPath string) (bool, error) {
	// if dirPath does not end with a path separator, it leaves out the last segment while creating directories
	if !strings.HasSuffix(dirPath, "/") {
		dirPath = dirPath + "/"
	}
	err := os.MkdirAll(filepath.Dir(dirPath), 0755)
	if err != nil {
		return false, errors.Wrapf(err, "error creating dir [%s]", dirPath)
	}
	return DirEmpty(dirPath)
}

// DirEmpty returns true if the dir at dirPath is empty
func DirEmpty(dirPath string) (bool, error) {
	f, err := os.Open(dirPath)
	if err != nil {
		return false, errors.Wrapf(err, "error opening dir [%s]", dirPath)
	}
	defer f.Close()

	_, err = f.Readdir(1)
	if err == io.EOF {
		return true, nil
	}
	return false, errors.Wrapf(err, "error checking if dir [%s] is empty", dirPath)
}
