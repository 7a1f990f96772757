// Package main is the entry point for the editcore terminal editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dshills/editcore/internal/config"
	"github.com/dshills/editcore/internal/document"
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/filestore"
	"github.com/dshills/editcore/internal/session"
)

var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath(), "config file path")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("editcore %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	store := filestore.NewStore(filestore.WithMaxFileSize(cfg.MaxFileSize))
	bufOpts := append(cfg.BufferOptions(), buffer.WithFileIO(store))
	mgr := document.NewManager(bufOpts, cfg.ExecutorOptions()...)

	sess, err := session.Open(defaultSessionPath())
	if err != nil {
		log.Fatalf("loading session: %v", err)
	}

	var doc *document.Document
	var pendingPath string
	if path := flag.Arg(0); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			log.Fatalf("resolving %s: %v", path, err)
		}
		doc, err = mgr.Open(context.Background(), abs)
		if err != nil {
			if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
				// new file: open empty, first save creates it
				doc = mgr.NewUntitled()
				pendingPath = abs
			} else {
				log.Fatalf("opening %s: %v", path, err)
			}
		}
	} else {
		doc = mgr.NewUntitled()
	}

	u, err := newUI(doc, cfg, sess)
	if err != nil {
		log.Fatalf("initializing terminal: %v", err)
	}
	u.pendingPath = pendingPath
	if err := u.run(); err != nil {
		log.Fatalf("editor: %v", err)
	}

	if err := sess.Save(); err != nil {
		log.Printf("saving session: %v", err)
	}
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "editcore", "editcore.toml")
	}
	return "editcore.toml"
}

func defaultSessionPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "editcore", "session.json")
	}
	return ".editcore-session.json"
}
