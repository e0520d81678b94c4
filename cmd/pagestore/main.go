// Command pagestore runs a scripted pin/unpin/flush session against a
// page file and prints buffer-pool statistics, grounded on the
// teacher's cmd/demo_buffer_pool smoke-test scripts.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zhukovaskychina/pagestore/bufferpool"
	"github.com/zhukovaskychina/pagestore/internal/config"
	"github.com/zhukovaskychina/pagestore/internal/logging"
	"github.com/zhukovaskychina/pagestore/pagefile"
)

func main() {
	cfgPath := flag.String("config", "", "path to an INI config file (optional)")
	numPages := flag.Int("pages", 8, "number of pages to create in the page file")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pagestore: loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logging.Init(logging.Config{Level: cfg.LogLevel})

	if cfg.PageFilePath == "" {
		f, err := os.CreateTemp("", "pagestore-*.dat")
		if err != nil {
			fmt.Fprintf(os.Stderr, "pagestore: creating scratch file: %v\n", err)
			os.Exit(1)
		}
		cfg.PageFilePath = f.Name()
		f.Close()
		defer os.Remove(cfg.PageFilePath)
	}

	if err := run(cfg, *numPages); err != nil {
		fmt.Fprintf(os.Stderr, "pagestore: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, numPages int) error {
	if err := pagefile.CreatePageFile(cfg.PageFilePath); err != nil {
		return err
	}
	pf, err := pagefile.OpenPageFile(cfg.PageFilePath)
	if err != nil {
		return err
	}
	if err := pf.EnsureCapacity(numPages); err != nil {
		return err
	}
	if err := pf.Close(); err != nil {
		return err
	}

	logging.Infof("opening pool over %s: %d pages, strategy=%s, frames=%d",
		cfg.PageFilePath, numPages, cfg.Strategy, cfg.PoolSize)

	bp, err := bufferpool.InitBufferPool(cfg.PageFilePath, cfg.PoolSize, bufferpool.StrategyTag(cfg.Strategy), nil)
	if err != nil {
		return err
	}

	for i := 0; i < numPages; i++ {
		h, err := bp.PinPage(i)
		if err != nil {
			return err
		}
		copy(h.Data, fmt.Sprintf("page-%d", i))
		if err := bp.MarkDirty(h); err != nil {
			return err
		}
		if err := bp.UnpinPage(h); err != nil {
			return err
		}
	}

	logging.Infof("after warm-up: reads=%d writes=%d", bp.GetNumReadIO(), bp.GetNumWriteIO())

	h, err := bp.PinPage(0)
	if err != nil {
		return err
	}
	logging.Infof("re-pinned page 0, contents=%q", string(h.Data[:6]))
	if err := bp.UnpinPage(h); err != nil {
		return err
	}

	if err := bp.ForceFlushPool(); err != nil {
		return err
	}

	if err := bp.ShutdownBufferPool(); err != nil {
		return err
	}

	logging.Infof("final stats: reads=%d writes=%d", bp.GetNumReadIO(), bp.GetNumWriteIO())
	fmt.Printf("reads=%d writes=%d\n", bp.GetNumReadIO(), bp.GetNumWriteIO())
	return nil
}
