package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anrid/world-fertility/pkg/config"
	"github.com/anrid/world-fertility/pkg/logging"
	"github.com/anrid/world-fertility/pkg/plot"
	"github.com/anrid/world-fertility/pkg/stats"
	"github.com/anrid/world-fertility/pkg/viewer"
)

func main() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "./out", "output directory")
	all := fs.Bool("all", false, "export every year in the dataset")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)

	src := stats.NewSource(cfg.Data)
	if err := src.Fetch(cfg.FetchTimeout); err != nil {
		log.Fatalf("No dataset found: %v", err)
	}
	ds, err := stats.Load(src)
	if err != nil {
		log.Fatalf("Could not load dataset: %v", err)
	}
	ds.Info(os.Stdout)

	st, err := viewer.New(ds, cfg.Chart, cfg.DefaultYear)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	years := []int{st.Year()}
	if *all {
		years = st.Years()
	}

	for _, year := range years {
		if err := st.Select(year); err != nil {
			log.Fatal(err)
		}
		if err := export(st, ds, *out); err != nil {
			log.Fatalf("Export %d: %v", year, err)
		}
	}
}

func export(st *viewer.State, ds *stats.Dataset, dir string) error {
	scene, err := st.Render()
	if err != nil {
		return err
	}

	base := filepath.Join(dir, fmt.Sprintf("%d", st.Year()))
	writers := []struct {
		ext   string
		write func(f *os.File) error
	}{
		{".svg", func(f *os.File) error { return plot.WriteSVG(f, scene) }},
		{".png", func(f *os.File) error { return plot.WritePNG(f, scene) }},
		{".xlsx", func(f *os.File) error { return ds.ExportXLSX(f, st.Year()) }},
	}

	for _, w := range writers {
		name := base + w.ext
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := w.write(f); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote: '%s'\n", name)
	}
	return nil
}
