package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/world-fertility/pkg/config"
	"github.com/anrid/world-fertility/pkg/logging"
	"github.com/anrid/world-fertility/pkg/stats"
	"github.com/anrid/world-fertility/pkg/viewer"
)

func main() {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	dump := fs.Bool("dump", false, "dump the rendered axes and scales")
	asJSON := fs.Bool("json", false, "print the records of the year as JSON")
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
	scene, err := st.Render()
	if err != nil {
		log.Fatal(err)
	}

	// New locale number printer.
	p := message.NewPrinter(language.English)

	c := st.Controls()
	first, last := st.Bounds()
	p.Printf("Year %d (%d - %d)  prev disabled: %v  next disabled: %v\n\n",
		c.Year, first, last, c.PrevDisabled, c.NextDisabled)

	xd, yd := scene.XAxis.Scale.Domain, scene.YAxis.Scale.Domain
	p.Printf("Fertility rate  : %.2f - %.2f\n", xd[0], xd[1])
	p.Printf("Life expectancy : %.2f - %.2f\n\n", yd[0], yd[1])

	for i, pt := range scene.Points {
		r := pt.Record
		p.Printf("%03d. %-30s  fr %5.2f  le %6.2f  pop %15.f  ->  (%6.1f, %6.1f) r=%5.2f\n",
			i+1, r.Location, r.FertilityRate, r.LifeExpectancy, r.PopMlns*1_000_000, pt.X, pt.Y, pt.R)
		logging.Debugf("%s", strings.Join(pt.Tooltip.Lines(), " | "))
	}

	if *asJSON {
		if err := stats.Dump(os.Stdout, ds.Filter(st.Year())); err != nil {
			log.Fatalf("could not dump records: %v", err)
		}
	}
	if *dump {
		spew.Dump(scene.XAxis, scene.YAxis, scene.Radius)
	}
}
