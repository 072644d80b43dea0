package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/ownpainting/markup"
	"github.com/ownpainting/markup/renderers"
	"github.com/ownpainting/markup/renderers/svg"
	"github.com/tdewolff/argp"
	"golang.org/x/sync/errgroup"
)

type Main struct{}

type Render struct {
	Output  []string `short:"o" desc:"Output filenames, the format is given by the extension"`
	Scale   float64  `short:"s" default:"1" desc:"Pixels per content unit of PNG output"`
	Minify  bool     `desc:"Minify SVG output"`
	Config  string   `short:"c" desc:"TOML configuration file"`
	Verbose bool     `short:"v" desc:"Verbose logging"`
	Input   string   `index:"0" desc:"JSON shape-list document"`
}

type Measure struct {
	Config  string `short:"c" desc:"TOML configuration file"`
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Input   string `index:"0" desc:"JSON shape-list document"`
}

type Convert struct {
	Config  string `short:"c" desc:"TOML configuration file"`
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Input   string `index:"0" desc:"JSON shape-list document"`
}

type GeoJSON struct {
	Config  string `short:"c" desc:"TOML configuration file"`
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Input   string `index:"0" desc:"JSON shape-list document"`
}

func main() {
	root := argp.NewCmd(&Main{}, "Annotation markup toolkit")
	root.AddCmd(&Render{}, "render", "Render a document to SVG, PNG or PDF")
	root.AddCmd(&Measure{}, "measure", "List the measurements of a document")
	root.AddCmd(&Convert{}, "convert", "Convert a document to wire records")
	root.AddCmd(&GeoJSON{}, "geojson", "Convert a document to a GeoJSON feature collection")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Main) Run() error {
	return argp.ShowUsage
}

// setup installs the logger and returns the options read from the configuration file on top of the defaults.
func setup(config string, verbose bool) (*markup.Options, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	markup.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := markup.DefaultOptions
	if config != "" {
		if _, err := toml.DecodeFile(config, &opts); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return &opts, nil
}

// load reads a JSON shape-list document into a canvas of its own size, which recomputes all measurements against its calibration base.
func load(filename string, opts *markup.Options) (*markup.Canvas, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var doc markup.JSONDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", filename, err)
	}
	size := markup.Size{W: doc.Width, H: doc.Height}
	shapes, skipped, err := doc.ToShapes(size)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", filename, err)
	}
	if size.Empty() {
		for _, s := range shapes {
			b := s.Bounds()
			size.W, size.H = max(size.W, b.X+b.W), max(size.H, b.Y+b.H)
		}
	}

	c := markup.New(size, opts)
	c.Load(shapes)
	if 0 < skipped {
		markup.Logger().Warn("skipped shapes", "file", filename, "count", skipped)
	}
	return c, skipped, nil
}

func (cmd *Render) Run() error {
	if cmd.Input == "" || len(cmd.Output) == 0 {
		return argp.ShowUsage
	}
	opts, err := setup(cmd.Config, cmd.Verbose)
	if err != nil {
		return err
	}
	c, _, err := load(cmd.Input, opts)
	if err != nil {
		return err
	}
	doc := c.Document()

	svgOpts := svg.DefaultOptions
	svgOpts.Minify = cmd.Minify

	g := errgroup.Group{}
	for _, filename := range cmd.Output {
		g.Go(func() error {
			svgOpts := svgOpts
			return renderers.Write(filename, doc, opts, renderers.Scale(cmd.Scale), &svgOpts)
		})
	}
	return g.Wait()
}

func (cmd *Measure) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	opts, err := setup(cmd.Config, cmd.Verbose)
	if err != nil {
		return err
	}
	c, _, err := load(cmd.Input, opts)
	if err != nil {
		return err
	}

	if _, err := c.Calibration().Require(); err != nil {
		fmt.Fprintln(os.Stderr, "WARNING:", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tMEASUREMENT")
	for _, s := range c.Shapes() {
		if !s.Kind.IsMeasure() {
			continue
		}
		label := s.Label(opts.Unit, opts.AreaUnit)
		if s.Kind == markup.RulerBaseKind && s.Number != nil {
			label = fmt.Sprintf("%g%s", *s.Number, opts.Unit)
		} else if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%s\t%v\t%s\n", s.ID, s.Kind, label)
	}
	return w.Flush()
}

func (cmd *Convert) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	opts, err := setup(cmd.Config, cmd.Verbose)
	if err != nil {
		return err
	}
	c, _, err := load(cmd.Input, opts)
	if err != nil {
		return err
	}

	set := markup.Export(c.Document())
	for _, rec := range set.Records {
		fmt.Printf("%s\t%d\t%d\t%s\t%q\n", rec.ID, rec.Category, rec.Type, rec.Properties, rec.Path)
	}
	return nil
}

func (cmd *GeoJSON) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	opts, err := setup(cmd.Config, cmd.Verbose)
	if err != nil {
		return err
	}
	c, _, err := load(cmd.Input, opts)
	if err != nil {
		return err
	}

	b, err := c.Document().FeatureCollection(opts).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(b))
	return err
}
