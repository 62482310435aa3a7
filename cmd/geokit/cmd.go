package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/peterstace/geokit"
	"github.com/peterstace/geokit/featureio"
	"github.com/peterstace/geokit/geom"
	"github.com/peterstace/geokit/rtree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input specifies the file holding the features to index.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "format",
			usage: `
              format specifies the format of the input file, either
              "geojson" or "shapefile".`,
			shorthand:  "f",
			defaultVal: "geojson",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "idfield",
			usage: `
              idfield specifies the feature property or shapefile attribute
              that holds item ids. If empty, GeoJSON feature ids or record
              numbers are used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "maxentries",
			usage: `
              maxentries specifies the maximum number of entries in each
              node of the index.`,
			defaultVal: rtree.DefaultMaxEntries,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "bulk",
			usage: `
              bulk specifies whether to build the index with a single bulk
              load rather than by inserting items one at a time.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel specifies the minimum level of log messages, for
              example "debug", "info" or "warn".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "k",
			usage: `
              k specifies the number of items to return from a nearest
              neighbor search.`,
			shorthand:  "k",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{nearestCmd.Flags()},
		},
		{
			name: "exact",
			usage: `
              exact specifies whether query results must intersect the probe
              geometry rather than only its bounding box.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOKIT")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 {
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch def := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, def, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, def, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, def, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	Root.AddCommand(versionCmd)
	Root.AddCommand(searchCmd)
	Root.AddCommand(nearestCmd)
	Root.AddCommand(queryCmd)
	Root.AddCommand(raycastCmd)
	Root.AddCommand(measureCmd)
	Root.AddCommand(batchCmd)
}

// setConfig reads in the configuration file, if there is one, and sets the
// log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geokit: problem reading configuration file: %w", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("geokit: %w", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geokit",
	Short: "Spatial queries over GeoJSON and shapefile features.",
	Long: `geokit loads features from a GeoJSON or shapefile input, indexes them
in an R-Tree, and answers range, nearest neighbor, intersection, ray casting
and measurement queries about them.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOKIT_var' where 'var' is
the name of the variable to be set. Negative coordinates must follow a '--'
argument so that they are not read as flags.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "geokit v%s\n", geokit.Version)
	},
	DisableAutoGenTag: true,
}

var searchCmd = &cobra.Command{
	Use:   "search minx miny maxx maxy",
	Short: "Find items whose bounding boxes overlap a box.",
	Long: `search writes the items whose bounding boxes overlap the given box
as a GeoJSON FeatureCollection.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseFloats(args)
		if err != nil {
			return err
		}
		e, err := loadEngine()
		if err != nil {
			return err
		}
		return featureio.WriteGeoJSON(cmd.OutOrStdout(), e.Index.Search(geom.NewBBox(c[0], c[1], c[2], c[3])))
	},
	DisableAutoGenTag: true,
}

var nearestCmd = &cobra.Command{
	Use:   "nearest x y",
	Short: "Find the items closest to a point.",
	Long: `nearest writes the k items whose bounding boxes are closest to the
given point, closest first, as a GeoJSON FeatureCollection.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseFloats(args)
		if err != nil {
			return err
		}
		e, err := loadEngine()
		if err != nil {
			return err
		}
		return featureio.WriteGeoJSON(cmd.OutOrStdout(), e.Nearest(geom.Point{X: c[0], Y: c[1]}, Cfg.GetInt("k")))
	},
	DisableAutoGenTag: true,
}

var queryCmd = &cobra.Command{
	Use:   "query probes.geojson",
	Short: "Find items that intersect probe geometries.",
	Long: `query reads probe geometries from a GeoJSON file and writes the items
that intersect any of them as a GeoJSON FeatureCollection. With --exact=false,
items only need to overlap the bounding box of a probe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		probes, err := readGeoJSONFile(args[0], "")
		if err != nil {
			return err
		}
		e, err := loadEngine()
		if err != nil {
			return err
		}
		seen := make(map[*geokit.Item]bool)
		var found []*geokit.Item
		for _, p := range probes {
			var items []*geokit.Item
			if Cfg.GetBool("exact") {
				items = e.QueryIntersecting(p.Geometry)
			} else {
				items = e.Query(p.Geometry)
			}
			for _, it := range items {
				if !seen[it] {
					seen[it] = true
					found = append(found, it)
				}
			}
		}
		return featureio.WriteGeoJSON(cmd.OutOrStdout(), found)
	},
	DisableAutoGenTag: true,
}

var raycastCmd = &cobra.Command{
	Use:   "raycast ox oy dx dy",
	Short: "Find the first item hit by a ray.",
	Long: `raycast casts a ray from (ox, oy) in direction (dx, dy) and prints the
id of the closest item it hits, the hit point, and the distance along the
ray. Polygons are hit only at their exterior rings.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseFloats(args)
		if err != nil {
			return err
		}
		e, err := loadEngine()
		if err != nil {
			return err
		}
		var items []*geokit.Item
		if ext, ok := e.Index.Extent(); ok {
			items = e.Index.Search(ext)
		}
		shapes := make([]geom.Shape, len(items))
		for i, it := range items {
			shapes[i] = it.Geometry
		}
		r := geom.Ray{Origin: geom.Point{X: c[0], Y: c[1]}, Direction: geom.Point{X: c[2], Y: c[3]}}
		h, ok := e.RaycastAll(r, shapes)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no hit")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\t%g\t%g\n", items[h.Index].ID, h.Point.X, h.Point.Y, h.Distance)
		return nil
	},
	DisableAutoGenTag: true,
}

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Print the area and perimeter of each item.",
	Long: `measure prints the id, area and perimeter of each input item, tab
separated. Measures that do not apply to an item are printed as "-".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := loadItems()
		if err != nil {
			return err
		}
		e := geokit.NewEngine(nil)
		for _, it := range items {
			area, err := e.Area(it.Geometry)
			if err != nil && !errors.Is(err, geom.ErrUnsupportedGeometry) {
				return err
			}
			a := measureString(area, err)
			perim, err := e.Perimeter(it.Geometry)
			if err != nil && !errors.Is(err, geom.ErrUnsupportedGeometry) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", it.ID, a, measureString(perim, err))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

func measureString(v float64, err error) string {
	if err != nil {
		return "-"
	}
	return cast.ToString(v)
}

var batchCmd = &cobra.Command{
	Use:   "batch queries.toml",
	Short: "Run a batch of queries from a TOML file.",
	Long: `batch runs every query listed in a TOML file against the indexed items
and prints one line per query: the query name followed by the ids of the
items it found. A query file looks like:

    [[query]]
    name = "downtown"
    kind = "search"       # search, intersecting or nearest
    bbox = [0.0, 0.0, 10.0, 10.0] # for search and intersecting

    [[query]]
    name = "closest"
    kind = "nearest"
    point = [3.0, 4.0]
    k = 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var b batch
		if _, err := toml.DecodeFile(args[0], &b); err != nil {
			return fmt.Errorf("geokit: reading batch file: %w", err)
		}
		e, err := loadEngine()
		if err != nil {
			return err
		}
		for _, q := range b.Query {
			items, err := q.run(e)
			if err != nil {
				return err
			}
			ids := make([]string, len(items))
			for i, it := range items {
				ids[i] = it.ID
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", q.Name, strings.Join(ids, " "))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// batch is the layout of a batch query file.
type batch struct {
	Query []batchQuery
}

type batchQuery struct {
	Name  string
	Kind  string
	BBox  []float64
	Point []float64
	K     int
}

func (q batchQuery) run(e *geokit.Engine) ([]*geokit.Item, error) {
	switch q.Kind {
	case "search", "intersecting":
		if len(q.BBox) != 4 {
			return nil, fmt.Errorf("geokit: query %q: bbox needs 4 values, got %d", q.Name, len(q.BBox))
		}
		bb := geom.NewBBox(q.BBox[0], q.BBox[1], q.BBox[2], q.BBox[3])
		if q.Kind == "search" {
			return e.Index.Search(bb), nil
		}
		box, err := geom.NewPolygon([]geom.Point{
			{X: bb.MinX, Y: bb.MinY}, {X: bb.MaxX, Y: bb.MinY},
			{X: bb.MaxX, Y: bb.MaxY}, {X: bb.MinX, Y: bb.MaxY},
		})
		if err != nil {
			return nil, err
		}
		return e.QueryIntersecting(box), nil
	case "nearest":
		if len(q.Point) != 2 {
			return nil, fmt.Errorf("geokit: query %q: point needs 2 values, got %d", q.Name, len(q.Point))
		}
		k := q.K
		if k == 0 {
			k = 1
		}
		return e.Nearest(geom.Point{X: q.Point[0], Y: q.Point[1]}, k), nil
	}
	return nil, fmt.Errorf("geokit: query %q: unknown kind %q", q.Name, q.Kind)
}

func parseFloats(args []string) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := cast.ToFloat64E(a)
		if err != nil {
			return nil, fmt.Errorf("geokit: argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// loadItems reads the configured input file.
func loadItems() ([]*geokit.Item, error) {
	input := os.ExpandEnv(Cfg.GetString("input"))
	if input == "" {
		return nil, fmt.Errorf("geokit: no input file specified")
	}
	idField := Cfg.GetString("idfield")
	switch format := strings.ToLower(Cfg.GetString("format")); format {
	case "geojson":
		return readGeoJSONFile(input, idField)
	case "shapefile", "shp":
		return featureio.ReadShapefile(input, idField, logrus.StandardLogger())
	default:
		return nil, fmt.Errorf("geokit: unknown input format %q", format)
	}
}

func readGeoJSONFile(path, idField string) ([]*geokit.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geokit: %w", err)
	}
	defer f.Close()
	return featureio.ReadGeoJSON(f, idField)
}

// loadEngine reads the configured input file and indexes it.
func loadEngine() (*geokit.Engine, error) {
	items, err := loadItems()
	if err != nil {
		return nil, err
	}
	index, err := geokit.NewIndex(items, Cfg.GetInt("maxentries"), Cfg.GetBool("bulk"))
	if err != nil {
		return nil, fmt.Errorf("geokit: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"items":  index.Len(),
		"height": index.Height(),
	}).Info("geokit: built index")
	return geokit.NewEngine(index), nil
}
