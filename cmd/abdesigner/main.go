package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/abdesigner"
	"github.com/bodgit/abdesigner/plane"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const defaultDB = "abdesigner.db"

var glyphs = map[plane.Pixel]byte{
	plane.Black:       '#',
	plane.White:       '.',
	plane.Transparent: ' ',
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) hclog.Logger {
	level := c.String("log-level")
	if c.Bool("verbose") {
		level = "debug"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   c.App.Name,
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

func open(c *cli.Context, file string) (*abdesigner.Designer, error) {
	s := abdesigner.NewDesigner(newLogger(c))
	if err := s.Open(file); err != nil {
		return nil, err
	}
	return s, nil
}

func layerIndex(d *abdesigner.Document, arg string) (int, error) {
	if i, err := strconv.Atoi(arg); err == nil {
		if _, err := d.Layer(i); err != nil {
			return 0, err
		}
		return i, nil
	}
	if i, _ := d.LayerByName(arg); i >= 0 {
		return i, nil
	}
	return 0, errors.Wrapf(abdesigner.ErrNoSuchLayer, "%q", arg)
}

func atoi(args ...string) ([]int, error) {
	n := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		n[i] = v
	}
	return n, nil
}

func render(d *abdesigner.Document) string {
	var sb strings.Builder
	for row := 0; row < d.Height; row++ {
		line := make([]byte, d.Width)
		for col := range line {
			line[col] = glyphs[d.CompositePixel(row, col)]
		}
		sb.Write(bytes.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func needArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func withLibrary(c *cli.Context, fn func(*abdesigner.Library) error) error {
	lib, err := abdesigner.NewLibrary(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer lib.Close()

	if err := fn(lib); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "abdesigner"
	app.Usage = "Layered monochrome bitmap designer"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"ABDESIGNER_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to document library",
		},
		&cli.StringFlag{
			Name:    "log-level",
			EnvVars: []string{"ABDESIGNER_LOG_LEVEL"},
			Value:   "warn",
			Usage:   "log level (trace, debug, info, warn, error)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "new",
			Usage:     "Create a default document",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				s := abdesigner.NewDesigner(newLogger(c))
				if err := s.SaveAs(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "show",
			Usage:     "Print the composited canvas",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				s, err := open(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Print(render(s.Document()))

				return nil
			},
		},
		{
			Name:      "layers",
			Usage:     "List the layers of a document",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				s, err := open(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for i, l := range s.Document().Layers {
					vis := "hidden"
					if l.Visible {
						vis = "visible"
					}
					fmt.Printf("%d\t%s\t(%d, %d)\t%dx%d\t%s\n", i, l.Name, l.Row, l.Col, l.Plane.Width(), l.Plane.Height(), vis)
				}

				return nil
			},
		},
		{
			Name:      "toggle",
			Usage:     "Toggle a pixel on a layer",
			ArgsUsage: "FILE LAYER ROW COL",
			Action: func(c *cli.Context) error {
				needArgs(c, 4)

				s, err := open(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				i, err := layerIndex(s.Document(), c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				n, err := atoi(c.Args().Get(2), c.Args().Get(3))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				ok, err := s.Toggle(i, n[0], n[1])
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if !ok {
					return cli.NewExitError("layer is hidden or does not cover that pixel", 1)
				}

				if err := s.Save(); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "visible",
			Usage:     "Show or hide a layer",
			ArgsUsage: "FILE LAYER on|off",
			Action: func(c *cli.Context) error {
				needArgs(c, 3)

				s, err := open(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				i, err := layerIndex(s.Document(), c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var visible bool
				switch c.Args().Get(2) {
				case "on":
					visible = true
				case "off":
				default:
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := s.Document().SetVisible(i, visible); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := s.Save(); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Add a layer converted from an image",
			ArgsUsage: "FILE IMAGE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "layer name, defaults to the image filename",
				},
				&cli.IntFlag{
					Name:  "row",
					Usage: "canvas row of the top-left corner",
				},
				&cli.IntFlag{
					Name:  "col",
					Usage: "canvas column of the top-left corner",
				},
			},
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				s, err := open(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				file := c.Args().Get(1)
				f, err := os.Open(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				m, _, err := image.Decode(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				name := c.String("name")
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				}

				l, err := abdesigner.LayerFromImage(name, c.Int("row"), c.Int("col"), m)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				s.Document().AddLayer(l)

				if err := s.Save(); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "png",
			Usage:     "Write the composited canvas as a PNG",
			ArgsUsage: "FILE OUTPUT",
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				s, err := open(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b := new(bytes.Buffer)
				if err := s.Document().EncodePNG(b); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), b.Bytes(), 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "bank",
			Usage:     "Write the layers as an icon bank",
			ArgsUsage: "FILE OUTPUT",
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				s, err := open(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b, err := s.Document().Bank()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				data, err := b.MarshalBinary()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), data, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Export every document in a directory",
			Description: "Writes a PNG and an icon bank alongside each .json document",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				s := abdesigner.NewDesigner(newLogger(c))
				if err := s.Export(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "library",
			Usage: "Manage the document library",
			Subcommands: []*cli.Command{
				{
					Name:      "put",
					Usage:     "Store a document",
					ArgsUsage: "NAME FILE",
					Action: func(c *cli.Context) error {
						needArgs(c, 2)

						d, err := abdesigner.ReadFile(c.Args().Get(1))
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						return withLibrary(c, func(lib *abdesigner.Library) error {
							return lib.Put(c.Args().First(), d)
						})
					},
				},
				{
					Name:      "get",
					Usage:     "Retrieve a document",
					ArgsUsage: "NAME FILE",
					Action: func(c *cli.Context) error {
						needArgs(c, 2)

						return withLibrary(c, func(lib *abdesigner.Library) error {
							d, err := lib.Get(c.Args().First())
							if err != nil {
								return err
							}
							if d == nil {
								return errors.Errorf("no document named %q", c.Args().First())
							}

							return abdesigner.WriteFile(c.Args().Get(1), d)
						})
					},
				},
				{
					Name:  "list",
					Usage: "List stored documents",
					Action: func(c *cli.Context) error {
						return withLibrary(c, func(lib *abdesigner.Library) error {
							names, err := lib.List()
							if err != nil {
								return err
							}
							for _, name := range names {
								fmt.Println(name)
							}
							return nil
						})
					},
				},
				{
					Name:      "rm",
					Usage:     "Delete a stored document",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						needArgs(c, 1)

						return withLibrary(c, func(lib *abdesigner.Library) error {
							return lib.Delete(c.Args().First())
						})
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
