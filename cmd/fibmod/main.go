package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/config"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/export"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/legend"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/session"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/store"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/tui"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/viz"
)

var (
	dataDir    string
	configFile string
	solverPath string
	selectExpr string
	outFile    string
	pngFile    string
	svgFile    string
	htmlFile   string
	force      bool
	termWidth  int
	termHeight int
)

// main registers commands and flags; running without a subcommand launches
// the interactive TUI seeded with the most recent calculation.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fibmod",
		Short: "fibonacci sequence modulo period visualizer",
		RunE:  runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	computeCmd := &cobra.Command{
		Use:   "compute [base]",
		Short: "run the period solver and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompute,
	}
	computeCmd.Flags().StringVar(&solverPath, "solver", "", "period solver executable")

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "import a dataset or export file into the store",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored calculations",
		RunE:  runList,
	}

	showCmd := &cobra.Command{
		Use:   "show [calc_id]",
		Short: "show the sequences of a calculation",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	selectCmd := &cobra.Command{
		Use:   "select [calc_id] [ranges|all|clear]",
		Short: "update the stored selection, e.g. 3-5,6,7-21",
		Args:  cobra.ExactArgs(2),
		RunE:  runSelect,
	}

	renderCmd := &cobra.Command{
		Use:   "render [calc_id]",
		Short: "render the 2d occupancy grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&selectExpr, "select", "", "one-off selection override")
	renderCmd.Flags().StringVar(&pngFile, "png", "", "write a png raster instead of terminal output")
	renderCmd.Flags().StringVar(&svgFile, "svg", "", "write an svg document instead of terminal output")
	renderCmd.Flags().BoolVar(&force, "force", false, "skip the large-grid confirmation")
	renderCmd.Flags().IntVar(&termWidth, "width", 80, "terminal view width")
	renderCmd.Flags().IntVar(&termHeight, "height", 40, "terminal view height")

	render3dCmd := &cobra.Command{
		Use:   "render3d [calc_id]",
		Short: "render the volumetric cells",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender3D,
	}
	render3dCmd.Flags().StringVar(&selectExpr, "select", "", "one-off selection override")
	render3dCmd.Flags().StringVar(&htmlFile, "html", "", "write an interactive html chart instead of terminal output")
	render3dCmd.Flags().IntVar(&termWidth, "width", 80, "terminal view width")
	render3dCmd.Flags().IntVar(&termHeight, "height", 40, "terminal view height")

	statsCmd := &cobra.Command{
		Use:   "stats [calc_id]",
		Short: "chart sequence lengths",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	exportCmd := &cobra.Command{
		Use:   "export [calc_id]",
		Short: "write the dataset plus selection as json",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	rootCmd.AddCommand(computeCmd, importCmd, listCmd, showCmd, selectCmd, renderCmd, render3dCmd, statsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		cfg := config.DefaultConfig()
		cfg.DataDir = dataDir
		return cfg, nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != config.DefaultDataDir {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	st := store.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

// loadSession restores a stored calculation into a fresh session, applying
// the --select override when given (without persisting it).
func loadSession(cfg *config.Config, st *store.Store, id string) (*session.Session, error) {
	d, sel, err := st.Load(id)
	if err != nil {
		return nil, err
	}
	sess := session.New(
		colorize.Options{Smoothing: cfg.Color.Smoothing, Alpha: cfg.Color.Alpha},
		legend.Options{PreviewLimit: cfg.Legend.PreviewLimit, DisplayLimit: cfg.Legend.DisplayLimit},
	)
	sess.LoadWithSelection(d, sel)

	if selectExpr != "" {
		sess.ClearSelection()
		_, warnings, err := sess.Apply(selectExpr)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}
	return sess, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	var (
		initial    *payload.Dataset
		initialSel []int
	)
	if latest, err := st.Latest(); err == nil && latest != "" {
		if d, sel, err := st.Load(latest); err == nil {
			initial, initialSel = d, sel
		}
	}

	solver := cfg.Solver
	if solverPath != "" {
		solver = solverPath
	}
	return tui.Run(cfg, payload.NewExecProvider(solver), st, initial, initialSel)
}

func runCompute(cmd *cobra.Command, args []string) error {
	base, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("base must be an integer, got %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	solver := cfg.Solver
	if solverPath != "" {
		solver = solverPath
	}

	fmt.Printf("computing fibonacci periods for mod %d...\n", base)
	start := time.Now()
	d, err := payload.NewExecProvider(solver).Compute(context.Background(), base)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	id, err := st.Save(d, nil)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("calc id: %s\n", id)
	fmt.Printf("sequences: %d\n", len(d.Sequences))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	d, sel, err := payload.LoadFile(args[0])
	if err != nil {
		return err
	}
	id, err := st.Save(d, sel)
	if err != nil {
		return err
	}
	fmt.Printf("calc id: %s\n", id)
	fmt.Printf("base: %d, sequences: %d, selected: %d\n", d.Base, len(d.Sequences), len(sel))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	calcs, err := st.List()
	if err != nil {
		return err
	}
	if len(calcs) == 0 {
		fmt.Println("no calculations found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBASE\tSAVED\tSIZE")
	for _, c := range calcs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", c.ID, c.Base, c.SavedAt.Format("2006-01-02 15:04:05"), c.Bytes)
	}
	return w.Flush()
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	d, sel, err := st.Load(args[0])
	if err != nil {
		return err
	}

	selected := make(map[int]bool, len(sel))
	for _, i := range sel {
		selected[i] = true
	}

	fmt.Printf("mod %d: %d sequences, %d selected\n\n", d.Base, len(d.Sequences), len(sel))
	for i, seq := range d.Sequences {
		mark := " "
		if selected[i] {
			mark = "✓"
		}
		fmt.Printf("[%s] %3d. len=%-4d %s\n", mark, i, len(seq), legend.Preview(seq, cfg.Legend.PreviewLimit))
	}
	return nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	id := args[0]
	sess, err := loadSession(cfg, st, id)
	if err != nil {
		return err
	}

	switch args[1] {
	case "all":
		if err := sess.SelectAll(); err != nil {
			return err
		}
	case "clear":
		sess.ClearSelection()
	default:
		added, warnings, err := sess.Apply(args[1])
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		fmt.Printf("added %d sequences\n", added)
	}

	d, _ := sess.Dataset()
	if err := st.SaveAs(id, d, sess.Selected()); err != nil {
		return err
	}
	fmt.Printf("selection: %d of %d sequences\n", len(sess.Selected()), len(d.Sequences))
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(cfg, st, args[0])
	if err != nil {
		return err
	}

	d, _ := sess.Dataset()
	if d.Base > cfg.Render.GridWarnSize && !force {
		return fmt.Errorf("modulus %d implies a %dx%d grid (~%d MiB); rerun with --force to proceed",
			d.Base, d.Base, d.Base, grid.EstimateBytes(d.Base)/(1<<20))
	}

	buf, err := sess.Grid()
	if err != nil {
		return err
	}

	switch {
	case pngFile != "":
		f, err := os.Create(pngFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.GridToPNG(f, buf, cfg.Render.PixelsPerCell); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%dx%d cells, %d px/cell)\n", pngFile, buf.Size, buf.Size, cfg.Render.PixelsPerCell)
		return nil
	case svgFile != "":
		if err := os.WriteFile(svgFile, []byte(export.GridToSVG(buf, float64(cfg.Render.PixelsPerCell))), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	fmt.Print(viz.GridView(buf, termWidth, termHeight))
	summary, err := sess.Summary(time.Now())
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(summary.Text())
	return nil
}

func runRender3D(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(cfg, st, args[0])
	if err != nil {
		return err
	}

	cells, err := sess.Cells()
	if err != nil {
		return err
	}
	d, _ := sess.Dataset()

	if htmlFile != "" {
		f, err := os.Create(htmlFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.CellsToHTML(f, d.Base, cells); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d cells)\n", htmlFile, len(cells))
		return nil
	}

	canvas := viz.NewCanvas(termWidth, termHeight*2)
	viz.RenderCells(canvas, cells, d.Base, viz.NewCamera())
	fmt.Print(canvas.Render())

	summary, err := sess.Summary(time.Now())
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(summary.Text())
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	d, _, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.LengthProfile(d, 80, 15))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess, err := loadSession(cfg, st, args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return sess.Export(os.Stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := sess.Export(f); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}
