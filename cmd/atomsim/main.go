package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/atomsim/internal/align"
	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/elements"
	"github.com/san-kum/atomsim/internal/experiment"
	"github.com/san-kum/atomsim/internal/export"
	"github.com/san-kum/atomsim/internal/integrators"
	"github.com/san-kum/atomsim/internal/protocol"
	"github.com/san-kum/atomsim/internal/report"
	"github.com/san-kum/atomsim/internal/sim"
	"github.com/san-kum/atomsim/internal/storage"
	"github.com/san-kum/atomsim/internal/thermo"
	"github.com/san-kum/atomsim/internal/tui"
	"github.com/san-kum/atomsim/internal/xyz"
)

const version = "0.4.0"

var (
	heading = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	label   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	value   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	good    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	bad     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var (
	dataDir    string
	configFile string
	preset     string
	xyzFile    string
	boxLen     float64

	dt       float64
	steps    int
	temp     float64
	tempEnd  float64
	gamma    float64
	seed     int64
	equil    int
	minFirst bool
	initTemp float64
	stride   int
	format   string
	doReport bool
	verbose  bool

	maxSteps int
	epsF     float64
	outFile  string

	tMin    float64
	tMax    float64
	tPoints int

	replicas int

	coulomb    bool
	bonded     bool
	restraintK float64
)

var rootCmd = &cobra.Command{
	Use:   "atomsim",
	Short: "classical atomistic simulation lab",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a simulation pipeline and store the results",
	RunE:  runPipeline,
}

var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "relax a structure with FIRE",
	RunE:  runMinimize,
}

var nveCmd = &cobra.Command{
	Use:   "nve",
	Short: "microcanonical dynamics (energy conservation check)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Run.Mode = "nve"
		return runWithConfig(cfg)
	},
}

var alignCmd = &cobra.Command{
	Use:   "align [target.xyz] [reference.xyz]",
	Short: "rigid-body superposition of two structures",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlign,
}

var protocolCmd = &cobra.Command{
	Use:   "protocol [scenario.yaml]",
	Short: "run a staged scenario on a system",
	Args:  cobra.ExactArgs(1),
	RunE:  runProtocol,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "thermodynamic observables over a temperature grid",
	RunE:  runSweep,
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "interactive live view of a running system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return tui.Run(cfg)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info [preset|structure.xyz]",
	Short: "describe a system and its energy breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "inspect stored runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list stored runs",
	RunE:  listRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run_id]",
	Short: "show one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "list built-in systems",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tATOMS\tMODE\tDESCRIPTION")
		for _, name := range config.ListPresets() {
			cfg := config.GetPreset(name)
			n := "?"
			if s, _, err := experiment.Build(cfg); err == nil {
				n = fmt.Sprintf("%d", s.N)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, n, cfg.Run.Mode, experiment.Default.Describe(name))
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("atomsim", version)
	},
}

func systemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in system")
	cmd.Flags().StringVar(&xyzFile, "xyz", "", "structure file")
	cmd.Flags().Float64Var(&boxLen, "box", 0, "cubic box length (A, 0 = open)")
	cmd.Flags().BoolVar(&coulomb, "coulomb", false, "enable electrostatics")
	cmd.Flags().BoolVar(&bonded, "bonded", false, "enable bonded terms")
	cmd.Flags().Float64Var(&restraintK, "restraint", 0, "COM restraint spring constant")
}

func dynamicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (fs)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "dynamics steps")
	cmd.Flags().Float64Var(&temp, "temp", config.DefaultTemp, "thermostat temperature (K)")
	cmd.Flags().Float64Var(&tempEnd, "temp-final", 0, "ramp target temperature (K, 0 = constant)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "friction (1/fs)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().Float64Var(&initTemp, "init-temp", 0, "initial velocity temperature (K)")
	cmd.Flags().BoolVar(&minFirst, "minimize", false, "minimize before dynamics")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print progress during the run")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "runs", "run storage directory")

	systemFlags(runCmd)
	dynamicsFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", "", "trajectory format (xyz, xyz.zst, csv)")
	runCmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "frame recording stride")
	runCmd.Flags().BoolVar(&doReport, "report", false, "write report.md and energies.png")
	runCmd.Flags().IntVar(&replicas, "replicas", 1, "independent replicas (ensemble)")

	systemFlags(minimizeCmd)
	minimizeCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "iteration cap (0 = default)")
	minimizeCmd.Flags().Float64Var(&epsF, "eps-f", 0, "force convergence threshold (0 = default)")
	minimizeCmd.Flags().StringVar(&outFile, "out", "", "write the relaxed structure (xyz or svg)")

	systemFlags(nveCmd)
	dynamicsFlags(nveCmd)
	nveCmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "frame recording stride")

	alignCmd.Flags().StringVar(&outFile, "out", "", "write the aligned structure")

	systemFlags(protocolCmd)

	systemFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&tMin, "tmin", 60, "grid start (K)")
	sweepCmd.Flags().Float64Var(&tMax, "tmax", 240, "grid end (K)")
	sweepCmd.Flags().IntVar(&tPoints, "points", 7, "grid points")
	sweepCmd.Flags().IntVar(&steps, "steps", 2000, "measured steps per point")
	sweepCmd.Flags().IntVar(&equil, "equil", 500, "discarded equilibration steps")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (fs)")
	sweepCmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "friction (1/fs)")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	sweepCmd.Flags().StringVar(&outFile, "plot", "", "write an energy-vs-T plot (png)")

	systemFlags(liveCmd)

	runsCmd.AddCommand(runsListCmd, runsShowCmd)
	rootCmd.AddCommand(runCmd, minimizeCmd, nveCmd, alignCmd, protocolCmd,
		sweepCmd, liveCmd, infoCmd, runsCmd, presetsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: config file if given,
// defaults otherwise, with explicitly set flags taking precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case preset != "":
		c := config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset %q (see: atomsim presets)", preset)
		}
		clone := *c
		cfg = &clone
	default:
		cfg = config.DefaultConfig()
	}

	f := cmd.Flags()
	if f.Changed("preset") {
		cfg.System.Preset = preset
		cfg.System.XYZ = ""
	}
	if f.Changed("xyz") {
		cfg.System.XYZ = xyzFile
		cfg.System.Preset = ""
	}
	if f.Changed("box") {
		cfg.System.Box = [3]float64{boxLen, boxLen, boxLen}
	}
	if f.Changed("coulomb") {
		cfg.Model.Coulomb = coulomb
	}
	if f.Changed("bonded") {
		cfg.Model.Bonded = bonded
	}
	if f.Changed("restraint") {
		cfg.Model.RestraintK = restraintK
	}
	if f.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if f.Changed("steps") {
		cfg.Run.Steps = steps
	}
	if f.Changed("temp") {
		cfg.Run.Temp = temp
	}
	if f.Changed("temp-final") {
		cfg.Run.TempFinal = tempEnd
	}
	if f.Changed("gamma") {
		cfg.Run.Gamma = gamma
	}
	if f.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if f.Changed("init-temp") {
		cfg.Run.InitTemp = initTemp
	}
	if f.Changed("minimize") {
		cfg.Run.Minimize = minFirst
	}
	if f.Changed("stride") {
		cfg.Output.Stride = stride
	}
	if f.Changed("format") {
		cfg.Output.Format = format
	}
	if f.Changed("report") {
		cfg.Output.Report = doReport
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runParams(cfg *config.Config) sim.RunParams {
	p := sim.DefaultRunParams()
	p.Mode = sim.Mode(cfg.Run.Mode)
	p.Minimize = cfg.Run.Minimize
	p.InitTemp = cfg.Run.InitTemp
	p.Seed = cfg.Run.Seed
	p.Langevin.Dt = cfg.Run.Dt
	p.Langevin.Steps = cfg.Run.Steps
	p.Langevin.Temp = cfg.Run.Temp
	p.Langevin.TempFinal = cfg.Run.TempFinal
	p.Langevin.Gamma = cfg.Run.Gamma
	p.Langevin.Verbose = verbose
	p.Verlet.Dt = cfg.Run.Dt
	p.Verlet.Steps = cfg.Run.Steps
	p.Verlet.Verbose = verbose
	return p
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if replicas > 1 {
		return runEnsemble(cfg)
	}
	return runWithConfig(cfg)
}

func runWithConfig(cfg *config.Config) error {
	s, model, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	systemName := cfg.System.Preset
	if systemName == "" {
		systemName = filepath.Base(cfg.System.XYZ)
	}
	fmt.Printf("%s %s  (%d atoms, mode %s)\n",
		heading.Render("running"), value.Render(systemName), s.N, cfg.Run.Mode)

	rec := sim.NewRecorder(cfg.Output.Stride)
	rec.Velocities = cfg.Output.Format == "xyz" || cfg.Output.Format == "xyz.zst"
	runner := sim.NewRunner(model, runParams(cfg))
	runner.AddObserver(rec)

	res, err := runner.Run(context.Background(), s)
	if err != nil {
		return err
	}

	meta := storage.Meta{
		System:    systemName,
		Timestamp: time.Now(),
		Seed:      cfg.Run.Seed,
		Config:    cfg,
		Result:    res,
		Final: map[string]float64{
			"potential":   s.E.Total(),
			"kinetic":     thermo.KineticEnergy(s),
			"temperature": thermo.Temperature(s, 0),
		},
	}
	id, err := st.Save(meta, rec.Frames(), s)
	if err != nil {
		return err
	}

	printSummary(s, res)
	fmt.Printf("\n%s %s\n", label.Render("run id:"), value.Render(id))

	if energies := rec.Energies(); len(energies) > 1 {
		fmt.Println(report.Sparkline(energies, "total energy (kcal/mol)"))
	}

	if cfg.Output.Report {
		dir := filepath.Join(dataDir, id)
		md := report.Markdown(s, res)
		if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(md), 0644); err != nil {
			return err
		}
		series := []report.Series{{Name: "E total", Y: rec.Energies()}}
		if err := report.EnergyPlot(filepath.Join(dir, "energies.png"),
			systemName, cfg.Output.Stride, series...); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", label.Render("report:"), value.Render(filepath.Join(dir, "report.md")))
	}
	return nil
}

func runEnsemble(cfg *config.Config) error {
	s0, model, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d replicas of %s\n",
		heading.Render("running"), replicas, value.Render(cfg.System.Preset))

	ens := sim.Ensemble{Runs: replicas, SeedStart: cfg.Run.Seed}
	start := time.Now()
	reps, err := ens.Run(context.Background(), s0, model, runParams(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tT_AVG\tE_AVG\tSTEPS")
	for _, r := range reps {
		if r.Result.NVT != nil {
			fmt.Fprintf(w, "%d\t%.1f K\t%.4f\t%d\n",
				r.Seed, r.Result.NVT.TAvg, r.Result.NVT.EAvg, r.Result.Steps)
		} else if r.Result.NVE != nil {
			fmt.Fprintf(w, "%d\t%.1f K\t%.4f\t%d\n",
				r.Seed, r.Result.NVE.TAvg, r.Result.NVE.EFinal, r.Result.Steps)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%s %v\n", label.Render("elapsed:"), elapsed.Round(time.Millisecond))
	return nil
}

func runMinimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, model, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	p := integrators.DefaultFIREParams()
	if maxSteps > 0 {
		p.MaxSteps = maxSteps
	}
	if epsF > 0 {
		p.EpsF = epsF
	}

	res, err := integrators.Minimize(context.Background(), s, model, p)
	if err != nil {
		return err
	}

	status := good.Render("converged")
	if !res.Converged {
		status = bad.Render("not converged")
	}
	fmt.Printf("%s after %d steps (%s)\n", status, res.Steps, label.Render(fmt.Sprintf("eps_f=%g", p.EpsF)))
	fmt.Printf("  %s %.6f kcal/mol\n", label.Render("U        "), res.U)
	fmt.Printf("  %s %.2e kcal/mol/A\n", label.Render("F_rms    "), res.FRMS)
	fmt.Printf("  %s %.2e kcal/mol\n", label.Render("dU/atom  "), res.DUPerAtom)

	if outFile != "" {
		var werr error
		if filepath.Ext(outFile) == ".svg" {
			werr = export.SVG(s, outFile)
		} else {
			werr = xyz.WriteFile(outFile, s, xyz.Options{
				Comment:  "relaxed",
				Bonds:    len(s.Bonds) > 0,
				Energies: true,
			})
		}
		if werr != nil {
			return werr
		}
		fmt.Printf("  %s %s\n", label.Render("wrote    "), outFile)
	}
	return nil
}

func runAlign(cmd *cobra.Command, args []string) error {
	target, err := xyz.ReadFile(args[0])
	if err != nil {
		return err
	}
	reference, err := xyz.ReadFile(args[1])
	if err != nil {
		return err
	}

	res := align.Kabsch(target, reference)

	fmt.Printf("%s %s onto %s\n", heading.Render("aligned"), args[0], args[1])
	fmt.Printf("  %s %.6f A\n", label.Render("rmsd before"), res.RMSDBefore)
	fmt.Printf("  %s %.6f A\n", label.Render("rmsd after "), res.RMSDAfter)
	fmt.Printf("  %s %.6f A\n", label.Render("max dev    "), res.MaxDeviation)
	fmt.Println(label.Render("  rotation"))
	r := res.Rotation
	for i := 0; i < 3; i++ {
		fmt.Printf("    %9.5f %9.5f %9.5f\n", r[3*i], r[3*i+1], r[3*i+2])
	}

	if outFile != "" {
		if err := xyz.WriteFile(outFile, target, xyz.Options{Comment: "aligned"}); err != nil {
			return err
		}
		fmt.Printf("  %s %s\n", label.Render("wrote"), outFile)
	}
	return nil
}

func runProtocol(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := protocol.Load(args[0])
	if err != nil {
		return err
	}
	s, model, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s  (%d stages)\n", heading.Render("scenario"), value.Render(sc.Name), len(sc.Stages))

	rng := rand.New(rand.NewSource(cfg.Run.Seed))
	results, err := protocol.Run(context.Background(), sc, s, model, rng)
	if err != nil {
		return err
	}

	for i, sr := range results {
		fmt.Printf("  %s %s", label.Render(fmt.Sprintf("stage %d", i+1)), sr.Kind)
		switch {
		case sr.Minimize != nil:
			fmt.Printf("  U=%.4f steps=%d converged=%v", sr.Minimize.U, sr.Minimize.Steps, sr.Minimize.Converged)
		case sr.NVT != nil:
			fmt.Printf("  T=%.1f±%.1f K  E=%.4f", sr.NVT.TAvg, sr.NVT.TStd, sr.NVT.EAvg)
		case sr.NVE != nil:
			fmt.Printf("  drift=%.2e  T=%.1f K", sr.NVE.EDrift, sr.NVE.TAvg)
		case sr.Align != nil:
			fmt.Printf("  rmsd %.4f -> %.4f A", sr.Align.RMSDBefore, sr.Align.RMSDAfter)
		}
		fmt.Println()
	}

	fmt.Printf("\n%s U=%.4f  T=%.1f K\n", label.Render("final:"), s.E.Total(), thermo.Temperature(s, 0))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, model, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	ts := protocol.TemperatureSweep{
		TMin:    tMin,
		TMax:    tMax,
		Points:  tPoints,
		Dt:      cfg.Run.Dt,
		Gamma:   cfg.Run.Gamma,
		Equil:   equil,
		Steps:   steps,
		Seed:    cfg.Run.Seed,
		Verbose: verbose,
	}

	fmt.Printf("%s %.0f-%.0f K in %d points (%d atoms)\n",
		heading.Render("sweep"), tMin, tMax, tPoints, s.N)

	points, err := ts.Run(context.Background(), s, model)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T_SET\tT_AVG\tE_MEAN\tE_STD\tCV")
	for _, pt := range points {
		fmt.Fprintf(w, "%.1f\t%.1f±%.1f\t%.4f\t%.4f\t%.5f\n",
			pt.Temp, pt.TAvg, pt.TStd, pt.EMean, pt.EStd, pt.Cv)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if outFile != "" {
		energies := make([]float64, len(points))
		for i, pt := range points {
			energies[i] = pt.EMean
		}
		series := report.Series{Name: "E mean", Y: energies}
		if err := report.EnergyPlot(outFile, "temperature sweep", 1, series); err != nil {
			return err
		}
		fmt.Printf("\n%s %s\n", label.Render("plot:"), outFile)
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]

	var cfg *config.Config
	if c := config.GetPreset(name); c != nil {
		clone := *c
		cfg = &clone
	} else {
		cfg = config.DefaultConfig()
		cfg.System.Preset = ""
		cfg.System.XYZ = name
	}

	s, model, err := experiment.Build(cfg)
	if err != nil {
		return err
	}
	if err := model.Evaluate(s); err != nil {
		return err
	}

	fmt.Println(heading.Render(name))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "atoms\t%d\n", s.N)
	fmt.Fprintf(w, "bonds\t%d\n", len(s.Bonds))

	counts := map[int]int{}
	for _, z := range s.Type {
		counts[z]++
	}
	zs := make([]int, 0, len(counts))
	for z := range counts {
		zs = append(zs, z)
	}
	sort.Ints(zs)
	for _, z := range zs {
		fmt.Fprintf(w, "  %s\t%d  (%.3f amu)\n", elements.Symbol(z), counts[z], elements.Mass(z))
	}

	if s.Box.Enabled() {
		fmt.Fprintf(w, "box\t%.2f x %.2f x %.2f A\n", s.Box.L.X, s.Box.L.Y, s.Box.L.Z)
	} else {
		fmt.Fprintf(w, "box\topen\n")
	}

	fmt.Fprintln(w, "energy\tkcal/mol")
	terms := []struct {
		name string
		v    float64
	}{
		{"vdw", s.E.VdW}, {"coulomb", s.E.Coulomb}, {"bond", s.E.Bond},
		{"angle", s.E.Angle}, {"torsion", s.E.Torsion}, {"external", s.E.External},
	}
	for _, t := range terms {
		if t.v != 0 {
			fmt.Fprintf(w, "  %s\t%.6f\n", t.name, t.v)
		}
	}
	fmt.Fprintf(w, "  total\t%.6f\n", s.E.Total())
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tSTEPS\tE_FINAL")
	for _, run := range runs {
		stepsRun := 0
		if run.Result != nil {
			stepsRun = run.Result.Steps
		}
		eFinal := run.Final["potential"] + run.Final["kinetic"]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\n",
			run.ID, run.System, run.Timestamp.Format("2006-01-02 15:04:05"), stepsRun, eFinal)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	rows, err := st.LoadEnergies(args[0])
	if err != nil || len(rows) < 2 {
		return nil
	}
	energies := make([]float64, len(rows))
	for i, r := range rows {
		energies[i] = r.E
	}
	fmt.Println(report.Sparkline(energies, "total energy (kcal/mol)"))
	return nil
}

func printSummary(s *atoms.State, res *sim.RunResult) {
	if res.Minimize != nil {
		status := good.Render("converged")
		if !res.Minimize.Converged {
			status = bad.Render("not converged")
		}
		fmt.Printf("  %s %s in %d steps, U=%.4f\n",
			label.Render("minimize:"), status, res.Minimize.Steps, res.Minimize.U)
	}
	if res.NVT != nil {
		fmt.Printf("  %s T=%.1f±%.1f K  KE=%.4f  PE=%.4f  E=%.4f\n",
			label.Render("nvt:"), res.NVT.TAvg, res.NVT.TStd, res.NVT.KEAvg, res.NVT.PEAvg, res.NVT.EAvg)
	}
	if res.NVE != nil {
		drift := good.Render(fmt.Sprintf("%.2e", res.NVE.EDrift))
		if res.NVE.EDrift > 1e-2 {
			drift = bad.Render(fmt.Sprintf("%.2e", res.NVE.EDrift))
		}
		fmt.Printf("  %s drift=%s  T=%.1f K  E=%.4f\n",
			label.Render("nve:"), drift, res.NVE.TAvg, res.NVE.EFinal)
	}
	fmt.Printf("  %s %d steps in %v  (final T=%.1f K)\n",
		label.Render("total:"), res.Steps, res.Elapsed.Round(time.Millisecond),
		thermo.Temperature(s, 0))
}
