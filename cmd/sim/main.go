// Command sim generates musical tuning systems and writes them out as Csound
// cpstun tables, AnaMark .tun files, comparison tables and audition MIDI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lbimbi/sim/export"
	"github.com/lbimbi/sim/tuning"
)

const (
	appName = "sim"
	version = "1.0.0"
)

// params is the resolved CLI configuration after flags, env and defaults.
type params struct {
	Diapason float64 `validate:"gt=0"`
	BaseKey  int     `validate:"gte=0,lte=127"`
	BaseNote string  `validate:"required"`
	Span     int     `validate:"gte=1"`
	TETAlign string  `validate:"oneof=same nearest"`

	ET           string
	Geometric    string
	Natural      string
	Danielou     []string
	DanielouAll  bool
	NoReduce     bool
	IntervalZero bool
	ExportTun    bool
	ExportSMF    bool
	CompareFund  string
	SubharmFund  string
	MidiTruncate bool
	OutputBase   string
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(os.Args[1:], log); err != nil {
		log.Fatal().Err(err).Msg("aborted")
	}
}

func run(args []string, log zerolog.Logger) error {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s %s - tuning system table generator\n\nusage: %s [flags] output_base\n\n",
			appName, version, appName)
		fs.PrintDefaults()
	}

	showVersion := fs.BoolP("version", "v", false, "print the program version and exit")
	fs.Float64("diapason", 440, "reference A4 frequency in Hz")
	fs.Int("basekey", 60, "base MIDI key for the cpstun table")
	fs.String("basenote", "C4", "reference pitch as note name (A4, F#2, Ab3) or frequency in Hz")
	et := fs.String("et", "12,200", "equal temperament as INDEX,INTERVAL (interval in cents or a fraction)")
	geometric := fs.String("geometric", "", "geometric system as GEN,STEPS[,INTERVAL] (e.g. 3/2,12 or 3/2,12,3/1; a bare integer interval is cents)")
	natural := fs.String("natural", "", "natural 4:5:6 system as A_MAX,B_MAX")
	danielou := fs.StringArray("danielou", nil, "danielou triple a,b,c; repeat for multiple triples")
	danielouAll := fs.Bool("danielou-all", false, "use the full 53-grade danielou grid")
	noReduce := fs.Bool("no-reduce", false, "do not reduce ratios into the repetition interval")
	span := fs.Int("span", 1, "number of repetitions of the base interval")
	fs.IntVar(span, "ambitus", 1, "alias for --span")
	intervalZero := fs.Bool("interval-zero", false, "write a non-repeating cpstun table (interval=0) listing all spanned steps")
	exportTun := fs.Bool("export-tun", false, "also export an AnaMark .tun file over 128 notes")
	exportSMF := fs.Bool("export-smf", false, "also export an audition .mid playing the scale")
	compareFund := fs.String("compare-fund", "", "fundamental for the harmonic series and 12-TET anchor (note or Hz, default basenote)")
	tetAlign := fs.String("compare-tet-align", "same", "12-TET column alignment: same or nearest")
	subharmFund := fs.String("subharm-fund", "A5", "fundamental for the subharmonic series (note or Hz)")
	midiTruncate := fs.Bool("midi-truncate", false, "truncate pitches beyond MIDI key 127 instead of shifting the base key")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Printf("%s %s\n", appName, version)
		return nil
	}
	if len(args) == 0 {
		fs.Usage()
		return nil
	}

	v := viper.New()
	v.SetDefault("diapason", 440.0)
	v.SetDefault("basekey", 60)
	v.SetDefault("basenote", "C4")
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.AutomaticEnv()
	for _, name := range []string{"diapason", "basekey", "basenote"} {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return err
		}
	}

	p := params{
		Diapason:     v.GetFloat64("diapason"),
		BaseKey:      v.GetInt("basekey"),
		BaseNote:     v.GetString("basenote"),
		Span:         *span,
		TETAlign:     *tetAlign,
		ET:           *et,
		Geometric:    *geometric,
		Natural:      *natural,
		Danielou:     *danielou,
		DanielouAll:  *danielouAll,
		NoReduce:     *noReduce,
		IntervalZero: *intervalZero,
		ExportTun:    *exportTun,
		ExportSMF:    *exportSMF,
		CompareFund:  *compareFund,
		SubharmFund:  *subharmFund,
		MidiTruncate: *midiTruncate,
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("missing output base name: %w", tuning.ErrInvalidParameter)
	}
	p.OutputBase = fs.Arg(0)

	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return generate(p, log)
}

func generate(p params, log zerolog.Logger) error {
	baseHz, err := tuning.ParseNoteOrHz(p.BaseNote, p.Diapason)
	if err != nil {
		return fmt.Errorf("basenote: %w", err)
	}
	compareFundHz := baseHz
	if p.CompareFund != "" {
		if compareFundHz, err = tuning.ParseNoteOrHz(p.CompareFund, p.Diapason); err != nil {
			return fmt.Errorf("compare-fund: %w", err)
		}
	}
	subharmFundHz, err := tuning.ParseNoteOrHz(p.SubharmFund, p.Diapason)
	if err != nil {
		return fmt.Errorf("subharm-fund: %w", err)
	}
	mode := tuning.AlignSame
	if p.TETAlign == "nearest" {
		mode = tuning.AlignNearest
	}

	sys, reduceInterval, err := selectSystem(p)
	if err != nil {
		return err
	}
	log.Info().Stringer("system", sys.Kind).Float64("basenote_hz", baseHz).Msg("generating")
	if sys.Trivial() {
		log.Warn().Msg("generator 1 produces only the unison")
	}

	set, err := tuning.Generate(sys, !p.NoReduce, reduceInterval)
	if err != nil {
		return err
	}
	interval := sys.IntervalFactor()
	if !reduceInterval.IsZero() {
		interval = reduceInterval.Float64()
	}
	spanned, err := tuning.ExpandSpan(set, interval, p.Span)
	if err != nil {
		return err
	}

	degs, effKey, warn := tuning.FitMidiRange(tuning.ToDegrees(spanned, p.BaseKey, baseHz), p.BaseKey, p.MidiTruncate)
	if warn {
		log.Warn().Int("kept", len(degs)).Msg("scale exceeds the MIDI key range, steps dropped")
	}
	if effKey != p.BaseKey {
		log.Warn().Int("basekey", effKey).Msg("base key shifted to fit the MIDI key range")
	}
	export.PrintStepGrid(os.Stdout, degs)

	// the cpstun table ignores the span unless interval repetition is
	// disabled, in which case every spanned step is listed
	csdSet, csdInterval := set, interval
	if p.IntervalZero {
		csdSet, csdInterval = spanned, 0
	}
	csdDegs, csdKey, _ := tuning.FitMidiRange(tuning.ToDegrees(csdSet, p.BaseKey, baseHz), p.BaseKey, p.MidiTruncate)
	fnum, existed, err := export.WriteCpstun(p.OutputBase, export.CpstunTable{
		Ratios:   degreeRatios(csdDegs),
		BaseKey:  csdKey,
		BaseFreq: baseHz,
		Interval: csdInterval,
	})
	if err != nil {
		return err
	}
	log.Info().Int("fnum", fnum).Str("path", p.OutputBase+".csd").Msg("cpstun table written")

	// successive runs on an existing .csd get suffixed siblings so earlier
	// exports survive
	exportBase := p.OutputBase
	if existed {
		exportBase = fmt.Sprintf("%s_%d", p.OutputBase, fnum)
	}

	path, err := export.WriteSystemTable(exportBase, degs)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("system table written")
	if path, err = export.WriteSystemXlsx(exportBase, degs); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("system workbook written")

	rows := tuning.Compare(degs, compareFundHz, subharmFundHz, mode, p.Diapason)
	if path, err = export.WriteCompareTable(exportBase, rows); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("comparison table written")
	if path, err = export.WriteCompareXlsx(exportBase, rows); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("comparison workbook written")

	if p.ExportTun {
		name := fmt.Sprintf("Generated by %s %s", appName, version)
		path, err := export.WriteTun(exportBase, name, degreeRatios(degs), effKey, baseHz)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("tun file written")
	}
	if p.ExportSMF {
		path, err := export.WriteScaleSMF(exportBase, degs, p.Diapason)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("audition midi written")
	}
	return nil
}

// selectSystem resolves the system flags by priority: natural, the full
// danielou grid, danielou triples, geometric, then equal temperament. The
// second result is the reduction interval; zero means the system default.
func selectSystem(p params) (tuning.System, tuning.Value, error) {
	none := tuning.Value{}
	switch {
	case p.Natural != "":
		a, b, err := intPair(p.Natural)
		if err != nil {
			return tuning.System{}, none, fmt.Errorf("natural: %w", err)
		}
		return tuning.NewNatural(a, b), none, nil
	case p.DanielouAll:
		return tuning.NewDanielouGrid(), none, nil
	case len(p.Danielou) > 0:
		triples := make([][3]int, len(p.Danielou))
		for i, s := range p.Danielou {
			t, err := tuning.ParseDanielouTriple(s)
			if err != nil {
				return tuning.System{}, none, err
			}
			triples[i] = t
		}
		return tuning.NewDanielouTriples(triples...), none, nil
	case p.Geometric != "":
		parts := strings.Split(p.Geometric, ",")
		if len(parts) != 2 && len(parts) != 3 {
			return tuning.System{}, none, fmt.Errorf("geometric needs GEN,STEPS[,INTERVAL]: %w", tuning.ErrInvalidParameter)
		}
		gen, err := tuning.ParseValue(parts[0])
		if err != nil {
			return tuning.System{}, none, fmt.Errorf("geometric generator: %w", err)
		}
		var steps int
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &steps); err != nil {
			return tuning.System{}, none, fmt.Errorf("geometric steps %q: %w", parts[1], tuning.ErrInvalidParameter)
		}
		interval := none
		if len(parts) == 3 {
			if interval, err = tuning.ParseInterval(parts[2]); err != nil {
				return tuning.System{}, none, fmt.Errorf("geometric interval: %w", err)
			}
		}
		return tuning.NewGeometric(gen, steps), interval, nil
	default:
		idxStr, intervalStr, ok := strings.Cut(p.ET, ",")
		if !ok {
			return tuning.System{}, none, fmt.Errorf("et needs INDEX,INTERVAL: %w", tuning.ErrInvalidParameter)
		}
		var index int
		if _, err := fmt.Sscanf(strings.TrimSpace(idxStr), "%d", &index); err != nil {
			return tuning.System{}, none, fmt.Errorf("et index %q: %w", idxStr, tuning.ErrInvalidParameter)
		}
		interval, err := tuning.ParseValue(intervalStr)
		if err != nil {
			return tuning.System{}, none, fmt.Errorf("et interval: %w", err)
		}
		return tuning.NewEqualTemperament(index, interval), none, nil
	}
}

// parse an "A,B" integer pair
func intPair(s string) (int, int, error) {
	first, second, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not an integer pair: %w", s, tuning.ErrInvalidParameter)
	}
	var a, b int
	if _, err := fmt.Sscanf(strings.TrimSpace(first), "%d", &a); err != nil {
		return 0, 0, fmt.Errorf("%q is not an integer: %w", first, tuning.ErrInvalidParameter)
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(second), "%d", &b); err != nil {
		return 0, 0, fmt.Errorf("%q is not an integer: %w", second, tuning.ErrInvalidParameter)
	}
	return a, b, nil
}

func degreeRatios(degs []tuning.Degree) []float64 {
	return lo.Map(degs, func(d tuning.Degree, _ int) float64 { return d.Ratio })
}
