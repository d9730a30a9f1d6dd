// Command ohm is the CLI wrapping internal/orchestrator: tx, rx, generate,
// and info verbs over modem.Config's eight JSON/YAML-free defaults, per
// spec.md §6. Flag parsing follows the teacher's atest.go pflag style — one
// flag set, StringP/BoolP/IntP with short forms — applied per-verb here
// since the spec calls for one binary with several verbs rather than the
// teacher's one-binary-per-verb layout (cmd/gen_tone, cmd/fxsend, ...).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/openham/ohm/internal/codec"
	"github.com/openham/ohm/internal/locator"
	"github.com/openham/ohm/internal/logging"
	"github.com/openham/ohm/internal/modem"
	"github.com/openham/ohm/internal/orchestrator"
	"github.com/openham/ohm/internal/station"
	"github.com/openham/ohm/internal/wav"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	verb := os.Args[1]
	args := os.Args[2:]

	var err error
	switch verb {
	case "tx":
		err = runTx(args)
	case "rx":
		err = runRx(args)
	case "generate":
		err = runGenerate(args)
	case "info":
		err = runInfo(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "ohm: unknown verb %q\n", verb)
		usage()
		os.Exit(1)
	}

	if err != nil {
		logging.Default().Error(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ohm <tx|rx|generate|info> [flags]")
}

func commonConfigFlags(fs *pflag.FlagSet) *modem.Config {
	def := modem.DefaultConfig()
	cfg := &modem.Config{}
	fs.IntVar(&cfg.SampleRate, "sample-rate", def.SampleRate, "sample rate in Hz")
	fs.Float64Var(&cfg.CenterFrequency, "center-frequency", def.CenterFrequency, "BPSK carrier frequency in Hz")
	fs.Float64Var(&cfg.SymbolRate, "symbol-rate", def.SymbolRate, "symbol rate in baud")
	fs.Float64Var(&cfg.MarkFrequency, "mark-frequency", def.MarkFrequency, "FSK mark frequency in Hz")
	fs.Float64Var(&cfg.SpaceFrequency, "space-frequency", def.SpaceFrequency, "FSK space frequency in Hz")
	fs.IntVar(&cfg.SubcarrierCount, "subcarriers", def.SubcarrierCount, "OFDM subcarrier count")
	fs.IntVar(&cfg.CyclicPrefixLength, "cyclic-prefix", def.CyclicPrefixLength, "OFDM cyclic prefix length")
	fs.Float64Var(&cfg.PowerScale, "power-scale", def.PowerScale, "output amplitude scale in (0, 1]")
	return cfg
}

func runTx(args []string) error {
	fs := pflag.NewFlagSet("tx", pflag.ExitOnError)
	text := fs.StringP("text", "t", "", "text to transmit")
	textFile := fs.StringP("text-file", "f", "", "read text to transmit from a file")
	modName := fs.StringP("modulation", "m", string(modem.BPSK), "bpsk|fsk|afsk|ofdm")
	codecKind := fs.StringP("codec", "c", string(codec.Huffman), "huffman|ascii")
	out := fs.StringP("out", "o", "", "output WAV file path")
	profilePath := fs.StringP("profile", "p", "", "station profile YAML file")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	afskProfile := fs.String("afsk-profile", string(modem.Bell202), "AFSK profile: bell202|bell103|vhf|hf")
	cfg := commonConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.AFSKProfileName = modem.AFSKProfile(*afskProfile)
	logging.SetVerbose(*verbose)

	if *out == "" {
		return fmt.Errorf("ohm tx: --out is required")
	}

	body := *text
	if *textFile != "" {
		data, err := os.ReadFile(*textFile)
		if err != nil {
			return fmt.Errorf("ohm tx: reading --text-file: %w", err)
		}
		body = string(data)
	}

	var callsign string
	if *profilePath != "" {
		prof, err := station.Load(*profilePath)
		if err != nil {
			return fmt.Errorf("ohm tx: %w", err)
		}
		callsign = prof.Callsign
	}

	opts := orchestrator.Options{Codec: codec.Kind(*codecKind), Config: *cfg, Callsign: callsign}
	samples, err := orchestrator.Transmit(body, modem.Name(*modName), opts)
	if err != nil {
		return fmt.Errorf("ohm tx: %w", err)
	}

	if err := wav.Write(*out, cfg.SampleRate, samples); err != nil {
		return fmt.Errorf("ohm tx: %w", err)
	}

	logging.Default().Info("transmitted", "out", *out, "modulation", *modName, "bytes", len(body))
	return nil
}

func runRx(args []string) error {
	fs := pflag.NewFlagSet("rx", pflag.ExitOnError)
	in := fs.StringP("in", "i", "", "input WAV file path")
	modName := fs.StringP("modulation", "m", "", "bpsk|fsk|afsk|ofdm, or empty for auto-detect")
	codecKind := fs.StringP("codec", "c", string(codec.Huffman), "huffman|ascii")
	out := fs.StringP("out", "o", "", "output text file path, or - for stdout")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	afskProfile := fs.String("afsk-profile", string(modem.Bell202), "AFSK profile: bell202|bell103|vhf|hf")
	cfg := commonConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.AFSKProfileName = modem.AFSKProfile(*afskProfile)
	logging.SetVerbose(*verbose)

	if *in == "" {
		return fmt.Errorf("ohm rx: --in is required")
	}

	sampleRate, samples, err := wav.Read(*in)
	if err != nil {
		return fmt.Errorf("ohm rx: %w", err)
	}
	cfg.SampleRate = sampleRate

	opts := orchestrator.Options{Codec: codec.Kind(*codecKind), Config: *cfg}

	var text string
	if *modName == "" {
		_, text, err = orchestrator.AutoDetect(samples, opts)
	} else {
		text, err = orchestrator.Receive(samples, modem.Name(*modName), opts)
	}
	if err != nil {
		return fmt.Errorf("ohm rx: %w", err)
	}

	if *out == "" || *out == "-" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(*out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("ohm rx: %w", err)
	}
	return nil
}

func runGenerate(args []string) error {
	fs := pflag.NewFlagSet("generate", pflag.ExitOnError)
	glob := fs.StringP("glob", "g", "*.txt", "doublestar glob of text files to transmit")
	dir := fs.StringP("dir", "d", ".", "directory to glob within")
	modName := fs.StringP("modulation", "m", string(modem.BPSK), "bpsk|fsk|afsk|ofdm")
	codecKind := fs.StringP("codec", "c", string(codec.Huffman), "huffman|ascii")
	outPattern := fs.StringP("out-pattern", "o", "ohm-%Y%m%d-%H%M%S.wav", "strftime output filename pattern, %n replaced with the source file's base name")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	afskProfile := fs.String("afsk-profile", string(modem.Bell202), "AFSK profile: bell202|bell103|vhf|hf")
	cfg := commonConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.AFSKProfileName = modem.AFSKProfile(*afskProfile)
	logging.SetVerbose(*verbose)

	matches, err := doublestar.Glob(os.DirFS(*dir), *glob)
	if err != nil {
		return fmt.Errorf("ohm generate: %w", err)
	}

	opts := orchestrator.Options{Codec: codec.Kind(*codecKind), Config: *cfg}
	now := time.Now()

	for _, rel := range matches {
		full := filepath.Join(*dir, rel)
		data, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("ohm generate: %w", err)
		}

		samples, err := orchestrator.Transmit(string(data), modem.Name(*modName), opts)
		if err != nil {
			return fmt.Errorf("ohm generate: %s: %w", full, err)
		}

		base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		pattern := strings.ReplaceAll(*outPattern, "%n", strings.ReplaceAll(base, "%", "%%"))
		outName, err := strftime.Format(pattern, now)
		if err != nil {
			return fmt.Errorf("ohm generate: formatting --out-pattern: %w", err)
		}

		if err := wav.Write(outName, cfg.SampleRate, samples); err != nil {
			return fmt.Errorf("ohm generate: %w", err)
		}
		logging.Default().Info("generated", "source", full, "out", outName)
		now = now.Add(time.Second)
	}

	return nil
}

func runInfo(args []string) error {
	fs := pflag.NewFlagSet("info", pflag.ExitOnError)
	profilePath := fs.StringP("profile", "p", "", "station profile YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("ohm.text.v1")
	fmt.Println("modulations: bpsk fsk afsk ofdm")
	fmt.Println("codecs: huffman ascii")

	if *profilePath != "" {
		prof, err := station.Load(*profilePath)
		if err != nil {
			return fmt.Errorf("ohm info: %w", err)
		}
		fmt.Printf("callsign: %s\n", prof.Callsign)
		fmt.Printf("locator: %s\n", prof.Locator)
		if prof.Locator != "" {
			lat, lon, err := locator.ToLatLon(prof.Locator)
			if err == nil {
				fmt.Printf("approx lat/lon: %.4f, %.4f\n", lat, lon)
			}
		}
	}

	return nil
}
