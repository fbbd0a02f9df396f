package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/w86emu/pkg/conformance"
	"github.com/oisee/w86emu/pkg/cpu"
	"github.com/oisee/w86emu/pkg/opcode"
	"github.com/oisee/w86emu/pkg/snapshot"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "w86step",
		Short: "8086 real-mode step driver — load an image, run Step, inspect the result",
	}

	rootCmd.AddCommand(newRunCmd(), newTestCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		image    string
		loadPath string
		savePath string
		csHex    string
		ipHex    string
		steps    int
		dump     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load an image or snapshot, run Step the given number of times, optionally dump state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var s *cpu.State
			var err error

			switch {
			case loadPath != "":
				s, err = snapshot.LoadFile(loadPath)
				if err != nil {
					return fmt.Errorf("load snapshot: %w", err)
				}
			case image != "":
				s = cpu.NewState()
				data, err := os.ReadFile(image)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				cs, err := parseHex16(csHex)
				if err != nil {
					return fmt.Errorf("--cs: %w", err)
				}
				ip, err := parseHex16(ipHex)
				if err != nil {
					return fmt.Errorf("--ip: %w", err)
				}
				s.CS, s.IP = cs, ip
				base := cpu.Linear(cs, ip)
				if int(base)+len(data) > len(s.Memory) {
					return fmt.Errorf("image of %d bytes does not fit at CS:IP %04X:%04X", len(data), cs, ip)
				}
				copy(s.Memory[base:], data)
			default:
				return fmt.Errorf("one of --image or --load is required")
			}

			for i := 0; i < steps; i++ {
				status := cpu.Step(s)
				if status != cpu.StatusSuccess {
					dumpState(s)
					return fmt.Errorf("step %d: %s", i, status)
				}
			}

			if dump {
				dumpState(s)
			}
			if savePath != "" {
				if err := snapshot.SaveFile(savePath, s); err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "Flat binary image to load at CS:IP")
	cmd.Flags().StringVar(&loadPath, "load", "", "Snapshot file to resume from (overrides --image/--cs/--ip)")
	cmd.Flags().StringVar(&savePath, "save", "", "Snapshot file to write after running")
	cmd.Flags().StringVar(&csHex, "cs", "0000", "Initial CS, hex")
	cmd.Flags().StringVar(&ipHex, "ip", "0000", "Initial IP, hex")
	cmd.Flags().IntVar(&steps, "steps", 1, "Number of Step cycles to execute")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the register/flag state after running")

	return cmd
}

func newTestCmd() *cobra.Command {
	var workers int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "test [vectors.json]",
		Short: "Run a conformance vector file against pkg/cpu.Step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			vectors, err := conformance.LoadVectors(f)
			if err != nil {
				return err
			}

			run := conformance.NewRunner(workers)
			report := run.Run(vectors)

			for _, res := range report.Results() {
				if res.Passed {
					if verbose {
						fmt.Printf("PASS %s\n", res.Name)
					}
					continue
				}
				fmt.Printf("FAIL %s (%s)\n", res.Name, res.Status)
				for _, m := range res.Mismatches {
					fmt.Printf("  %s\n", m)
				}
			}

			passed, total := report.Summary()
			fmt.Printf("\n%d/%d vectors passed\n", passed, total)
			if passed != total {
				return fmt.Errorf("%d vectors failed", total-passed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Number of workers (0 = NumCPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print passing vectors too")
	return cmd
}

func dumpState(s *cpu.State) {
	fmt.Printf("AX=%04X BX=%04X CX=%04X DX=%04X SI=%04X DI=%04X SP=%04X BP=%04X\n",
		s.AX, s.BX, s.CX, s.DX, s.SI, s.DI, s.SP, s.BP)
	fmt.Printf("CS=%04X DS=%04X ES=%04X SS=%04X IP=%04X FLAGS=%04X\n",
		s.CS, s.DS, s.ES, s.SS, s.IP, s.Flags)

	op := s.ReadByte(s.CS, s.IP)
	if info, ok := opcode.Lookup(opcode.Opcode(op)); ok {
		fmt.Printf("next: %02X %s\n", op, info.Mnemonic)
	} else {
		fmt.Printf("next: %02X (undefined)\n", op)
	}
}

func parseHex16(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
