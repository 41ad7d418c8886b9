package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
// Empty values fall back to the module build info.
var (
	version = ""
	commit  = ""
	date    = ""
)

// release describes the running binary.
type release struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Modified  bool
}

// currentRelease merges ldflags values with the build info embedded by the
// Go toolchain.
func currentRelease() release {
	r := release{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if r.Version == "" && info.Main.Version != "" {
			r.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if r.Commit == "" {
					r.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if r.Date == "" {
					r.Date = s.Value
				}
			case "vcs.modified":
				r.Modified = s.Value == "true"
			}
		}
	}

	if r.Version == "" {
		r.Version = "(devel)"
	}
	if r.Commit == "" {
		r.Commit = "unknown"
	}
	if r.Date == "" {
		r.Date = "unknown"
	}
	return r
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version recorded in reports and shown by --version.
func getVersion() string {
	return currentRelease().Version
}

func (r release) write(w io.Writer) {
	rev := r.Commit
	if r.Modified {
		rev += " (modified)"
	}
	fmt.Fprintf(w, "folio version %s\n", r.Version)
	fmt.Fprintf(w, "  commit: %s\n", rev)
	fmt.Fprintf(w, "  built:  %s\n", r.Date)
	fmt.Fprintf(w, "  go:     %s\n", r.GoVersion)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the folio version with the commit, build date and Go toolchain it
was built from. --short prints the version alone, for scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}
			r := currentRelease()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), r.Version)
				return nil
			}
			r.write(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print only the version")

	return cmd
}
