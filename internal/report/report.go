package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"obligate/internal/migrate"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Summary — итог одного прогона.
type Summary struct {
	RunID   string           `yaml:"run_id"`
	DryRun  bool             `yaml:"dry_run"`
	State   string           `yaml:"state"`
	Error   string           `yaml:"error,omitempty"`
	Started time.Time        `yaml:"started"`
	Stats   migrate.Stats    `yaml:"stats"`
	Timings []migrate.Timing `yaml:"timings"`
	Total   time.Duration    `yaml:"total"`
}

// FromMigrator снимает состояние с мигратора; runErr — результат Run.
func FromMigrator(runID string, dryRun bool, started time.Time, m *migrate.Migrator, runErr error) Summary {
	s := Summary{
		RunID:   runID,
		DryRun:  dryRun,
		State:   m.State().String(),
		Started: started,
		Stats:   m.Stats(),
		Timings: m.Timings(),
		Total:   m.Total(),
	}
	if runErr != nil {
		s.Error = runErr.Error()
	}
	return s
}

// Render печатает две таблицы: стадии со временем и счётчики.
func Render(w io.Writer, s Summary) {
	stages := tablewriter.NewWriter(w)
	stages.SetAutoWrapText(false)
	stages.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	stages.SetAutoFormatHeaders(false)
	stages.SetHeader([]string{"Stage", "Duration"})
	for _, t := range s.Timings {
		stages.Append([]string{t.Label, t.Duration.String()})
	}
	stages.SetFooter([]string{"Total", s.Total.String()})
	stages.Render()

	counts := tablewriter.NewWriter(w)
	counts.SetAutoWrapText(false)
	counts.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	counts.SetAutoFormatHeaders(false)
	counts.SetHeader([]string{"Entity", "Rows"})
	for _, r := range rows(s.Stats) {
		counts.Append([]string{r.name, strconv.Itoa(r.n)})
	}
	counts.Render()

	mode := "committed"
	if s.DryRun {
		mode = "dry run, nothing written"
	}
	fmt.Fprintf(w, "run %s: %s (%s)\n", s.RunID, s.State, mode)
	if s.Error != "" {
		fmt.Fprintf(w, "error: %s\n", s.Error)
	}
}

type row struct {
	name string
	n    int
}

func rows(st migrate.Stats) []row {
	return []row{
		{"networks", st.Networks},
		{"subnets", st.Subnets},
		{"routes", st.Routes},
		{"ip addresses", st.IPAddresses},
		{"  of them allocatable", st.AllocatableIPs},
		{"ports", st.Ports},
		{"port-ip associations", st.Associations},
		{"mac ranges", st.MacRanges},
		{"macs", st.Macs},
		{"nested blocks", st.NestedBlocks},
		{"interface network conflicts", st.InterfaceConflicts},
		{"interfaces without network", st.OrphanInterfaces},
		{"skipped macs", st.SkippedMacs},
		{"macs outside range", st.MacsOutOfRange},
	}
}

func WriteYAML(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile пишет YAML-отчёт в path.
func WriteFile(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := WriteYAML(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
