// Package planfile reads and writes the YAML progression plans used by
// mesoplan-plan, and renders previews as text.
package planfile

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
	"gopkg.in/yaml.v3"
)

// File is a saved progression request for one program.
type File struct {
	ProgramID int64           `yaml:"program_id"`
	Cycles    int             `yaml:"cycles"`
	Method    string          `yaml:"method,omitempty"`
	Config    *planner.Config `yaml:"config,omitempty"`
}

// Request returns the progression request the file describes.
func (f File) Request() api.ProgressionRequest {
	return api.ProgressionRequest{Cycles: f.Cycles, Method: f.Method, Config: f.Config}
}

// Load reads a plan file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &f, nil
}

// Write encodes f as YAML.
func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding plan file: %w", err)
	}
	return enc.Close()
}

// PrintPreview renders one block per cycle and one row per exercise.
func PrintPreview(w io.Writer, preview []planner.PreviewCycle) error {
	if len(preview) == 0 {
		_, err := fmt.Fprintln(w, "nothing to generate: the program has no sessions")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, c := range preview {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", c.Label)
		for _, s := range c.Sessions {
			fmt.Fprintf(tw, "  %s\t%s\t\t\t\n", s.Date.Format("Mon 2006-01-02"), s.Method.Label())
			for _, e := range s.Exercises {
				fmt.Fprintf(tw, "    %s\t%s\t%s\t%s\t%s\n", e.Name, e.SetsReps, e.Weight, e.RPE, e.Note)
			}
		}
	}
	return tw.Flush()
}

// PrintResult summarises a commit.
func PrintResult(w io.Writer, r *planner.CommitResult) error {
	if r.NothingToGenerate() {
		_, err := fmt.Fprintf(w, "program %d: nothing to generate\n", r.ProgramID)
		return err
	}
	_, err := fmt.Fprintf(w, "program %d: generated %d sessions (%d exercises, %d sets) from %s to %s, generation %s\n",
		r.ProgramID, r.SessionsCreated, r.ExercisesCreated, r.SetsCreated,
		r.FirstDate.Format("2006-01-02"), r.LastDate.Format("2006-01-02"), r.GenerationID)
	return err
}
