package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/knozaki/trak/internal/model"
)

// csvFields is the fixed record width: id,name,deadline,status,priority.
const csvFields = 5

// ExportCSV writes every task as one comma-joined line of
// id,name,deadline,status,priority. No header, no quoting: a field
// containing a comma will not survive a round trip.
func (s *TaskStore) ExportCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, t := range s.List() {
		line := strings.Join([]string{
			t.ID, t.Name, t.Deadline, t.Status, strconv.Itoa(t.Priority),
		}, ",")
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("write task %s: %w", t.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// ImportCSV reads comma-joined task lines. A line is accepted only when it
// splits into exactly five fields with a numeric priority; anything else is
// skipped without error. Accepted lines overwrite tasks with the same ID
// and stay applied even if a later read fails. Returns the accepted and
// skipped line counts.
func (s *TaskStore) ImportCSV(r io.Reader) (accepted, skipped int, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		parts := strings.Split(sc.Text(), ",")
		if len(parts) != csvFields {
			skipped++
			continue
		}
		prio, perr := strconv.Atoi(strings.TrimSpace(parts[4]))
		if perr != nil {
			skipped++
			continue
		}
		s.Add(model.Task{
			ID:       parts[0],
			Name:     parts[1],
			Deadline: parts[2],
			Status:   parts[3],
			Priority: prio,
		})
		accepted++
	}
	if serr := sc.Err(); serr != nil {
		return accepted, skipped, fmt.Errorf("read import: %w", serr)
	}
	return accepted, skipped, nil
}

// ExportFile writes the CSV export to path, truncating any existing file.
func (s *TaskStore) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := s.ExportCSV(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ImportFile reads a CSV export from path.
func (s *TaskStore) ImportFile(path string) (accepted, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return s.ImportCSV(f)
}
