package service

import (
	"errors"
	"fmt"
	"os"

	"ambient/internal/notes/data"
)

// readBacker is implemented by exporters whose output can be read again.
type readBacker interface {
	ReadBack() ([]byte, error)
}

// CheckReport lists how the export file differs from the store.
type CheckReport struct {
	ExportMissing bool     // no export file at all
	Missing       []string // ids in the store but not in the export
	Extra         []string // ids in the export but not in the store
	Stale         []string // ids present in both with different fields
	OrderDiffers  bool
}

func (r CheckReport) InSync() bool {
	return !r.ExportMissing && len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Stale) == 0 && !r.OrderDiffers
}

// Check parses the export file and compares it with the store.
func (s *noteServiceImpl) Check() (CheckReport, error) {
	rb, ok := s.exporter.(readBacker)
	if !ok {
		return CheckReport{}, fmt.Errorf("export to %s cannot be read back", s.exporter.Location())
	}
	raw, err := rb.ReadBack()
	if errors.Is(err, os.ErrNotExist) {
		report := CheckReport{ExportMissing: true}
		for _, n := range s.notes {
			report.Missing = append(report.Missing, n.ID)
		}
		return report, nil
	}
	if err != nil {
		return CheckReport{}, err
	}

	exported, err := data.Parse(raw)
	if err != nil {
		return CheckReport{}, fmt.Errorf("parse %s: %w", s.exporter.Location(), err)
	}
	return Compare(s.notes, exported), nil
}

// Compare diffs two collections by id, then by field, then by order.
func Compare(stored, exported []data.Note) CheckReport {
	var report CheckReport

	byID := make(map[string]data.Note, len(exported))
	for _, n := range exported {
		byID[n.ID] = n
	}
	storedIDs := make(map[string]bool, len(stored))

	var common []string
	for _, n := range stored {
		storedIDs[n.ID] = true
		e, ok := byID[n.ID]
		if !ok {
			report.Missing = append(report.Missing, n.ID)
			continue
		}
		common = append(common, n.ID)
		if e.Title != n.Title || e.Date != n.Date || e.Content != n.Content {
			report.Stale = append(report.Stale, n.ID)
		}
	}

	var exportedOrder []string
	for _, n := range exported {
		if !storedIDs[n.ID] {
			report.Extra = append(report.Extra, n.ID)
			continue
		}
		exportedOrder = append(exportedOrder, n.ID)
	}

	for i := range common {
		if common[i] != exportedOrder[i] {
			report.OrderDiffers = true
			break
		}
	}
	return report
}
