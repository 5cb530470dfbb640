package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mkettu/worklog/backend/internal/domain"
)

// exportFrom is the lower bound of the export search window. Records dated
// before the Unix epoch would be data-entry errors and are not exported.
var exportFrom = time.Unix(0, 0).UTC()

// Export returns one ExportRow per non-deleted record the user owns,
// grouped by project (projects in list order, records ascending by start).
// Open records report hours as of the current clock.
func (s *WorkService) Export(ctx context.Context, sess domain.Session) ([]domain.ExportRow, error) {
	if !sess.Authenticated() {
		return nil, fmt.Errorf("service.WorkService.Export: %w", domain.ErrUnauthorized)
	}

	projects, err := s.projects.ListByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("service.WorkService.Export: %w", err)
	}

	now := s.now()
	// One year of headroom covers forward-dated edits.
	until := domain.EndOfDay(now.AddDate(1, 0, 0))

	rows := []domain.ExportRow{}
	for _, p := range projects {
		records, err := s.records.Search(ctx, sess.UserID, p.ID, exportFrom, until)
		if err != nil {
			return nil, fmt.Errorf("service.WorkService.Export: %w", err)
		}
		for _, rec := range records {
			rows = append(rows, domain.ExportRow{
				ProjectID:    p.ID.String(),
				ProjectLabel: p.Label,
				ClientID:     p.ClientID,
				RecordID:     rec.ID.String(),
				Date:         rec.StartTime.Format("2006-01-02"),
				StartTime:    rec.StartTime,
				EndTime:      rec.EndTime,
				Description:  rec.Description,
				LunchMinutes: rec.LunchMinutes,
				Hours:        domain.FormatHours(rec.Hours(now)),
			})
		}
	}

	return rows, nil
}
