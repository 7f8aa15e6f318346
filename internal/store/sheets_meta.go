package store

import (
	"fmt"

	"moonsales/internal/model"
)

// InsertSheetMeta 写入 Sheet 元信息（用于追溯）
func (s *Store) InsertSheetMeta(meta model.SheetMeta) error {
	_, err := s.db.Exec(`
		INSERT INTO sheets_meta (
			import_log_id, sheet_name, sheet_kind,
			total_rows, total_columns, week_columns
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		meta.ImportLogID, meta.SheetName, meta.SheetKind,
		meta.TotalRows, meta.TotalColumns, meta.WeekColumns,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sheets_meta: %w", err)
	}
	return nil
}

// ListSheetMeta 查询某次导入的工作表元信息
func (s *Store) ListSheetMeta(importLogID int64) ([]model.SheetMeta, error) {
	rows, err := s.db.Query(`
		SELECT id, import_log_id, sheet_name, sheet_kind, total_rows, total_columns, week_columns, created_at
		FROM sheets_meta
		WHERE import_log_id = ?
		ORDER BY id
	`, importLogID)
	if err != nil {
		return nil, fmt.Errorf("query sheets_meta failed: %w", err)
	}
	defer rows.Close()

	out := []model.SheetMeta{}
	for rows.Next() {
		var m model.SheetMeta
		if err := rows.Scan(&m.ID, &m.ImportLogID, &m.SheetName, &m.SheetKind,
			&m.TotalRows, &m.TotalColumns, &m.WeekColumns, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sheets_meta failed: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sheets_meta failed: %w", err)
	}
	return out, nil
}
