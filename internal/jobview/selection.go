package jobview

// Selection identifies the row shown in the detail pane. RowIndex is the
// row's position in State.Rows.
type Selection struct {
	PayloadID string
	RowIndex  int
	Job       JobRecord
}

// Select records the selected row. The call is ignored unless rowIndex
// points at the row with payloadID and job carries the same id. The stored
// job is the row held in s.
// Selecting the current selection again returns s unchanged.
func Select(s State, payloadID string, rowIndex int, job JobRecord) State {
	if rowIndex < 0 || rowIndex >= len(s.Rows) || s.Rows[rowIndex].PayloadID != payloadID {
		return s
	}
	if job.PayloadID != payloadID {
		return s
	}
	job = s.Rows[rowIndex]
	if cur := s.Selection; cur != nil && cur.PayloadID == payloadID && cur.RowIndex == rowIndex {
		return s
	}
	s.Selection = &Selection{PayloadID: payloadID, RowIndex: rowIndex, Job: job}
	return s
}

// SelectByID selects the row with payloadID using the record held in s.
func SelectByID(s State, payloadID string) State {
	idx := indexOf(s.Rows, payloadID)
	if idx < 0 {
		return s
	}
	return Select(s, payloadID, idx, s.Rows[idx])
}

// ClearSelection closes the detail view.
func ClearSelection(s State) State {
	if s.Selection == nil {
		return s
	}
	s.Selection = nil
	return s
}

// IsSelected reports whether payloadID is the selected row.
func IsSelected(s State, payloadID string) bool {
	return s.Selection != nil && s.Selection.PayloadID == payloadID
}

// repointSelection follows the selected id into a fresh row set, or drops it
// when the id is gone.
func repointSelection(rows []JobRecord, sel *Selection) *Selection {
	if sel == nil {
		return nil
	}
	idx := indexOf(rows, sel.PayloadID)
	if idx < 0 {
		return nil
	}
	return &Selection{PayloadID: sel.PayloadID, RowIndex: idx, Job: rows[idx]}
}

func indexOf(rows []JobRecord, payloadID string) int {
	if payloadID == "" {
		return -1
	}
	for i, row := range rows {
		if row.PayloadID == payloadID {
			return i
		}
	}
	return -1
}
