// Package jobview is the tabular view-model behind the job panel.
//
// Raw API records are normalized into JobRecord rows (Normalize). A State
// holds those rows together with the view parameters: global filter, sort,
// page window and selection, plus the refresh lifecycle. Transitions are
// pure functions (SetQuery, ToggleSort, GoToPage, Select, RequestRefresh,
// ...) and the matching Action values dispatched through Reduce.
//
// VisibleRows derives the frame to render: Filter, then Sort, then Paginate.
// Nothing here performs I/O; the state package serializes dispatch and the
// ui package renders the View.
//
// Refresh results carry the token issued by RequestRefresh. A result whose
// token is not the outstanding one is dropped, which covers both a newer
// request and teardown (Invalidate).
package jobview
