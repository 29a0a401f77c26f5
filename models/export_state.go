package models

// ExportState is the singleton progress row. LastLoadedChannel counts fully
// processed channels in listing order; resume decisions are driven by the
// per-channel loaded flags, this row exists for operator visibility and the
// top-level "already initialized" check.
type ExportState struct {
	ID                int64  `db:"id"                  json:"id"`
	RunID             string `db:"run_id"              json:"run_id"`
	InitCompleted     bool   `db:"init_completed"      json:"init_completed"`
	LastLoadedChannel int    `db:"last_loaded_channel" json:"last_loaded_channel"`
}
