package models

// TableStatus describes one table as seen by the diagnostics endpoint.
type TableStatus struct {
	Name    string   `json:"-"`
	Exists  bool     `json:"existe"`
	Rows    int64    `json:"registros"`
	Error   string   `json:"erro,omitempty"`
	Columns []string `json:"estrutura"`
}
