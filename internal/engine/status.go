package engine

import "github.com/packsync/packsync/internal/pack"

// Status reports every known record sorted by name, tombstones included.
func (e *Engine) Status() []StatusRow {
	var rows []StatusRow
	for _, p := range e.Registry.List() {
		row := StatusRow{
			Name:   p.Name,
			Status: p.Status,
			Pin:    p.Pin,
			Hash:   p.ShortHash(),
			Dir:    p.Dir,
		}
		if p.Status != pack.StatusRemoved {
			row.Class = p.Class()
		}
		rows = append(rows, row)
	}
	return rows
}
